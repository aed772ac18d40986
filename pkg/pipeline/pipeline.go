// Package pipeline provides the load → layout → render pipeline for questgraph.
//
// The CLI and the HTTP server both run quests through this package, so a
// dataset renders the same way from every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a JSON or YAML dataset and build the quest graph
//  2. Layout: Assign levels and coordinates (never fails)
//  3. Render: Produce artifacts (SVG, PNG, DOT, JSON) with the chosen engine
//
// Layouts are cached by dataset content hash and layout options; artifacts
// by layout hash, format, engine and selection.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "quests.json",
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	ds, err := runner.Load(ctx, "quests.json")
//	l, err := runner.ComputeLayout(ctx, ds, opts)
//	artifacts, err := runner.Render(ctx, ds.Graph, l, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/questgraph/pkg/cache"
	"github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/graph"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/model"
	"github.com/matzehuels/questgraph/pkg/render"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = render.FormatSVG

// DefaultEngine draws artifacts when no engine is requested.
const DefaultEngine = render.EngineNative

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// Zero values select defaults.
type Options struct {
	// Load options
	Path string `json:"path"`

	// Layout options
	SpacingX       float64 `json:"spacing_x,omitempty"`
	SpacingY       float64 `json:"spacing_y,omitempty"`
	MaxSweepPasses int     `json:"max_sweep_passes,omitempty"` // 0 selects the default; negative disables the sweep
	Residue        string  `json:"residue,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Engine   string   `json:"engine,omitempty"`
	Selected string   `json:"selected,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // graphviz labels show level and group
	Title    string   `json:"title,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dataset is the loaded quest graph and its content hash.
	Dataset *Dataset

	// Layout is the serializable layout document.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings lists data-quality problems found in the dataset.
	Warnings []Warning

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	QuestCount int
	EdgeCount  int
	MaxLevel   int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// Dataset is a loaded quest graph.
type Dataset struct {
	Path  string
	Hash  string // content hash of the decoded document
	Graph *model.Graph
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidatePath(o.Path); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills unset layout options.
func (o *Options) SetLayoutDefaults() {
	if o.SpacingX <= 0 {
		o.SpacingX = layout.DefaultNodeSpacingX
	}
	if o.SpacingY <= 0 {
		o.SpacingY = layout.DefaultNodeSpacingY
	}
	if o.MaxSweepPasses == 0 {
		o.MaxSweepPasses = layout.DefaultMaxSweepPasses
	}
	if o.Residue == "" {
		o.Residue = string(layout.ResidueBestEffort)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if _, err := layout.ParseResiduePolicy(o.Residue); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid layout options")
	}
	return nil
}

// SetRenderDefaults fills unset render options.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{string(DefaultFormat)}
	}
	if o.Engine == "" {
		o.Engine = string(DefaultEngine)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering. Formats are
// normalized to lower case with repeats dropped.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	engine, err := render.ParseEngine(o.Engine)
	if err != nil {
		return err
	}
	formats, err := render.ParseFormats(o.Formats)
	if err != nil {
		return err
	}
	normalized := make([]string, 0, len(formats))
	for _, f := range formats {
		if err := render.Check(engine, f); err != nil {
			return err
		}
		normalized = append(normalized, string(f))
	}
	o.Engine = string(engine)
	o.Formats = normalized
	if o.Selected != "" {
		if err := errors.ValidateQuestID(o.Selected); err != nil {
			return err
		}
	}
	return nil
}

// LayoutOptions converts the options to layout engine options.
// Call after [Options.ValidateForLayout].
func (o *Options) LayoutOptions() []layout.Option {
	passes := max(o.MaxSweepPasses, 0)
	return []layout.Option{
		layout.WithSpacing(o.SpacingX, o.SpacingY),
		layout.WithMaxSweepPasses(passes),
		layout.WithResiduePolicy(layout.ResiduePolicy(o.Residue)),
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		SpacingX:       o.SpacingX,
		SpacingY:       o.SpacingY,
		MaxSweepPasses: max(o.MaxSweepPasses, 0),
		Residue:        o.Residue,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Engine:   o.Engine,
		Selected: o.Selected,
		Detailed: o.Detailed,
		Title:    o.Title,
	}
}
