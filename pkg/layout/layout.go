package layout

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/questgraph/pkg/model"
)

// Default layout parameters.
const (
	DefaultNodeSpacingX   = 200.0 // horizontal pitch between quests in a row
	DefaultNodeSpacingY   = 150.0 // vertical distance between levels
	DefaultMaxSweepPasses = 10
)

// ResiduePolicy decides where quests land when neither propagation nor the
// sweep could place them.
type ResiduePolicy string

const (
	// ResidueBestEffort keeps residual quests below whatever prerequisites of
	// theirs are placed, breaking cycles in dataset order.
	ResidueBestEffort ResiduePolicy = "best-effort"
	// ResidueLevelZero puts every residual quest on level 0.
	ResidueLevelZero ResiduePolicy = "level-zero"
)

// ParseResiduePolicy parses a policy name. The empty string selects
// [ResidueBestEffort].
func ParseResiduePolicy(s string) (ResiduePolicy, error) {
	switch ResiduePolicy(s) {
	case "", ResidueBestEffort:
		return ResidueBestEffort, nil
	case ResidueLevelZero:
		return ResidueLevelZero, nil
	default:
		return "", fmt.Errorf("unknown residue policy %q (want %q or %q)", s, ResidueBestEffort, ResidueLevelZero)
	}
}

// Options configures [Compute]. The zero value is not useful; start from
// [DefaultOptions] or pass [Option] values to Compute.
type Options struct {
	SpacingX       float64
	SpacingY       float64
	MaxSweepPasses int
	Residue        ResiduePolicy
}

// DefaultOptions returns the options Compute uses when none are given.
func DefaultOptions() Options {
	return Options{
		SpacingX:       DefaultNodeSpacingX,
		SpacingY:       DefaultNodeSpacingY,
		MaxSweepPasses: DefaultMaxSweepPasses,
		Residue:        ResidueBestEffort,
	}
}

// Option is a functional option for Compute.
type Option func(*Options)

// WithSpacing sets the horizontal pitch and the row spacing. Non-positive
// values keep the current setting.
func WithSpacing(x, y float64) Option {
	return func(o *Options) {
		if x > 0 {
			o.SpacingX = x
		}
		if y > 0 {
			o.SpacingY = y
		}
	}
}

// WithMaxSweepPasses caps the fallback sweep. Zero disables the sweep;
// negative values keep the current setting.
func WithMaxSweepPasses(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MaxSweepPasses = n
		}
	}
}

// WithResiduePolicy selects how unresolvable quests are placed.
func WithResiduePolicy(p ResiduePolicy) Option {
	return func(o *Options) {
		if p != "" {
			o.Residue = p
		}
	}
}

// WithOptions replaces all settings at once.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		WithSpacing(opts.SpacingX, opts.SpacingY)(o)
		WithMaxSweepPasses(opts.MaxSweepPasses)(o)
		WithResiduePolicy(opts.Residue)(o)
	}
}

// Position is the placement of one quest.
type Position struct {
	Level int
	X, Y  float64
	Phase Phase
}

// Result is a complete layout: every quest of the input graph has exactly one
// position.
type Result struct {
	Positions map[string]Position
	Levels    map[int][]string // quests per level, left to right
	MaxLevel  int
	Residue   []string // quests placed by the residue policy, in placement order
	SpacingX  float64
	SpacingY  float64
}

// Compute lays out g. It never fails and always terminates, whatever the
// shape of the graph.
func Compute(g *model.Graph, opts ...Option) *Result {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	a := Propagate(g)
	a = Sweep(g, a, o.MaxSweepPasses)
	a, residue := Force(g, a, o.Residue)

	res := Place(a, o.SpacingX, o.SpacingY)
	res.Residue = residue
	return res
}

// Place turns level assignments into coordinates. Quests on the same level
// form a row centred on x = 0, ordered by first assignment, pitchX apart.
// Each row sits at y = level * rowSpacing.
func Place(a *Assignment, pitchX, rowSpacing float64) *Result {
	res := &Result{
		Positions: make(map[string]Position, a.Len()),
		Levels:    make(map[int][]string),
		SpacingX:  pitchX,
		SpacingY:  rowSpacing,
	}
	for _, id := range a.order {
		level := a.levels[id]
		res.Levels[level] = append(res.Levels[level], id)
		res.MaxLevel = max(res.MaxLevel, level)
	}
	for level, ids := range res.Levels {
		start := -float64(len(ids)-1) * pitchX / 2
		y := float64(level) * rowSpacing
		for i, id := range ids {
			res.Positions[id] = Position{
				Level: level,
				X:     start + float64(i)*pitchX,
				Y:     y,
				Phase: a.phases[id],
			}
		}
	}
	return res
}

// Position returns the placement of id.
func (r *Result) Position(id string) (Position, bool) {
	p, ok := r.Positions[id]
	return p, ok
}

// Level returns the level of id, or -1 if id was not laid out.
func (r *Result) Level(id string) int {
	if p, ok := r.Positions[id]; ok {
		return p.Level
	}
	return -1
}

// Len returns the number of placed quests.
func (r *Result) Len() int { return len(r.Positions) }

// IDs returns every placed id, level by level and left to right.
func (r *Result) IDs() []string {
	ids := make([]string, 0, len(r.Positions))
	for _, level := range r.LevelNumbers() {
		ids = append(ids, r.Levels[level]...)
	}
	return ids
}

// LevelNumbers returns the occupied levels in ascending order.
func (r *Result) LevelNumbers() []int {
	levels := make([]int, 0, len(r.Levels))
	for l := range r.Levels {
		levels = append(levels, l)
	}
	slices.Sort(levels)
	return levels
}

// Bounds returns the bounding box of all quest centres. An empty layout has
// zero bounds.
func (r *Result) Bounds() (minX, minY, maxX, maxY float64) {
	if len(r.Positions) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range r.Positions {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

// Counts returns how many quests each phase placed.
func (r *Result) Counts() map[Phase]int {
	counts := make(map[Phase]int, 3)
	for _, p := range r.Positions {
		counts[p.Phase]++
	}
	return counts
}
