package graph

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/model"
)

// =============================================================================
// Layout - Serialized Quest Tree
// =============================================================================

// Layout is the serialization format for a computed quest layout.
//
// Positions and Nodes describe the same quests; Positions is the compact
// lookup a viewer needs, Nodes adds the metadata for labels and colouring.
// Width and Height span the quest centres; renderers add their own margins.
type Layout struct {
	RunID       string `json:"run_id" bson:"run_id"`
	DatasetHash string `json:"dataset_hash,omitempty" bson:"dataset_hash,omitempty"`

	Width    float64 `json:"width" bson:"width"`
	Height   float64 `json:"height" bson:"height"`
	SpacingX float64 `json:"spacing_x" bson:"spacing_x"`
	SpacingY float64 `json:"spacing_y" bson:"spacing_y"`

	Positions map[string]Point `json:"positions" bson:"positions"`
	Levels    map[int][]string `json:"levels" bson:"levels"`
	MaxLevel  int              `json:"max_level" bson:"max_level"`

	Nodes   []Node   `json:"nodes" bson:"nodes"`
	Edges   []Edge   `json:"edges" bson:"edges"`
	Residue []string `json:"residue,omitempty" bson:"residue,omitempty"`
}

// Point is a quest centre.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// FromResult exports a layout result for g. Every call gets a fresh run id.
// Nodes are listed level by level, left to right.
func FromResult(g *model.Graph, res *layout.Result, datasetHash string) Layout {
	minX, minY, maxX, maxY := res.Bounds()
	out := Layout{
		RunID:       uuid.NewString(),
		DatasetHash: datasetHash,
		Width:       maxX - minX,
		Height:      maxY - minY,
		SpacingX:    res.SpacingX,
		SpacingY:    res.SpacingY,
		Positions:   make(map[string]Point, res.Len()),
		Levels:      make(map[int][]string, len(res.Levels)),
		MaxLevel:    res.MaxLevel,
		Nodes:       make([]Node, 0, res.Len()),
		Edges:       make([]Edge, 0, g.EdgeCount()),
		Residue:     slices.Clone(res.Residue),
	}
	for level, ids := range res.Levels {
		out.Levels[level] = slices.Clone(ids)
	}
	for _, id := range res.IDs() {
		pos := res.Positions[id]
		out.Positions[id] = Point{X: pos.X, Y: pos.Y}

		n := Node{ID: id}
		if q, ok := g.Quest(id); ok {
			n = nodeFromQuest(q)
		}
		n.Level, n.X, n.Y, n.Phase = pos.Level, pos.X, pos.Y, pos.Phase.String()
		out.Nodes = append(out.Nodes, n)
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, Edge{From: e.From, To: e.To})
	}
	return out
}

// Result rebuilds the layout result a Layout was exported from.
func (l Layout) Result() *layout.Result {
	res := &layout.Result{
		Positions: make(map[string]layout.Position, len(l.Nodes)),
		Levels:    make(map[int][]string, len(l.Levels)),
		MaxLevel:  l.MaxLevel,
		Residue:   slices.Clone(l.Residue),
		SpacingX:  l.SpacingX,
		SpacingY:  l.SpacingY,
	}
	for level, ids := range l.Levels {
		res.Levels[level] = slices.Clone(ids)
	}
	for _, n := range l.Nodes {
		phase, _ := layout.ParsePhase(n.Phase)
		res.Positions[n.ID] = layout.Position{Level: n.Level, X: n.X, Y: n.Y, Phase: phase}
	}
	return res
}

// validate checks that positions, nodes and levels describe the same quests.
func (l Layout) validate() error {
	if len(l.Positions) != len(l.Nodes) {
		return fmt.Errorf("layout has %d positions for %d nodes", len(l.Positions), len(l.Nodes))
	}
	placed := 0
	for level, ids := range l.Levels {
		for _, id := range ids {
			if _, ok := l.Positions[id]; !ok {
				return fmt.Errorf("level %d lists %q without a position", level, id)
			}
		}
		placed += len(ids)
	}
	if placed != len(l.Nodes) {
		return fmt.Errorf("layout levels hold %d quests, want %d", placed, len(l.Nodes))
	}
	return nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that positions, nodes and levels agree.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if err := l.validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayout writes a Layout as JSON to an io.Writer.
func WriteLayout(l Layout, w io.Writer) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, bytes.NewReader(append(data, '\n'))); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
