// Package detail assembles the detail panel for a selected quest.
package detail

import (
	"slices"

	"github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/model"
	"github.com/matzehuels/questgraph/pkg/quest"
)

// Link references another quest from the panel. Known is false for
// prerequisite ids that name no quest.
type Link struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Known bool   `json:"known"`
}

// Detail is everything the panel shows for one quest.
type Detail struct {
	Quest         quest.Quest `json:"quest"`
	Category      string      `json:"category"`
	Prerequisites []Link      `json:"prerequisites"`
	Dependents    []Link      `json:"dependents"`
	Level         int         `json:"level"`
	X             float64     `json:"x"`
	Y             float64     `json:"y"`
	Phase         string      `json:"phase"`
}

// Build returns the detail of quest id. Prerequisites are listed as written
// in the dataset, unknown ones included; dependents in dataset order.
func Build(g *model.Graph, res *layout.Result, id string) (Detail, error) {
	if err := errors.ValidateQuestID(id); err != nil {
		return Detail{}, err
	}
	q, ok := g.Quest(id)
	if !ok {
		return Detail{}, errors.New(errors.ErrCodeQuestNotFound, "quest %q not found", id)
	}
	pos, ok := res.Position(id)
	if !ok {
		return Detail{}, errors.New(errors.ErrCodeInternal, "quest %q has no position", id)
	}

	rec := *q
	rec.Prerequisites = slices.Clone(q.Prerequisites)
	d := Detail{
		Quest:         rec,
		Category:      q.Category(),
		Prerequisites: links(g, q.Prerequisites),
		Dependents:    links(g, g.Dependents(id)),
		Level:         pos.Level,
		X:             pos.X,
		Y:             pos.Y,
		Phase:         pos.Phase.String(),
	}
	return d, nil
}

func links(g *model.Graph, ids []string) []Link {
	out := make([]Link, 0, len(ids))
	for _, id := range ids {
		l := Link{ID: id}
		if q, ok := g.Quest(id); ok {
			l.Name, l.Known = q.DisplayName(), true
		}
		out = append(out, l)
	}
	return out
}

// Neighborhood returns the quests highlighted when id is selected: id itself,
// its known prerequisites and its dependents. It returns nil for unknown ids.
func Neighborhood(g *model.Graph, id string) []string {
	if !g.Has(id) {
		return nil
	}
	out := []string{id}
	for _, p := range g.ResolvedPrerequisites(id) {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	for _, d := range g.Dependents(id) {
		if !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	return out
}
