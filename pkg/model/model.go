package model

import (
	"slices"

	"github.com/matzehuels/questgraph/pkg/quest"
)

// Edge is a resolvable prerequisite relation: From must be completed before To.
type Edge struct {
	From string // prerequisite
	To   string // dependent
}

// Reference is a prerequisite id that names no quest in the dataset.
type Reference struct {
	Quest   string // quest listing the prerequisite
	Missing string // the unknown prerequisite id
}

// Graph is the immutable quest graph.
//
// The zero value is an empty graph; use New to build one from records.
type Graph struct {
	quests     map[string]*quest.Quest
	order      []string            // distinct ids in dataset order
	index      map[string]int      // id -> position in order
	resolved   map[string][]string // id -> known, de-duplicated prerequisites
	dependents map[string][]string // id -> quests listing id as prerequisite
	edges      []Edge
	dangling   []Reference
	duplicates []string
}

// New builds a graph from quest records in dataset order.
//
// Records with an empty id are ignored. When an id repeats, the first record
// is kept and the id is reported by Duplicates. The records are copied, so
// later changes to the input slice do not affect the graph.
func New(quests []quest.Quest) *Graph {
	g := &Graph{
		quests:     make(map[string]*quest.Quest, len(quests)),
		index:      make(map[string]int, len(quests)),
		resolved:   make(map[string][]string, len(quests)),
		dependents: make(map[string][]string),
	}

	for _, q := range quests {
		if q.ID == "" {
			continue
		}
		if _, exists := g.quests[q.ID]; exists {
			g.duplicates = append(g.duplicates, q.ID)
			continue
		}
		rec := q
		rec.Prerequisites = slices.Clone(q.Prerequisites)
		g.quests[rec.ID] = &rec
		g.index[rec.ID] = len(g.order)
		g.order = append(g.order, rec.ID)
	}

	// Single pass over the records builds the inverse adjacency.
	for _, id := range g.order {
		var known []string
		for _, p := range g.quests[id].Prerequisites {
			if _, ok := g.quests[p]; !ok {
				g.dangling = append(g.dangling, Reference{Quest: id, Missing: p})
				continue
			}
			if slices.Contains(known, p) {
				continue
			}
			known = append(known, p)
			g.dependents[p] = append(g.dependents[p], id)
			g.edges = append(g.edges, Edge{From: p, To: id})
		}
		g.resolved[id] = known
	}

	return g
}

// Quest returns the record with the given id and true, or nil and false.
// The returned record must not be modified.
func (g *Graph) Quest(id string) (*quest.Quest, bool) {
	q, ok := g.quests[id]
	return q, ok
}

// Has reports whether a quest with the given id exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.quests[id]
	return ok
}

// Prerequisites returns the record's own ordered prerequisite list, including
// ids that name no quest. Returns nil for unknown ids.
func (g *Graph) Prerequisites(id string) []string {
	if q, ok := g.quests[id]; ok {
		return q.Prerequisites
	}
	return nil
}

// ResolvedPrerequisites returns the prerequisites that name known quests,
// de-duplicated, in record order. Returns nil for unknown ids.
func (g *Graph) ResolvedPrerequisites(id string) []string { return g.resolved[id] }

// Dependents returns the quests whose prerequisites contain id, in dataset
// order. Returns nil if nothing depends on id or id is unknown.
func (g *Graph) Dependents(id string) []string { return g.dependents[id] }

// IDs returns all quest ids in dataset order.
func (g *Graph) IDs() []string { return slices.Clone(g.order) }

// Index returns the dataset position of id, or -1 if unknown.
func (g *Graph) Index(id string) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	return -1
}

// Len returns the number of distinct quests.
func (g *Graph) Len() int { return len(g.order) }

// Quests returns copies of all records in dataset order.
func (g *Graph) Quests() []quest.Quest {
	out := make([]quest.Quest, len(g.order))
	for i, id := range g.order {
		out[i] = *g.quests[id]
	}
	return out
}

// Roots returns the quests that seed level 0 of the layout: milestones with
// an empty prerequisite list, in dataset order.
//
// Quests without prerequisites that are not milestones are not roots. They
// are placed by the layout's fallback sweep instead.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.order {
		if g.quests[id].IsRootCandidate() {
			roots = append(roots, id)
		}
	}
	return roots
}

// Edges returns every resolvable prerequisite edge in dataset order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// EdgeCount returns the number of resolvable edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Dangling returns prerequisite references to unknown ids.
func (g *Graph) Dangling() []Reference { return slices.Clone(g.dangling) }

// Duplicates returns ids that appeared more than once in the input, once per
// extra occurrence.
func (g *Graph) Duplicates() []string { return slices.Clone(g.duplicates) }
