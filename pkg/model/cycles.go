package model

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Cycles returns the groups of quests that require each other, directly or
// transitively. Each group is a strongly connected component with more than
// one quest, or a single quest listing itself as a prerequisite.
//
// Members are ordered by dataset position, and groups by their first member,
// so the result is deterministic. Cycles are diagnostics only: the layout
// engine places cyclic quests through its fallback sweep.
func (g *Graph) Cycles() [][]string {
	dg := simple.NewDirectedGraph()
	for i := range g.order {
		dg.AddNode(simple.Node(int64(i)))
	}

	var selfLoops []int
	for _, e := range g.edges {
		from, to := g.index[e.From], g.index[e.To]
		if from == to {
			selfLoops = append(selfLoops, from)
			continue
		}
		dg.SetEdge(dg.NewEdge(simple.Node(int64(from)), simple.Node(int64(to))))
	}

	var groups [][]int
	inGroup := make(map[int]bool)
	for _, scc := range topo.TarjanSCC(dg) {
		if len(scc) < 2 {
			continue
		}
		members := make([]int, len(scc))
		for i, n := range scc {
			members[i] = int(n.ID())
		}
		slices.Sort(members)
		for _, m := range members {
			inGroup[m] = true
		}
		groups = append(groups, members)
	}
	for _, i := range selfLoops {
		if !inGroup[i] {
			groups = append(groups, []int{i})
		}
	}

	slices.SortFunc(groups, func(a, b []int) int { return a[0] - b[0] })

	out := make([][]string, len(groups))
	for i, members := range groups {
		ids := make([]string, len(members))
		for j, m := range members {
			ids[j] = g.order[m]
		}
		out[i] = ids
	}
	return out
}
