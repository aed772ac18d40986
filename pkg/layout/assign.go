package layout

import (
	"maps"
	"slices"

	"github.com/matzehuels/questgraph/pkg/model"
)

// Phase records which step of level assignment placed a quest.
type Phase int

const (
	// PhaseRooted marks quests reached by propagation from a root.
	PhaseRooted Phase = iota
	// PhaseSwept marks quests placed by the bounded fallback sweep.
	PhaseSwept
	// PhaseForced marks quests left unresolved after the sweep and placed by
	// the residue policy.
	PhaseForced
)

// String returns the lower-case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRooted:
		return "rooted"
	case PhaseSwept:
		return "swept"
	case PhaseForced:
		return "forced"
	default:
		return "unknown"
	}
}

// ParsePhase parses a phase name produced by [Phase.String].
func ParsePhase(s string) (Phase, bool) {
	switch s {
	case "rooted":
		return PhaseRooted, true
	case "swept":
		return PhaseSwept, true
	case "forced":
		return PhaseForced, true
	default:
		return 0, false
	}
}

// Assignment is an immutable snapshot of level assignments.
//
// Each step ([Propagate], [Sweep], [Force]) returns a new Assignment and never
// modifies its input.
type Assignment struct {
	levels map[string]int
	phases map[string]Phase
	order  []string // ids in first-assignment order
}

func newAssignment(capacity int) *Assignment {
	return &Assignment{
		levels: make(map[string]int, capacity),
		phases: make(map[string]Phase, capacity),
		order:  make([]string, 0, capacity),
	}
}

func (a *Assignment) clone() *Assignment {
	return &Assignment{
		levels: maps.Clone(a.levels),
		phases: maps.Clone(a.phases),
		order:  slices.Clone(a.order),
	}
}

// Level returns the assigned level of id and whether it has one.
func (a *Assignment) Level(id string) (int, bool) {
	l, ok := a.levels[id]
	return l, ok
}

// Phase returns the step that first placed id.
func (a *Assignment) Phase(id string) (Phase, bool) {
	p, ok := a.phases[id]
	return p, ok
}

// Len returns the number of assigned quests.
func (a *Assignment) Len() int { return len(a.order) }

// Order returns assigned ids in the order they were first assigned.
func (a *Assignment) Order() []string { return slices.Clone(a.order) }

// assign sets id to level unless it already has a level at least as deep.
// It reports whether the assignment changed.
func (a *Assignment) assign(id string, level int, phase Phase) bool {
	cur, ok := a.levels[id]
	if ok && cur >= level {
		return false
	}
	if !ok {
		a.order = append(a.order, id)
		a.phases[id] = phase
	}
	a.levels[id] = level
	return true
}

// readyLevel returns 1 + max(level of id's known prerequisites) when all of
// them are assigned, 0 when id has no known prerequisites, and false while
// any known prerequisite is still unassigned.
func (a *Assignment) readyLevel(g *model.Graph, id string) (int, bool) {
	level := 0
	for _, p := range g.ResolvedPrerequisites(id) {
		pl, ok := a.levels[p]
		if !ok {
			return 0, false
		}
		level = max(level, pl+1)
	}
	return level, true
}

// Propagate assigns levels to every quest reachable from a root whose known
// prerequisites are all reachable too.
//
// Roots start at level 0 in dataset order. From each root, dependents are
// visited depth-first with an explicit stack of frames, so recursion depth is
// not bounded by the goroutine stack. A dependent is (re)assigned only when
// all of its known prerequisites have levels and the new level is deeper than
// its current one; equal levels are not propagated again.
//
// No level can exceed the number of quests minus one on acyclic input, and
// the walk refuses deeper levels, so each quest's level rises a bounded number
// of times and Propagate always terminates.
func Propagate(g *model.Graph) *Assignment {
	a := newAssignment(g.Len())
	limit := g.Len()

	type frame struct {
		id   string
		next int // index of the next dependent to visit
	}
	var stack []frame

	for _, root := range g.Roots() {
		if !a.assign(root, 0, PhaseRooted) {
			continue
		}
		stack = append(stack[:0], frame{id: root})

		for len(stack) > 0 {
			top := len(stack) - 1
			deps := g.Dependents(stack[top].id)
			if stack[top].next >= len(deps) {
				stack = stack[:top]
				continue
			}
			dep := deps[stack[top].next]
			stack[top].next++

			level, ok := a.readyLevel(g, dep)
			if !ok || level >= limit {
				continue
			}
			if a.assign(dep, level, PhaseRooted) {
				stack = append(stack, frame{id: dep})
			}
		}
	}
	return a
}

// Sweep places unassigned quests whose known prerequisites are all assigned,
// making at most passes passes over the graph in dataset order. A pass sees
// the assignments made earlier in the same pass. Sweeping stops early after a
// pass that places nothing.
//
// Quests on a prerequisite cycle, and quests depending on them, are never
// ready and remain unassigned; see [Force].
func Sweep(g *model.Graph, a *Assignment, passes int) *Assignment {
	out := a.clone()
	ids := g.IDs()

	for pass := 0; pass < passes; pass++ {
		changed := false
		for _, id := range ids {
			if _, ok := out.levels[id]; ok {
				continue
			}
			if level, ok := out.readyLevel(g, id); ok {
				out.assign(id, level, PhaseSwept)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return out
}

// Force places every quest still unassigned after the sweep, so that no quest
// is ever left without a level. It returns the new assignment and the forced
// ids in the order they were placed.
//
// With [ResidueLevelZero] every residual quest goes to level 0.
//
// With [ResidueBestEffort] the residue is resolved like the sweep but without
// a pass cap: ready quests are placed as they become ready, and when nothing
// is ready the first unassigned quest in dataset order is placed at
// 1 + max(level of its assigned prerequisites), or 0 if none are assigned,
// which breaks one cycle. Each round places at least one quest, so Force
// terminates after at most as many rounds as there are residual quests.
func Force(g *model.Graph, a *Assignment, policy ResiduePolicy) (*Assignment, []string) {
	out := a.clone()
	var residue []string
	for _, id := range g.IDs() {
		if _, ok := out.levels[id]; !ok {
			residue = append(residue, id)
		}
	}
	if len(residue) == 0 {
		return out, nil
	}

	if policy == ResidueLevelZero {
		for _, id := range residue {
			out.assign(id, 0, PhaseForced)
		}
		return out, residue
	}

	forced := make([]string, 0, len(residue))
	pending := residue
	for len(pending) > 0 {
		var rest []string
		for _, id := range pending {
			if level, ok := out.readyLevel(g, id); ok {
				out.assign(id, level, PhaseForced)
				forced = append(forced, id)
				continue
			}
			rest = append(rest, id)
		}
		if len(rest) == len(pending) {
			id := rest[0]
			out.assign(id, out.partialLevel(g, id), PhaseForced)
			forced = append(forced, id)
			rest = rest[1:]
		}
		pending = rest
	}
	return out, forced
}

// partialLevel is readyLevel that ignores unassigned prerequisites.
func (a *Assignment) partialLevel(g *model.Graph, id string) int {
	level := 0
	for _, p := range g.ResolvedPrerequisites(id) {
		if pl, ok := a.levels[p]; ok {
			level = max(level, pl+1)
		}
	}
	return level
}
