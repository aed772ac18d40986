// Package layout assigns every quest a deterministic position in a layered,
// top-to-bottom tree layout.
//
// # Overview
//
// Quest graphs arrive with multiple roots, converging prerequisites, quests
// nobody can reach from a root, dangling references and the occasional cycle.
// [Compute] never fails on any of these: every quest in the graph receives
// exactly one [Position], and the computation always terminates.
//
// # Level Assignment
//
// Levels are assigned in three pure steps that [Compute] composes:
//
//  1. [Propagate] seeds level 0 with the roots (milestone quests without
//     prerequisites) and walks dependents depth-first. A dependent is placed
//     at 1 + max(level of its prerequisites) once all of its known
//     prerequisites have a level; until then it is skipped and revisited when
//     another prerequisite reaches it. Levels only ever increase.
//  2. [Sweep] makes up to [DefaultMaxSweepPasses] passes over the quests that
//     are still unplaced, in dataset order, placing each one whose known
//     prerequisites are all placed (level 0 when it has none).
//  3. [Force] places whatever the sweep left behind (cycles, or chains longer
//     than the pass cap) according to a [ResiduePolicy].
//
// Prerequisite ids that name no quest are ignored throughout, so a quest whose
// only prerequisite is missing lands on level 0.
//
// Quests without prerequisites that are not milestones are not roots. They are
// placed by the sweep, still on level 0, but after every rooted quest.
//
// # Placement
//
// [Place] lays each level out as a row centred on x = 0 with a fixed pitch,
// in the order quests were first assigned to a level. Rows are
// [DefaultNodeSpacingY] apart, so y depends on the level alone.
//
// # Usage
//
//	g := model.New(doc.Quests)
//	res := layout.Compute(g, layout.WithSpacing(240, 160))
//	pos, _ := res.Position("intro")
package layout
