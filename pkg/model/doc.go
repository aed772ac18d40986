// Package model holds the read-only quest graph: id lookup and the
// bidirectional prerequisite/dependent adjacency the layout engine walks.
//
// # Construction
//
// [New] takes the quest records in dataset order and builds, in a single
// pass, the id index and the inverse adjacency ("dependents of X"). Nothing is
// recomputed per query and nothing is mutated afterwards, so a [Graph] is safe
// for concurrent readers.
//
// # Data quality
//
// Source data may reference ids that do not exist, repeat ids, or contain
// prerequisite cycles. None of these is an error here:
//
//   - Unknown ids produce empty or absent results from every query.
//   - A prerequisite naming a missing quest is kept on the record but left out
//     of [Graph.ResolvedPrerequisites] and [Graph.Edges]; see [Graph.Dangling].
//   - When an id repeats, the first record wins; see [Graph.Duplicates].
//   - Cycles are reported by [Graph.Cycles] for diagnostics only.
package model
