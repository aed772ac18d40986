// Package graph provides serialization types for quest graphs and layouts.
//
// This package defines the wire format for questgraph's data, used for JSON
// files, API responses, caching, and interoperability with other viewers.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Graph], [Layout]: Serialization types (this package)
//   - pkg/model.Graph: Internal quest graph
//   - pkg/layout.Result: Internal layout (levels, positions, phases)
//
// Use [FromModel]/[ToModel], [FromResult] and [Layout.Result] to convert
// between them.
//
// # Graph Serialization
//
// Graphs use a node-link JSON format. Edges point from prerequisite to
// dependent, and only edges between known quests are written:
//
//	{
//	  "nodes": [{"id": "intro", "name": "Intro", "milestone": true}, {"id": "next"}],
//	  "edges": [{"from": "intro", "to": "next"}]
//	}
//
// Common operations:
//
//	data, _ := graph.MarshalGraph(g)           // model.Graph → []byte
//	g, _ := graph.ReadGraph(r)                 // io.Reader → model.Graph
//
// # Layout Serialization
//
// A [Layout] carries everything a viewer needs to draw the tree without
// recomputing it: per-quest positions, the level rows, node metadata, edges,
// the bounding box and the quests placed by the residue policy.
//
//	res := layout.Compute(g)
//	l := graph.FromResult(g, res, doc.Hash())
//	_ = graph.WriteLayoutFile(l, "layout.json")
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
