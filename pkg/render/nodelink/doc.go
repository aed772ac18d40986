// Package nodelink renders quest layouts as Graphviz node-link diagrams.
//
// # Overview
//
// [ToDOT] emits DOT source in which every quest is pinned at the position the
// layout engine computed (pos="x,y!" in points). Graphviz is only asked to
// draw: the neato engine honours pinned positions and routes the edges.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, res, nodelink.Options{Selected: "intro"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: labels include the level and group under the quest name
//   - Selected: the quest to highlight together with its direct neighbours
//
// # DOT Format
//
// The DOT source is self-contained (layout=neato, inputscale=72) and can be
// saved and processed with external Graphviz tools. Nodes are emitted level
// by level; edges whose endpoints were not laid out are left out.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering.
package nodelink
