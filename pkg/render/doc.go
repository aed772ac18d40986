// Package render names the output formats and drawing engines shared by the
// quest graph renderers.
//
// Two engines draw a computed layout:
//
//   - [EngineNative] writes SVG directly with svgo (see the [svg] subpackage)
//   - [EngineGraphviz] emits DOT with pinned positions and lets Graphviz draw
//     it (see the [nodelink] subpackage)
//
// Both keep the coordinates of the layout engine; neither moves a quest.
// JSON output is the layout document itself and is available with either
// engine. Use [Supports] to check a combination before rendering:
//
//	if !render.Supports(render.EngineNative, render.FormatPNG) {
//	    // fall back or report
//	}
//
// [svg]: github.com/matzehuels/questgraph/pkg/render/svg
// [nodelink]: github.com/matzehuels/questgraph/pkg/render/nodelink
package render
