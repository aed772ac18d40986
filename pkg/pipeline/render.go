package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/questgraph/pkg/graph"
	"github.com/matzehuels/questgraph/pkg/model"
	"github.com/matzehuels/questgraph/pkg/render"
	"github.com/matzehuels/questgraph/pkg/render/nodelink"
	"github.com/matzehuels/questgraph/pkg/render/svg"
)

// RenderFormat produces a single artifact from a layout document.
// opts must have passed [Options.ValidateForRender].
func RenderFormat(ctx context.Context, g *model.Graph, l graph.Layout, format string, opts Options) ([]byte, error) {
	f := render.Format(format)
	engine := render.Engine(opts.Engine)
	if err := render.Check(engine, f); err != nil {
		return nil, err
	}

	if f == render.FormatJSON {
		return graph.MarshalLayout(l)
	}

	res := l.Result()
	if engine == render.EngineNative {
		return svg.Render(g, res, svg.WithSelected(opts.Selected), svg.WithTitle(opts.Title)), nil
	}

	dot := nodelink.ToDOT(g, res, nodelink.Options{Detailed: opts.Detailed, Selected: opts.Selected})
	switch f {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case render.FormatPNG:
		return nodelink.RenderPNG(ctx, dot)
	default:
		return nil, fmt.Errorf("unsupported graphviz format: %s", f)
	}
}
