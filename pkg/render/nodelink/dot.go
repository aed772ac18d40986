package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/questgraph/pkg/detail"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/model"
)

// Box size in points.
const (
	nodeWidth  = 160.0
	nodeHeight = 56.0
)

// Brewer scheme used for group fill colours.
const (
	colorScheme = "pastel28"
	schemeSize  = 8
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the level and group under the quest name.
	Detailed bool

	// Selected highlights a quest and its direct neighbourhood.
	// Unknown ids are ignored.
	Selected string
}

// ToDOT converts a laid-out quest graph to Graphviz DOT.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Milestones get a bold outline and quests placed by the residue policy a
// dashed one.
func ToDOT(g *model.Graph, res *layout.Result, opts Options) string {
	var focus []string
	if opts.Selected != "" {
		focus = detail.Neighborhood(g, opts.Selected)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=curved;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", colorscheme=%s, fixedsize=true, width=%.3f, height=%.3f, fontsize=12];\n",
		colorScheme, nodeWidth/72, nodeHeight/72)
	buf.WriteString("  edge [color=\"#6b80bf\", arrowsize=0.7];\n")
	buf.WriteString("\n")

	groups := groupIndex(g)
	for _, id := range res.IDs() {
		q, ok := g.Quest(id)
		if !ok {
			continue
		}
		pos, _ := res.Position(id)
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(q.DisplayName(), q.Group, pos.Level, opts.Detailed)),
			fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(pos.X), fmtCoord(-pos.Y)),
			fmt.Sprintf("fillcolor=%d", groups[q.Group]%schemeSize+1),
		}
		attrs = append(attrs, styleAttrs(q.UnlockMilestone, pos.Phase)...)
		if focus != nil {
			switch {
			case id == opts.Selected:
				attrs = append(attrs, "color=\"#ff79c6\"", "penwidth=4")
			case !slices.Contains(focus, id):
				attrs = append(attrs, "fontcolor=grey60", "color=grey80")
			}
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if _, ok := res.Position(e.From); !ok {
			continue
		}
		if _, ok := res.Position(e.To); !ok {
			continue
		}
		if focus != nil && (e.From == opts.Selected || e.To == opts.Selected) {
			fmt.Fprintf(&buf, "  %q -> %q [color=\"#ff79c6\", penwidth=2.5];\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// groupIndex numbers groups by first appearance in dataset order.
func groupIndex(g *model.Graph) map[string]int {
	idx := make(map[string]int)
	for _, q := range g.Quests() {
		if _, ok := idx[q.Group]; !ok {
			idx[q.Group] = len(idx)
		}
	}
	return idx
}

func fmtLabel(name, group string, level int, detailed bool) string {
	if !detailed {
		return name
	}
	parts := []string{fmt.Sprintf("level %d", level)}
	if group != "" {
		parts = append(parts, group)
	}
	return name + "\n" + strings.Join(parts, " · ")
}

func fmtCoord(v float64) string {
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func styleAttrs(milestone bool, phase layout.Phase) []string {
	var attrs []string
	if phase == layout.PhaseForced {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	if milestone {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

// RenderSVG renders DOT produced by [ToDOT] to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	data, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders DOT produced by [ToDOT] to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
