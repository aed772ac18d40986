package svg

import (
	"bytes"
	"fmt"
	"html"
	"image/color"
	"io"
	"math"

	svgo "github.com/ajstarks/svgo"

	"github.com/matzehuels/questgraph/pkg/detail"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/model"
)

// Default box geometry in pixels.
const (
	DefaultNodeWidth  = 160.0
	DefaultNodeHeight = 56.0
	DefaultMargin     = 40.0
)

const maxLabelRunes = 22

const styleCSS = `
    .quest rect { stroke: #44475a; stroke-width: 1.5; }
    .quest.milestone rect { stroke-width: 3; }
    .quest.forced rect { stroke-dasharray: 6 4; }
    .quest text { font-family: system-ui, sans-serif; text-anchor: middle; fill: #1e1e2e; }
    .quest .name { font-size: 13px; font-weight: 600; }
    .quest .group { font-size: 10px; fill: #44475a; }
    .edge { fill: none; stroke: #6b80bf; stroke-width: 1.5; stroke-opacity: 0.7; }
    .dim { opacity: 0.25; }
    .edge.highlight { stroke: #ff79c6; stroke-width: 3; stroke-opacity: 1; }
    .quest.selected rect { stroke: #ff79c6; stroke-width: 4; }`

// Group palette, cycled in order of first appearance.
var palette = []color.RGBA{
	{0x8b, 0xe9, 0xfd, 0xff}, // cyan
	{0x50, 0xfa, 0x7b, 0xff}, // green
	{0xff, 0xb8, 0x6c, 0xff}, // orange
	{0xbd, 0x93, 0xf9, 0xff}, // purple
	{0xf1, 0xfa, 0x8c, 0xff}, // yellow
	{0xff, 0x79, 0xc6, 0xff}, // pink
	{0x9a, 0xed, 0xfe, 0xff}, // light blue
	{0xd6, 0xac, 0xff, 0xff}, // lavender
}

// Options configures rendering.
type Options struct {
	NodeWidth  float64
	NodeHeight float64
	Margin     float64
	Selected   string
	Title      string
}

// Option is a functional option for Render.
type Option func(*Options)

// WithSelected highlights a quest and its neighbourhood.
func WithSelected(id string) Option { return func(o *Options) { o.Selected = id } }

// WithNodeSize sets the box size. Non-positive values keep the default.
func WithNodeSize(w, h float64) Option {
	return func(o *Options) {
		if w > 0 {
			o.NodeWidth = w
		}
		if h > 0 {
			o.NodeHeight = h
		}
	}
}

// WithMargin sets the blank border around the tree.
func WithMargin(m float64) Option {
	return func(o *Options) {
		if m >= 0 {
			o.Margin = m
		}
	}
}

// WithTitle sets the document title.
func WithTitle(title string) Option { return func(o *Options) { o.Title = title } }

// Render returns the SVG document for res.
func Render(g *model.Graph, res *layout.Result, opts ...Option) []byte {
	var buf bytes.Buffer
	Write(&buf, g, res, opts...)
	return buf.Bytes()
}

// Write streams the SVG document for res to w.
func Write(w io.Writer, g *model.Graph, res *layout.Result, opts ...Option) {
	o := Options{
		NodeWidth:  DefaultNodeWidth,
		NodeHeight: DefaultNodeHeight,
		Margin:     DefaultMargin,
	}
	for _, opt := range opts {
		opt(&o)
	}

	r := newRenderer(g, res, o)
	canvas := svgo.New(w)
	canvas.Start(r.width, r.height)
	if o.Title != "" {
		canvas.Title(o.Title)
	}
	canvas.Style("text/css", styleCSS)

	canvas.Group(`class="edges"`)
	for _, e := range g.Edges() {
		r.edge(canvas, e)
	}
	canvas.Gend()

	canvas.Group(`class="quests"`)
	for _, id := range res.IDs() {
		r.node(canvas, id)
	}
	canvas.Gend()

	canvas.End()
}

type renderer struct {
	g      *model.Graph
	res    *layout.Result
	opts   Options
	width  int
	height int
	offX   float64
	offY   float64
	colors map[string]color.RGBA
	focus  map[string]bool // nil when nothing is selected
}

func newRenderer(g *model.Graph, res *layout.Result, o Options) *renderer {
	minX, minY, maxX, maxY := res.Bounds()
	r := &renderer{
		g:      g,
		res:    res,
		opts:   o,
		width:  int(math.Ceil(maxX - minX + o.NodeWidth + 2*o.Margin)),
		height: int(math.Ceil(maxY - minY + o.NodeHeight + 2*o.Margin)),
		offX:   o.Margin + o.NodeWidth/2 - minX,
		offY:   o.Margin + o.NodeHeight/2 - minY,
		colors: make(map[string]color.RGBA),
	}
	for _, q := range g.Quests() {
		if _, ok := r.colors[q.Group]; !ok {
			r.colors[q.Group] = palette[len(r.colors)%len(palette)]
		}
	}
	if ids := detail.Neighborhood(g, o.Selected); ids != nil {
		r.focus = make(map[string]bool, len(ids))
		for _, id := range ids {
			r.focus[id] = true
		}
	}
	return r
}

// point returns the canvas coordinates of a quest centre.
func (r *renderer) point(id string) (float64, float64, bool) {
	p, ok := r.res.Position(id)
	if !ok {
		return 0, 0, false
	}
	return p.X + r.offX, p.Y + r.offY, true
}

func (r *renderer) edge(canvas *svgo.SVG, e model.Edge) {
	x1, y1, ok1 := r.point(e.From)
	x2, y2, ok2 := r.point(e.To)
	if !ok1 || !ok2 {
		return
	}
	y1 += r.opts.NodeHeight / 2
	y2 -= r.opts.NodeHeight / 2
	my := (y1 + y2) / 2
	d := fmt.Sprintf("M %.1f %.1f C %.1f %.1f %.1f %.1f %.1f %.1f", x1, y1, x1, my, x2, my, x2, y2)

	class := "edge"
	if r.focus != nil {
		if e.From == r.opts.Selected || e.To == r.opts.Selected {
			class += " highlight"
		} else {
			class += " dim"
		}
	}
	canvas.Path(d, attr("class", class))
}

func (r *renderer) node(canvas *svgo.SVG, id string) {
	x, y, ok := r.point(id)
	q, known := r.g.Quest(id)
	if !ok || !known {
		return
	}
	pos, _ := r.res.Position(id)

	class := "quest"
	if q.UnlockMilestone {
		class += " milestone"
	}
	if pos.Phase == layout.PhaseForced {
		class += " forced"
	}
	if r.focus != nil {
		switch {
		case id == r.opts.Selected:
			class += " selected"
		case !r.focus[id]:
			class += " dim"
		}
	}

	w, h := r.opts.NodeWidth, r.opts.NodeHeight
	canvas.Group(attr("id", "quest-"+id), attr("class", class), attr("data-level", fmt.Sprint(pos.Level)))
	canvas.Title(q.DisplayName())
	canvas.Roundrect(round(x-w/2), round(y-h/2), round(w), round(h), 10, 10, attr("fill", cssColor(r.colors[q.Group])))
	if q.Group != "" {
		canvas.Text(round(x), round(y-2), truncate(q.DisplayName()), attr("class", "name"))
		canvas.Text(round(x), round(y+15), truncate(q.Group), attr("class", "group"))
	} else {
		canvas.Text(round(x), round(y+5), truncate(q.DisplayName()), attr("class", "name"))
	}
	canvas.Gend()
}

// attr formats an escaped XML attribute for svgo's variadic style arguments.
func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}

func round(v float64) int { return int(math.Round(v)) }

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxLabelRunes {
		return s
	}
	return string(runes[:maxLabelRunes-1]) + "…"
}

func cssColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
