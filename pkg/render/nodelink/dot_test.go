package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/model"
	"github.com/matzehuels/questgraph/pkg/quest"
)

func converging() *model.Graph {
	return model.New([]quest.Quest{
		{ID: "R", Name: "Start", Group: "Intro", UnlockMilestone: true},
		{ID: "M1", Name: "Left", Group: "Intro", Prerequisites: []string{"R"}},
		{ID: "M2", Name: "Right", Group: "Side", Prerequisites: []string{"R"}},
		{ID: "F", Name: "Finale", Prerequisites: []string{"M1", "M2", "ghost"}},
	})
}

func TestToDOT(t *testing.T) {
	g := converging()
	dot := ToDOT(g, layout.Compute(g), Options{})

	for _, want := range []string{
		"digraph G {",
		"layout=neato;",
		"inputscale=72;",
		`"R" [label="Start", pos="0,0!", fillcolor=1, penwidth=3];`,
		`"M1" [label="Left", pos="-100,-150!", fillcolor=1];`,
		`"M2" [label="Right", pos="100,-150!", fillcolor=2];`,
		`"F" [label="Finale", pos="0,-300!", fillcolor=3];`,
		`"R" -> "M1";`,
		`"R" -> "M2";`,
		`"M1" -> "F";`,
		`"M2" -> "F";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "ghost") {
		t.Error("DOT should not mention unknown prerequisites")
	}
	if got := strings.Count(dot, "->"); got != 4 {
		t.Errorf("edge count = %d, want 4", got)
	}
}

func TestToDOTNodeOrder(t *testing.T) {
	g := converging()
	dot := ToDOT(g, layout.Compute(g), Options{})

	prev := -1
	for _, id := range []string{`"R" [`, `"M1" [`, `"M2" [`, `"F" [`} {
		i := strings.Index(dot, id)
		if i <= prev {
			t.Fatalf("node %s out of level order", id)
		}
		prev = i
	}
}

func TestToDOTDetailed(t *testing.T) {
	g := converging()
	dot := ToDOT(g, layout.Compute(g), Options{Detailed: true})

	if !strings.Contains(dot, `label="Left\nlevel 1 · Intro"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `label="Finale\nlevel 2"`) {
		t.Errorf("group-less detailed label missing:\n%s", dot)
	}
}

func TestToDOTSelection(t *testing.T) {
	g := converging()
	dot := ToDOT(g, layout.Compute(g), Options{Selected: "M1"})

	if !strings.Contains(dot, `"M1" [label="Left", pos="-100,-150!", fillcolor=1, color="#ff79c6", penwidth=4];`) {
		t.Errorf("selected node not highlighted:\n%s", dot)
	}
	if !strings.Contains(dot, `"M2" [label="Right", pos="100,-150!", fillcolor=2, fontcolor=grey60, color=grey80];`) {
		t.Errorf("unrelated node not dimmed:\n%s", dot)
	}
	if got := strings.Count(dot, `[color="#ff79c6", penwidth=2.5]`); got != 2 {
		t.Errorf("highlighted edges = %d, want 2", got)
	}
}

func TestToDOTForcedAndMissing(t *testing.T) {
	g := model.New([]quest.Quest{
		{ID: "A", Prerequisites: []string{"B"}},
		{ID: "B", Prerequisites: []string{"A"}},
	})
	res := layout.Compute(g)
	dot := ToDOT(g, res, Options{})
	if got := strings.Count(dot, `style="rounded,filled,dashed"`); got != 2 {
		t.Errorf("dashed nodes = %d, want 2", got)
	}

	delete(res.Positions, "B")
	dot = ToDOT(g, res, Options{})
	if strings.Contains(dot, "->") {
		t.Errorf("edges to unplaced quests should be skipped:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox =\n%s\nwant\n%s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	g := converging()
	svg, err := RenderSVG(context.Background(), ToDOT(g, layout.Compute(g), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "Finale") {
		t.Errorf("unexpected SVG output: %.200s", svg)
	}
}
