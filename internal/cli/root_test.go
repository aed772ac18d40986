package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/graph"
)

const convergingJSON = `{"quests": [
  {"id": "R", "name": "Start", "group": "Intro", "unlockMilestone": true, "prerequisites": []},
  {"id": "M1", "name": "Left", "group": "Intro", "prerequisites": ["R"]},
  {"id": "M2", "name": "Right", "group": "Side", "prerequisites": ["R"]},
  {"id": "F", "name": "Finale", "group": "Main", "prerequisites": ["M1", "M2"]}
]}`

const danglingJSON = `{"quests": [
  {"id": "R", "name": "Start", "unlockMilestone": true, "prerequisites": []},
  {"id": "A", "name": "Lost", "prerequisites": ["R", "missing"]}
]}`

// isolate points config and cache lookups at empty temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	cacheHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	return cacheHome
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	return c.Execute(context.Background(), args)
}

func TestLayoutCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	ds := writeFile(t, dir, "quests.json", convergingJSON)
	out := filepath.Join(dir, "out.json")

	if err := runCLI(t, "layout", ds, "-o", out); err != nil {
		t.Fatalf("layout: %v", err)
	}

	l, err := graph.ReadLayoutFile(out)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	want := map[string][2]float64{"R": {0, 0}, "M1": {-100, 150}, "M2": {100, 150}, "F": {0, 300}}
	for id, xy := range want {
		p := l.Positions[id]
		if p.X != xy[0] || p.Y != xy[1] {
			t.Errorf("%s at (%v, %v), want (%v, %v)", id, p.X, p.Y, xy[0], xy[1])
		}
	}
}

func TestLayoutCommandDefaultOutput(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	ds := writeFile(t, dir, "quests.json", convergingJSON)

	if err := runCLI(t, "layout", ds); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "quests.layout.json")); err != nil {
		t.Errorf("default output missing: %v", err)
	}
}

func TestLayoutSpacingSources(t *testing.T) {
	tests := []struct {
		name   string
		config string
		args   []string
		wantX  float64
	}{
		{"defaults", "", nil, 100},
		{"flag", "", []string{"--spacing-x", "300"}, 150},
		{"config", "[layout]\nnode_spacing_x = 400.0\n", nil, 200},
		{"flag beats config", "[layout]\nnode_spacing_x = 400.0\n", []string{"--spacing-x", "50"}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			dir := t.TempDir()
			ds := writeFile(t, dir, "quests.json", convergingJSON)
			out := filepath.Join(dir, "out.json")

			args := []string{"layout", ds, "-o", out, "--no-cache"}
			if tt.config != "" {
				args = append(args, "--config", writeFile(t, dir, "config.toml", tt.config))
			}
			args = append(args, tt.args...)
			if err := runCLI(t, args...); err != nil {
				t.Fatalf("layout: %v", err)
			}

			l, err := graph.ReadLayoutFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if got := l.Positions["M2"].X; got != tt.wantX {
				t.Errorf("M2.X = %v, want %v", got, tt.wantX)
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	ds := writeFile(t, dir, "quests.json", convergingJSON)
	base := filepath.Join(dir, "graph.svg")

	if err := runCLI(t, "render", ds, "-f", "svg,json", "-o", base, "--selected", "M1"); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "graph.svg"))
	if err != nil {
		t.Fatalf("svg output: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "quest-M1") {
		t.Error("svg output should contain the quest nodes")
	}
	if _, err := graph.ReadLayoutFile(filepath.Join(dir, "graph.json")); err != nil {
		t.Errorf("json output: %v", err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want errors.Code
	}{
		{"png needs graphviz", []string{"-f", "png"}, errors.ErrCodeUnsupported},
		{"unknown format", []string{"-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"unknown engine", []string{"-e", "cairo"}, errors.ErrCodeInvalidEngine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			ds := writeFile(t, t.TempDir(), "quests.json", convergingJSON)
			err := runCLI(t, append([]string{"render", ds}, tt.args...)...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want code %s", err, tt.want)
			}
		})
	}
}

func TestCheckCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	clean := writeFile(t, dir, "clean.json", convergingJSON)
	dangling := writeFile(t, dir, "dangling.json", danglingJSON)

	if err := runCLI(t, "check", clean, "--strict"); err != nil {
		t.Errorf("clean dataset: %v", err)
	}
	if err := runCLI(t, "check", dangling); err != nil {
		t.Errorf("non-strict check should pass: %v", err)
	}
	if err := runCLI(t, "check", dangling, "--strict"); !errors.Is(err, errors.ErrCodeInvalidDataset) {
		t.Errorf("strict check error = %v, want INVALID_DATASET", err)
	}
}

func TestCommandErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	ds := writeFile(t, dir, "quests.json", convergingJSON)

	tests := []struct {
		name string
		args []string
		want errors.Code
	}{
		{"missing dataset", []string{"layout", filepath.Join(dir, "nope.json")}, errors.ErrCodeFileNotFound},
		{"missing config", []string{"layout", ds, "--config", filepath.Join(dir, "nope.toml")}, errors.ErrCodeFileNotFound},
		{"bad config", []string{"layout", ds, "--config", writeFile(t, dir, "bad.toml", "[layout]\nspacing = 1\n")}, errors.ErrCodeInvalidConfig},
		{"bad residue", []string{"layout", ds, "--residue", "sideways"}, errors.ErrCodeInvalidInput},
		{"browse unknown quest", []string{"browse", ds, "--selected", "nope"}, errors.ErrCodeQuestNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want code %s", err, tt.want)
			}
		})
	}
}

func TestListCommand(t *testing.T) {
	isolate(t)
	ds := writeFile(t, t.TempDir(), "quests.json", convergingJSON)

	for _, args := range [][]string{
		{"list", ds},
		{"list", ds, "--group", "Intro", "--milestones"},
		{"list", ds, "-q", "fin"},
		{"list", ds, "--json"},
	} {
		if err := runCLI(t, args...); err != nil {
			t.Errorf("%v: %v", args, err)
		}
	}
}

func TestExampleDataset(t *testing.T) {
	isolate(t)
	ds := filepath.Join("..", "..", "examples", "quests.json")
	out := filepath.Join(t.TempDir(), "example.json")

	if err := runCLI(t, "layout", ds, "-o", out); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := graph.ReadLayoutFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Positions) != 9 {
		t.Errorf("placed %d quests, want 9", len(l.Positions))
	}
	// ledger and informant require each other; finale waits on ledger.
	if len(l.Residue) != 3 {
		t.Errorf("residue = %v, want ledger, informant and finale", l.Residue)
	}

	if err := runCLI(t, "check", ds, "--strict"); !errors.Is(err, errors.ErrCodeInvalidDataset) {
		t.Errorf("strict check error = %v, want INVALID_DATASET", err)
	}
}
