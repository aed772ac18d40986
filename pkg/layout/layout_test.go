package layout

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/questgraph/pkg/model"
	"github.com/matzehuels/questgraph/pkg/quest"
)

func q(id string, prereqs ...string) quest.Quest {
	return quest.Quest{ID: id, Name: id, Prerequisites: prereqs}
}

func milestone(id string) quest.Quest {
	return quest.Quest{ID: id, Name: id, UnlockMilestone: true}
}

func graph(quests ...quest.Quest) *model.Graph {
	return model.New(quests)
}

func TestCompute_ConvergingPrerequisites(t *testing.T) {
	g := graph(milestone("R"), q("M1", "R"), q("M2", "R"), q("F", "M1", "M2"))
	res := Compute(g)

	want := map[string]Position{
		"R":  {Level: 0, X: 0, Y: 0, Phase: PhaseRooted},
		"M1": {Level: 1, X: -100, Y: 150, Phase: PhaseRooted},
		"M2": {Level: 1, X: 100, Y: 150, Phase: PhaseRooted},
		"F":  {Level: 2, X: 0, Y: 300, Phase: PhaseRooted},
	}
	assert.Equal(t, want, res.Positions)
	assert.Equal(t, 2, res.MaxLevel)
	assert.Equal(t, []string{"M1", "M2"}, res.Levels[1])
	assert.Empty(t, res.Residue)
}

func TestCompute_UnknownPrerequisiteOnly(t *testing.T) {
	res := Compute(graph(q("X", "unknown")))

	pos, ok := res.Position("X")
	require.True(t, ok)
	assert.Equal(t, Position{Level: 0, X: 0, Y: 0, Phase: PhaseSwept}, pos)
	assert.Empty(t, res.Residue)
}

func TestCompute_Empty(t *testing.T) {
	res := Compute(graph())
	assert.Zero(t, res.Len())
	assert.Zero(t, res.MaxLevel)
	assert.Empty(t, res.IDs())
	minX, minY, maxX, maxY := res.Bounds()
	assert.Equal(t, [4]float64{}, [4]float64{minX, minY, maxX, maxY})
}

// Quests with no prerequisites that are not milestones are not roots. The
// sweep still puts them on level 0, but after every rooted quest.
func TestCompute_OrphanIsPlacedAfterRootedQuests(t *testing.T) {
	g := graph(q("orphan"), milestone("R"), q("D", "R"))
	res := Compute(g)

	assert.Equal(t, []string{"R", "orphan"}, res.Levels[0])
	assert.Equal(t, PhaseSwept, res.Positions["orphan"].Phase)
	assert.Equal(t, PhaseRooted, res.Positions["R"].Phase)
	assert.Equal(t, 1, res.Level("D"))
	assert.Equal(t, -100.0, res.Positions["R"].X)
	assert.Equal(t, 100.0, res.Positions["orphan"].X)
}

func TestCompute_OrphanChainResolvedBySweep(t *testing.T) {
	// b is listed before its prerequisite, so it needs a second pass.
	g := graph(q("b", "a"), q("a"), q("c", "b"))
	res := Compute(g)

	assert.Equal(t, 0, res.Level("a"))
	assert.Equal(t, 1, res.Level("b"))
	assert.Equal(t, 2, res.Level("c"))
	for _, id := range []string{"a", "b", "c"} {
		assert.Equal(t, PhaseSwept, res.Positions[id].Phase, id)
	}
}

func TestCompute_MixedRootedAndOrphanPrerequisites(t *testing.T) {
	// D waits on an orphan, so propagation from R skips it.
	g := graph(milestone("R"), q("D", "R", "O"), q("O"))
	res := Compute(g)

	assert.Equal(t, 1, res.Level("D"))
	assert.Equal(t, PhaseSwept, res.Positions["D"].Phase)
	assert.Equal(t, []string{"R", "O"}, res.Levels[0])
}

func TestCompute_LongestPath(t *testing.T) {
	g := graph(milestone("R"), q("A", "R"), q("B", "A"), q("C", "R", "B"))
	res := Compute(g)

	assert.Equal(t, 3, res.Level("C"))
	assert.Equal(t, 3, res.MaxLevel)
}

func TestCompute_MultipleRootsInDatasetOrder(t *testing.T) {
	g := graph(milestone("R2"), milestone("R1"), q("X", "R1", "R2"))
	res := Compute(g)

	assert.Equal(t, []string{"R2", "R1"}, res.Levels[0])
	assert.Equal(t, 1, res.Level("X"))
}

func TestCompute_TwoCycleBestEffort(t *testing.T) {
	g := graph(q("A", "B"), q("B", "A"))
	res := Compute(g)

	require.Equal(t, 2, res.Len())
	assert.Equal(t, []string{"A", "B"}, res.Residue)
	assert.Equal(t, 0, res.Level("A"))
	assert.Equal(t, 1, res.Level("B"))
	assert.Equal(t, PhaseForced, res.Positions["A"].Phase)
	assert.Equal(t, PhaseForced, res.Positions["B"].Phase)
}

func TestCompute_TwoCycleLevelZero(t *testing.T) {
	g := graph(q("A", "B"), q("B", "A"))
	res := Compute(g, WithResiduePolicy(ResidueLevelZero))

	assert.Equal(t, []string{"A", "B"}, res.Levels[0])
	assert.Equal(t, -100.0, res.Positions["A"].X)
	assert.Equal(t, 100.0, res.Positions["B"].X)
}

func TestCompute_CycleBelowRoot(t *testing.T) {
	g := graph(milestone("R"), q("A", "R", "B"), q("B", "A"), q("C", "B"))
	res := Compute(g)

	assert.Equal(t, 0, res.Level("R"))
	assert.Equal(t, 1, res.Level("A"))
	assert.Equal(t, 2, res.Level("B"))
	assert.Equal(t, 3, res.Level("C"))
	assert.Equal(t, []string{"A", "B", "C"}, res.Residue)
}

func TestCompute_SelfLoop(t *testing.T) {
	g := graph(milestone("R"), q("S", "S", "R"))
	res := Compute(g)

	assert.Equal(t, 1, res.Level("S"))
	assert.Equal(t, []string{"S"}, res.Residue)
}

func TestCompute_SweepCapLeavesResidue(t *testing.T) {
	// A chain listed deepest-first needs one pass per link.
	quests := []quest.Quest{q("c4", "c3"), q("c3", "c2"), q("c2", "c1"), q("c1", "c0"), q("c0")}
	g := model.New(quests)

	capped := Compute(g, WithMaxSweepPasses(2))
	assert.Equal(t, []string{"c2", "c3", "c4"}, capped.Residue)
	for i, id := range []string{"c0", "c1", "c2", "c3", "c4"} {
		assert.Equal(t, i, capped.Level(id), id)
	}

	full := Compute(g)
	assert.Empty(t, full.Residue)
	assert.Equal(t, 4, full.Level("c4"))

	zero := Compute(g, WithMaxSweepPasses(2), WithResiduePolicy(ResidueLevelZero))
	assert.Equal(t, 0, zero.Level("c4"))
	assert.Equal(t, 1, zero.Level("c1"))
}

func TestCompute_DuplicateIDsPlacedOnce(t *testing.T) {
	g := graph(milestone("R"), q("A", "R"), q("A"))
	res := Compute(g)

	assert.Equal(t, 2, res.Len())
	assert.Equal(t, 1, res.Level("A"))
}

func TestCompute_Spacing(t *testing.T) {
	g := graph(milestone("R"), q("A", "R"), q("B", "R"), q("C", "R"))
	res := Compute(g, WithSpacing(50, 80))

	assert.Equal(t, 50.0, res.SpacingX)
	assert.Equal(t, 80.0, res.SpacingY)
	assert.Equal(t, -50.0, res.Positions["A"].X)
	assert.Equal(t, 0.0, res.Positions["B"].X)
	assert.Equal(t, 50.0, res.Positions["C"].X)
	assert.Equal(t, 80.0, res.Positions["C"].Y)

	minX, minY, maxX, maxY := res.Bounds()
	assert.Equal(t, [4]float64{-50, 0, 50, 80}, [4]float64{minX, minY, maxX, maxY})
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want Options
	}{
		{"defaults", nil, DefaultOptions()},
		{"spacing", []Option{WithSpacing(10, 20)}, Options{10, 20, DefaultMaxSweepPasses, ResidueBestEffort}},
		{"non-positive spacing ignored", []Option{WithSpacing(0, -1)}, DefaultOptions()},
		{"zero passes allowed", []Option{WithMaxSweepPasses(0)}, Options{DefaultNodeSpacingX, DefaultNodeSpacingY, 0, ResidueBestEffort}},
		{"negative passes ignored", []Option{WithMaxSweepPasses(-3)}, DefaultOptions()},
		{"residue", []Option{WithResiduePolicy(ResidueLevelZero)}, Options{DefaultNodeSpacingX, DefaultNodeSpacingY, DefaultMaxSweepPasses, ResidueLevelZero}},
		{"bulk", []Option{WithOptions(Options{SpacingX: 1, SpacingY: 2, MaxSweepPasses: 3, Residue: ResidueLevelZero})}, Options{1, 2, 3, ResidueLevelZero}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			for _, opt := range tt.opts {
				opt(&o)
			}
			if o != tt.want {
				t.Errorf("options = %+v, want %+v", o, tt.want)
			}
		})
	}
}

func TestParseResiduePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ResiduePolicy
		wantErr bool
	}{
		{"", ResidueBestEffort, false},
		{"best-effort", ResidueBestEffort, false},
		{"level-zero", ResidueLevelZero, false},
		{"drop", "", true},
	}
	for _, tt := range tests {
		got, err := ParseResiduePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseResiduePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseResiduePolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSubStepsDoNotMutateInput(t *testing.T) {
	g := graph(q("A", "B"), q("B", "A"), q("X"))
	rooted := Propagate(g)
	require.Zero(t, rooted.Len())

	swept := Sweep(g, rooted, 10)
	assert.Zero(t, rooted.Len())
	assert.Equal(t, []string{"X"}, swept.Order())

	forced, residue := Force(g, swept, ResidueBestEffort)
	assert.Equal(t, 1, swept.Len())
	assert.Equal(t, 3, forced.Len())
	assert.Equal(t, []string{"A", "B"}, residue)

	p, ok := forced.Phase("X")
	assert.True(t, ok)
	assert.Equal(t, PhaseSwept, p)
}

func TestPropagateOnlyReachesFullyRootedQuests(t *testing.T) {
	g := graph(milestone("R"), q("A", "R"), q("B", "A", "O"), q("O"))
	a := Propagate(g)

	if got := a.Order(); !slices.Equal(got, []string{"R", "A"}) {
		t.Errorf("Order() = %v, want [R A]", got)
	}
	if _, ok := a.Level("B"); ok {
		t.Error("B should wait for its orphan prerequisite")
	}
}

func TestResultIDsLevelMajor(t *testing.T) {
	g := graph(milestone("R"), q("A", "R"), q("O"), q("B", "A"))
	res := Compute(g)

	assert.Equal(t, []string{"R", "O", "A", "B"}, res.IDs())
	assert.Equal(t, []int{0, 1, 2}, res.LevelNumbers())
	assert.Equal(t, -1, res.Level("missing"))
	assert.Equal(t, map[Phase]int{PhaseRooted: 3, PhaseSwept: 1}, res.Counts())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "rooted", PhaseRooted.String())
	assert.Equal(t, "swept", PhaseSwept.String())
	assert.Equal(t, "forced", PhaseForced.String())
	assert.Equal(t, "unknown", Phase(42).String())
}

func TestParsePhase(t *testing.T) {
	for _, p := range []Phase{PhaseRooted, PhaseSwept, PhaseForced} {
		got, ok := ParsePhase(p.String())
		if !ok || got != p {
			t.Errorf("ParsePhase(%q) = %v, %v", p.String(), got, ok)
		}
	}
	if _, ok := ParsePhase("bogus"); ok {
		t.Error("ParsePhase(bogus) should fail")
	}
}
