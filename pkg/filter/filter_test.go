package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/questgraph/pkg/model"
	"github.com/matzehuels/questgraph/pkg/quest"
)

func sample() *model.Graph {
	return model.New([]quest.Quest{
		{ID: "intro", Name: "First Steps", Group: "Prologue", UnlockMilestone: true},
		{ID: "scout_1", Name: "Recon", Group: "Act I", Trader: "Prapor", Prerequisites: []string{"intro"}},
		{ID: "recon_2", Name: "Scouting Party", Group: "Act I", Trader: "Therapist", Prerequisites: []string{"intro"}},
		{ID: "side", Name: "Odd Job", Prerequisites: []string{"scout_1"}},
		{ID: "act2", Name: "Crossroads", Group: "Act II", Trader: "Prapor", UnlockMilestone: true, Prerequisites: []string{"recon_2"}},
	})
}

func TestApply(t *testing.T) {
	g := sample()
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"all", Criteria{}, []string{"intro", "scout_1", "recon_2", "side", "act2"}},
		{"group", Criteria{Groups: []string{"Act I"}}, []string{"scout_1", "recon_2"}},
		{"trader", Criteria{Traders: []string{"Prapor"}}, []string{"scout_1", "act2"}},
		{"generic", Criteria{Traders: []string{quest.GenericCategory}}, []string{"intro", "side"}},
		{"milestones", Criteria{MilestonesOnly: true}, []string{"intro", "act2"}},
		{"combined", Criteria{Groups: []string{"Act I", "Act II"}, Traders: []string{"Prapor"}}, []string{"scout_1", "act2"}},
		{"names before ids", Criteria{Query: "scout"}, []string{"recon_2", "scout_1"}},
		{"query within filter", Criteria{Query: "scout", Traders: []string{"Prapor"}}, []string{"scout_1"}},
		{"blank query", Criteria{Query: "   "}, []string{"intro", "scout_1", "recon_2", "side", "act2"}},
		{"no match", Criteria{Query: "zzz"}, []string{}},
		{"unknown group", Criteria{Groups: []string{"Epilogue"}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(g, tt.c)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCriteriaIsZero(t *testing.T) {
	assert.True(t, Criteria{}.IsZero())
	assert.True(t, Criteria{Query: " "}.IsZero())
	assert.False(t, Criteria{MilestonesOnly: true}.IsZero())
	assert.False(t, Criteria{Groups: []string{"x"}}.IsZero())
}

func TestSections(t *testing.T) {
	g := sample()
	got := Sections(g, []string{"recon_2", "intro", "side", "scout_1", "ghost"})

	want := []Section{
		{Title: "Act I", IDs: []string{"recon_2", "scout_1"}},
		{Title: "Prologue", IDs: []string{"intro"}},
		{Title: UngroupedSection, IDs: []string{"side"}},
	}
	assert.Equal(t, want, got)
	assert.Empty(t, Sections(g, nil))
}

func TestCategories(t *testing.T) {
	got := Categories(sample())
	want := []Category{
		{Name: quest.GenericCategory, Count: 2},
		{Name: "Prapor", Count: 2},
		{Name: "Therapist", Count: 1},
	}
	assert.Equal(t, want, got)
}
