package detail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/model"
	"github.com/matzehuels/questgraph/pkg/quest"
)

func sample() (*model.Graph, *layout.Result) {
	g := model.New([]quest.Quest{
		{ID: "R", Name: "Intro", UnlockMilestone: true},
		{ID: "M1", Name: "Scout", Trader: "Prapor", Prerequisites: []string{"R", "ghost"}},
		{ID: "M2", Prerequisites: []string{"R"}},
		{ID: "F", Name: "Finale", Prerequisites: []string{"M1", "M2"}},
	})
	return g, layout.Compute(g)
}

func TestBuild(t *testing.T) {
	g, res := sample()
	d, err := Build(g, res, "M1")
	require.NoError(t, err)

	assert.Equal(t, "Scout", d.Quest.Name)
	assert.Equal(t, "Prapor", d.Category)
	assert.Equal(t, []Link{
		{ID: "R", Name: "Intro", Known: true},
		{ID: "ghost", Known: false},
	}, d.Prerequisites)
	assert.Equal(t, []Link{{ID: "F", Name: "Finale", Known: true}}, d.Dependents)
	assert.Equal(t, 1, d.Level)
	assert.Equal(t, -100.0, d.X)
	assert.Equal(t, 150.0, d.Y)
	assert.Equal(t, "rooted", d.Phase)
}

func TestBuildGenericAndUnnamed(t *testing.T) {
	g, res := sample()
	d, err := Build(g, res, "F")
	require.NoError(t, err)
	assert.Equal(t, quest.GenericCategory, d.Category)
	assert.Equal(t, "M2", d.Prerequisites[1].Name)
	assert.Empty(t, d.Dependents)
}

func TestBuildErrors(t *testing.T) {
	g, res := sample()

	_, err := Build(g, res, "nope")
	assert.True(t, errors.Is(err, errors.ErrCodeQuestNotFound))

	_, err = Build(g, res, "")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestBuildDoesNotAliasGraph(t *testing.T) {
	g, res := sample()
	d, _ := Build(g, res, "M1")
	d.Quest.Prerequisites[0] = "mutated"
	assert.Equal(t, []string{"R", "ghost"}, g.Prerequisites("M1"))
}

func TestNeighborhood(t *testing.T) {
	g, _ := sample()
	assert.Equal(t, []string{"M1", "R", "F"}, Neighborhood(g, "M1"))
	assert.Equal(t, []string{"R", "M1", "M2"}, Neighborhood(g, "R"))
	assert.Nil(t, Neighborhood(g, "ghost"))
}
