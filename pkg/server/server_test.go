package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/questgraph/pkg/detail"
	"github.com/matzehuels/questgraph/pkg/filter"
	"github.com/matzehuels/questgraph/pkg/graph"
	"github.com/matzehuels/questgraph/pkg/pipeline"
)

const dataset = `{"quests": [
  {"id": "R", "name": "Start", "group": "Intro", "trader": "Ana", "unlockMilestone": true, "prerequisites": []},
  {"id": "M1", "name": "Gather Herbs", "group": "Intro", "trader": "Ana", "prerequisites": ["R"]},
  {"id": "M2", "name": "Scout Ruins", "group": "Side", "prerequisites": ["R", "ghost"]},
  {"id": "F", "name": "Finale", "group": "Main", "trader": "Bo", "prerequisites": ["M1", "M2"]}
]}`

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quests.json")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o644))

	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(nil, nil, logger)
	s, err := New(context.Background(), runner, pipeline.Options{Path: path}, logger)
	require.NoError(t, err)
	return s, path
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body healthResponse
	decode(t, rec, &body)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 4, body.Quests)
	assert.Equal(t, 3, body.Levels)
	assert.Equal(t, 1, body.Warnings)
}

func TestQuests(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name      string
		target    string
		wantCount int
		wantFirst string
	}{
		{"all", "/api/quests", 4, "Intro"},
		{"group", "/api/quests?group=Side&group=Main", 2, "Side"},
		{"trader", "/api/quests?trader=Bo", 1, "Main"},
		{"generic", "/api/quests?trader=generic", 1, "Side"},
		{"milestones", "/api/quests?milestones=true", 1, "Intro"},
		{"query", "/api/quests?q=herbs", 1, "Intro"},
		{"nothing", "/api/quests?q=zzzzzz", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)

			var body questsResponse
			decode(t, rec, &body)
			assert.Equal(t, tt.wantCount, body.Count)
			if tt.wantFirst == "" {
				assert.Empty(t, body.Sections)
				return
			}
			require.NotEmpty(t, body.Sections)
			assert.Equal(t, tt.wantFirst, body.Sections[0].Title)
		})
	}
}

func TestQuestsSummary(t *testing.T) {
	s, _ := newTestServer(t)
	var body questsResponse
	decode(t, get(t, s, "/api/quests?group=Main"), &body)

	require.Len(t, body.Sections, 1)
	require.Len(t, body.Sections[0].Quests, 1)
	assert.Equal(t, questSummary{ID: "F", Name: "Finale", Group: "Main", Trader: "Bo", Level: 2}, body.Sections[0].Quests[0])
}

func TestQuestsBadMilestones(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/quests?milestones=maybe")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	decode(t, rec, &body)
	assert.Equal(t, "INVALID_INPUT", string(body.Code))
}

func TestQuestDetail(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/quests/M2")
	require.Equal(t, http.StatusOK, rec.Code)

	var d detail.Detail
	decode(t, rec, &d)
	assert.Equal(t, "Scout Ruins", d.Quest.Name)
	assert.Equal(t, 1, d.Level)
	assert.Equal(t, []detail.Link{
		{ID: "R", Name: "Start", Known: true},
		{ID: "ghost", Known: false},
	}, d.Prerequisites)
	assert.Equal(t, []detail.Link{{ID: "F", Name: "Finale", Known: true}}, d.Dependents)
}

func TestQuestDetailNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/quests/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body errorBody
	decode(t, rec, &body)
	assert.Equal(t, "QUEST_NOT_FOUND", string(body.Code))
}

func TestGroups(t *testing.T) {
	s, _ := newTestServer(t)
	var body groupsResponse
	decode(t, get(t, s, "/api/groups"), &body)

	assert.Equal(t, []string{"Intro", "Side", "Main"}, names(body.Groups))
	assert.Equal(t, 2, body.Groups[0].Count)
	assert.Equal(t, []string{"Ana", "generic", "Bo"}, names(body.Categories))
}

func TestLayout(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/layout")
	require.Equal(t, http.StatusOK, rec.Code)

	l, err := graph.UnmarshalLayout(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, l.MaxLevel)
	assert.Equal(t, graph.Point{X: -100, Y: 150}, l.Positions["M1"])
	assert.Equal(t, s.Snapshot().Layout.RunID, l.RunID)
}

func TestGraph(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/graph")
	require.Equal(t, http.StatusOK, rec.Code)

	var g graph.Graph
	decode(t, rec, &g)
	require.Len(t, g.Nodes, 4)
	assert.Equal(t, "R", g.Nodes[0].ID)
	assert.True(t, g.Nodes[0].Milestone)
	// The reference to "ghost" is not an edge.
	assert.Len(t, g.Edges, 4)
	assert.Contains(t, g.Edges, graph.Edge{From: "M2", To: "F"})
}

func TestWarnings(t *testing.T) {
	s, _ := newTestServer(t)
	var ws []pipeline.Warning
	decode(t, get(t, s, "/api/warnings"), &ws)

	require.Len(t, ws, 1)
	assert.Equal(t, pipeline.WarnDangling, ws[0].Kind)
	assert.Equal(t, []string{"M2"}, ws[0].Quests)
}

func TestGraphSVG(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/graph.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `id="quest-F"`)

	rec = get(t, s, "/api/graph.svg?selected=M1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="quest selected"`)

	rec = get(t, s, "/api/graph.svg?selected=nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/nothing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
}

func TestReloadKeepsSnapshotOnError(t *testing.T) {
	s, path := newTestServer(t)
	before := s.Snapshot()

	require.NoError(t, os.WriteFile(path, []byte(`{"quests": [`), 0o644))
	assert.Error(t, s.Reload(context.Background()))
	assert.Same(t, before, s.Snapshot())

	require.NoError(t, os.WriteFile(path, []byte(`{"quests": [{"id": "solo", "unlockMilestone": true, "prerequisites": []}]}`), 0o644))
	require.NoError(t, s.Reload(context.Background()))
	assert.Equal(t, 1, s.Snapshot().Dataset.Graph.Len())
}

func TestWatchReloads(t *testing.T) {
	s, path := newTestServer(t)
	s.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Watch(ctx))

	require.NoError(t, os.WriteFile(path, []byte(`{"quests": [{"id": "solo", "unlockMilestone": true, "prerequisites": []}]}`), 0o644))

	assert.Eventually(t, func() bool {
		return s.Snapshot().Dataset.Graph.Len() == 1
	}, 5*time.Second, 20*time.Millisecond)
}

func TestNewRejectsBadOptions(t *testing.T) {
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	_, err := New(context.Background(), runner, pipeline.Options{Path: filepath.Join(t.TempDir(), "missing.json")}, nil)
	assert.Error(t, err)
}

func names(cs []filter.Category) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}
