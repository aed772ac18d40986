package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/questgraph/pkg/detail"
	"github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/filter"
	"github.com/matzehuels/questgraph/pkg/graph"
	"github.com/matzehuels/questgraph/pkg/model"
	"github.com/matzehuels/questgraph/pkg/observability"
	"github.com/matzehuels/questgraph/pkg/pipeline"
	"github.com/matzehuels/questgraph/pkg/render"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/quests", s.handleQuests)
		r.Get("/quests/{id}", s.handleQuest)
		r.Get("/groups", s.handleGroups)
		r.Get("/layout", s.handleLayout)
		r.Get("/graph", s.handleGraph)
		r.Get("/warnings", s.handleWarnings)
		r.Get("/graph.svg", s.handleGraphSVG)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	return r
}

// observe reports every request to the registered HTTP hooks and logs it at
// debug level.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status, "bytes", ww.BytesWritten())
	})
}

type healthResponse struct {
	Status   string    `json:"status"`
	Quests   int       `json:"quests"`
	Levels   int       `json:"levels"`
	Warnings int       `json:"warnings"`
	LoadedAt time.Time `json:"loaded_at"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Quests:   snap.Dataset.Graph.Len(),
		Levels:   snap.Layout.MaxLevel + 1,
		Warnings: len(snap.Warnings),
		LoadedAt: snap.LoadedAt,
	})
}

// questSummary is one sidebar entry.
type questSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Group     string `json:"group,omitempty"`
	Trader    string `json:"trader,omitempty"`
	Milestone bool   `json:"milestone,omitempty"`
	Level     int    `json:"level"`
}

type sectionResponse struct {
	Title  string         `json:"title"`
	Quests []questSummary `json:"quests"`
}

type questsResponse struct {
	Count    int               `json:"count"`
	Sections []sectionResponse `json:"sections"`
}

func (s *Server) handleQuests(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()
	q := r.URL.Query()

	c := filter.Criteria{
		Groups:  q["group"],
		Traders: q["trader"],
		Query:   q.Get("q"),
	}
	if v := q.Get("milestones"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "milestones must be a boolean, got %q", v))
			return
		}
		c.MilestonesOnly = b
	}

	g := snap.Dataset.Graph
	ids := filter.Apply(g, c)
	resp := questsResponse{Count: len(ids), Sections: []sectionResponse{}}
	for _, sec := range filter.Sections(g, ids) {
		out := sectionResponse{Title: sec.Title, Quests: make([]questSummary, 0, len(sec.IDs))}
		for _, id := range sec.IDs {
			out.Quests = append(out.Quests, summarize(g, snap, id))
		}
		resp.Sections = append(resp.Sections, out)
	}
	writeJSON(w, http.StatusOK, resp)
}

func summarize(g *model.Graph, snap *Snapshot, id string) questSummary {
	q, _ := g.Quest(id)
	return questSummary{
		ID:        id,
		Name:      q.DisplayName(),
		Group:     q.Group,
		Trader:    q.Trader,
		Milestone: q.UnlockMilestone,
		Level:     snap.Result.Level(id),
	}
}

func (s *Server) handleQuest(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()
	d, err := detail.Build(snap.Dataset.Graph, snap.Result, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type groupsResponse struct {
	Groups     []filter.Category `json:"groups"`
	Categories []filter.Category `json:"categories"`
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	g := s.Snapshot().Dataset.Graph
	resp := groupsResponse{Groups: []filter.Category{}, Categories: filter.Categories(g)}
	if resp.Categories == nil {
		resp.Categories = []filter.Category{}
	}
	for _, sec := range filter.Sections(g, g.IDs()) {
		resp.Groups = append(resp.Groups, filter.Category{Name: sec.Title, Count: len(sec.IDs)})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Snapshot().Layout)
}

// handleGraph serves the node-link graph without positions.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, graph.FromModel(s.Snapshot().Dataset.Graph))
}

func (s *Server) handleWarnings(w http.ResponseWriter, r *http.Request) {
	ws := s.Snapshot().Warnings
	if ws == nil {
		ws = []pipeline.Warning{}
	}
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()
	opts := s.opts
	opts.Formats = []string{string(render.FormatSVG)}
	opts.Selected = r.URL.Query().Get("selected")

	if opts.Selected != "" {
		if err := errors.ValidateQuestID(opts.Selected); err != nil {
			writeError(w, err)
			return
		}
		if !snap.Dataset.Graph.Has(opts.Selected) {
			writeError(w, errors.New(errors.ErrCodeQuestNotFound, "quest %q not found", opts.Selected))
			return
		}
	}

	artifacts, err := s.runner.Render(r.Context(), snap.Dataset.Graph, snap.Layout, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", render.FormatSVG.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[string(render.FormatSVG)])
}
