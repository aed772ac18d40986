// Package server serves a quest graph and its layout over HTTP.
//
// The server keeps one immutable [Snapshot] (graph, layout, diagnostics) and
// swaps it atomically when the dataset is reloaded, so handlers never see a
// partially computed layout. With watching enabled, the dataset file is
// reloaded whenever it changes on disk.
//
// # Routes
//
//	GET /healthz                 liveness and snapshot summary
//	GET /api/quests              sidebar sections; ?group= &trader= &q= &milestones=true
//	GET /api/quests/{id}         detail panel for one quest
//	GET /api/groups              groups and trader categories with counts
//	GET /api/layout              the layout document
//	GET /api/graph               nodes and prerequisite edges without positions
//	GET /api/warnings            data-quality warnings
//	GET /api/graph.svg           rendered graph; ?selected=ID highlights a quest
//
// Errors are returned as {"error": message, "code": CODE} with the status
// given by errors.HTTPStatus.
package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/questgraph/pkg/graph"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/pipeline"
)

const shutdownTimeout = 5 * time.Second

// Snapshot is an immutable view of a loaded dataset and its layout.
type Snapshot struct {
	Dataset  *pipeline.Dataset
	Layout   graph.Layout
	Result   *layout.Result
	Warnings []pipeline.Warning
	LoadedAt time.Time
}

// Server serves one dataset.
type Server struct {
	runner *pipeline.Runner
	opts   pipeline.Options
	logger *log.Logger

	snap   atomic.Pointer[Snapshot]
	router chi.Router

	debounce time.Duration
}

// New validates opts, loads the dataset at opts.Path and returns a server
// ready to handle requests.
func New(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, logger *log.Logger) (*Server, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner:   runner,
		opts:     opts,
		logger:   logger,
		debounce: defaultDebounce,
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	s.router = s.routes()
	return s, nil
}

// Reload re-reads the dataset, lays it out and publishes the new snapshot.
// On error the current snapshot stays in place.
func (s *Server) Reload(ctx context.Context) error {
	ds, err := s.runner.Load(ctx, s.opts.Path)
	if err != nil {
		return err
	}
	l, hit, err := s.runner.ComputeLayoutWithCacheInfo(ctx, ds, s.opts)
	if err != nil {
		return err
	}
	res := l.Result()
	snap := &Snapshot{
		Dataset:  ds,
		Layout:   l,
		Result:   res,
		Warnings: pipeline.Diagnose(ds.Graph, res),
		LoadedAt: time.Now(),
	}
	s.snap.Store(snap)

	s.logger.Info("loaded dataset",
		"path", ds.Path,
		"quests", ds.Graph.Len(),
		"levels", l.MaxLevel+1,
		"warnings", len(snap.Warnings),
		"cached", hit)
	return nil
}

// Snapshot returns the current snapshot.
func (s *Server) Snapshot() *Snapshot { return s.snap.Load() }

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
