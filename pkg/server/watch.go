package server

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// Watch reloads the dataset whenever its file changes, until ctx is
// cancelled. Bursts of events are coalesced into one reload. A failed reload
// is logged and the previous snapshot keeps being served.
//
// The containing directory is watched rather than the file itself, so
// editors that save by renaming a temporary file are picked up.
func (s *Server) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	target, err := filepath.Abs(s.opts.Path)
	if err != nil {
		watcher.Close()
		return fmt.Errorf("resolve %s: %w", s.opts.Path, err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	s.logger.Info("watching dataset", "path", target)

	go s.watchLoop(ctx, watcher, target)
	return nil
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string) {
	defer watcher.Close()

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(s.debounce, func() {
			if err := s.Reload(ctx); err != nil {
				s.logger.Error("reload failed, keeping previous snapshot", "err", err)
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != target {
				continue
			}
			s.logger.Debug("dataset changed", "file", event.Name, "op", event.Op.String())
			schedule()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", "err", err)
		}
	}
}
