// Package watch reloads the analyzer registry when the configuration
// file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/neox5/jetdqm/internal/config"
	"github.com/neox5/jetdqm/internal/jetdqm"
)

// DefaultDebounce is how long the watcher waits for further writes
// before reloading.
const DefaultDebounce = 250 * time.Millisecond

// Target receives reload results.
type Target interface {
	Store(reg *jetdqm.Registry)
	Failed()
}

// Watcher reloads a configuration file and hands the new registry to a
// target. Only the analyzer registry is swapped; export and settings
// changes take effect on restart.
type Watcher struct {
	path     string
	debounce time.Duration
	target   Target
	fs       *fsnotify.Watcher
	wg       sync.WaitGroup
}

// New creates a watcher for the configuration file at path. The parent
// directory is watched so editors that replace the file by rename are
// followed.
func New(path string, target Target) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		target:   target,
		fs:       fs,
	}, nil
}

// Run starts the event loop in a background goroutine.
// The loop exits and releases the watch when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	slog.Info("watching config", "path", w.path)

	w.wg.Go(func() {
		defer w.fs.Close()

		timer := time.NewTimer(w.debounce)
		timer.Stop()
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("config watcher shutdown complete")
				return

			case event, ok := <-w.fs.Events:
				if !ok {
					return
				}
				if !w.relevant(event) {
					continue
				}
				slog.Debug("config changed", "op", event.Op.String())
				timer.Reset(w.debounce)

			case err, ok := <-w.fs.Errors:
				if !ok {
					return
				}
				slog.Warn("config watcher error", "error", err)

			case <-timer.C:
				w.reload()
			}
		}
	})
}

// Wait blocks until the event loop exits.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// reload loads the file and stores the registry, or records the failure
// and keeps serving the previous one.
func (w *Watcher) reload() {
	cfg, err := config.Load(w.path)
	if err != nil {
		w.target.Failed()
		slog.Warn("config reload rejected", "path", w.path, "error", err)
		return
	}

	w.target.Store(cfg.Registry)
	slog.Info("config reloaded",
		"analyzers", cfg.Registry.Len(),
		"sequences", len(cfg.Registry.SequenceNames()))
}
