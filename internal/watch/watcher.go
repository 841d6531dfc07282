// Package watch reports changes to a single file on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events a single save produces.
const DefaultDebounce = 300 * time.Millisecond

// Stats counts watcher activity.
type Stats struct {
	Events        int
	Changes       int
	Errors        int
	LastEventTime time.Time
	LastEventType string
}

// FileWatcher watches the directory holding a file so that editors which
// replace the file on save are still seen, and reports settled changes.
type FileWatcher struct {
	mu        sync.Mutex
	watcher   *fsnotify.Watcher
	path      string
	debounce  time.Duration
	logger    *zap.Logger
	stats     Stats
	closeOnce sync.Once
}

// New starts watching the directory of path.
func New(path string, logger *zap.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	logger.Debug("watching input", zap.String("file", abs))
	return &FileWatcher{
		watcher:  watcher,
		path:     abs,
		debounce: DefaultDebounce,
		logger:   logger,
	}, nil
}

// setDebounce changes how long the file must stay quiet before a change
// is reported. Call it before Run.
func (w *FileWatcher) setDebounce(d time.Duration) {
	w.mu.Lock()
	w.debounce = d
	w.mu.Unlock()
}

// Run calls onChange each time the file settles after being written or
// recreated. It blocks until ctx is done and releases the watcher on return.
func (w *FileWatcher) Run(ctx context.Context, onChange func()) error {
	defer w.Close()
	defer w.logStats()

	ticker := time.NewTicker(max(w.debounce/4, 10*time.Millisecond))
	defer ticker.Stop()

	var pending time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.record(event) {
				pending = time.Now()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < w.debounce {
				continue
			}
			pending = time.Time{}
			w.mu.Lock()
			w.stats.Changes++
			w.mu.Unlock()
			w.logger.Debug("input changed", zap.String("file", w.path))
			onChange()
		}
	}
}

// record updates stats and reports whether the event should trigger a reload.
func (w *FileWatcher) record(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}

	var eventType string
	switch {
	case event.Has(fsnotify.Create):
		eventType = "create"
	case event.Has(fsnotify.Write):
		eventType = "modify"
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eventType = "delete"
	default:
		return false
	}

	w.mu.Lock()
	w.stats.Events++
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventType = eventType
	w.mu.Unlock()

	// A removed file keeps the last data on screen until it comes back.
	return eventType != "delete"
}

func (w *FileWatcher) logStats() {
	stats := w.Stats()
	w.logger.Debug("watch stopped",
		zap.String("file", w.path),
		zap.Int("events", stats.Events),
		zap.Int("changes", stats.Changes),
		zap.Int("errors", stats.Errors),
		zap.String("last_event", stats.LastEventType))
}

// Stats returns a snapshot of the watcher counters.
func (w *FileWatcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Close releases the underlying watcher. It is safe to call more than once.
func (w *FileWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}
