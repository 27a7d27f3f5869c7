package export

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig contains configuration for the database watcher.
type WatcherConfig struct {
	// DatabasePath is the SQLite database file whose changes trigger a sync.
	DatabasePath string

	// DebounceInterval is the quiet period after the last change before a
	// sync starts (default: 500ms)
	DebounceInterval time.Duration
}

// Watcher triggers a sync when the database changes. It watches the
// database's directory, since SQLite replaces and recreates its journal
// files, and reacts only to the database file and its WAL or rollback
// journal.
type Watcher struct {
	syncer   Syncer
	config   *WatcherConfig
	watcher  *fsnotify.Watcher
	debounce *Debouncer
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a database watcher.
func NewWatcher(syncer Syncer, config *WatcherConfig) (*Watcher, error) {
	if config == nil || config.DatabasePath == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = 500 * time.Millisecond
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		syncer:   syncer,
		config:   config,
		watcher:  fw,
		debounce: NewDebouncer(config.DebounceInterval),
		logger:   slog.Default().With("component", "notes.export.watcher"),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks, syncing after each debounced burst of database changes, until
// ctx is cancelled or Stop is called. Sync failures are logged and watching
// continues.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer close(w.doneCh)

	dir := filepath.Dir(w.config.DatabasePath)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	w.logger.Info("database watcher started",
		"database", w.config.DatabasePath,
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("database watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("database watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.shouldProcessEvent(event) {
				continue
			}

			w.logger.Debug("database change detected", "path", event.Name, "op", event.Op.String())

			w.debounce.Trigger(func() {
				result, err := w.syncer.Sync(ctx)
				if err != nil {
					w.logger.Error("triggered sync failed", "error", err)
					return
				}
				w.logger.Info("triggered sync completed",
					"run_id", result.RunID,
					"pages", result.Pages,
					"images", result.Images,
				)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("database watcher error", "error", err)
		}
	}
}

// Stop stops the watcher and cancels any pending sync.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}

	w.debounce.Stop()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// shouldProcessEvent reports whether event touches the database or its
// journal.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	db := filepath.Clean(w.config.DatabasePath)
	switch filepath.Clean(event.Name) {
	case db, db + "-wal", db + "-journal":
		return true
	}
	return false
}

// Debouncer collapses a burst of triggers into one callback that runs after a
// quiet period.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopped  bool
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules callback to run once interval has passed without another
// trigger. Only the most recent callback runs.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.callback = callback
	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		cb := d.callback
		stopped := d.stopped
		d.mu.Unlock()

		if cb != nil && !stopped {
			cb()
		}
	})
}

// Stop cancels any pending callback. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
