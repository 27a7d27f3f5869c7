package export

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcher_SyncsOnDatabaseChange(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "notesponge.db")
	if err := os.WriteFile(dbPath, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	syncer := newCountingSyncer()
	w, err := NewWatcher(syncer, &WatcherConfig{
		DatabasePath:     dbPath,
		DebounceInterval: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Watch(ctx)
	defer w.Stop()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(dbPath+"-wal", []byte{byte(i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-syncer.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("database change did not trigger a sync")
	}

	// The burst collapses into a single sync.
	time.Sleep(200 * time.Millisecond)
	if n := syncer.count(); n != 1 {
		t.Errorf("sync ran %d times, want 1", n)
	}
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "notesponge.db")

	syncer := newCountingSyncer()
	w, err := NewWatcher(syncer, &WatcherConfig{
		DatabasePath:     dbPath,
		DebounceInterval: 20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Watch(ctx)
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "1_page.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dbPath+"-shm", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)
	if n := syncer.count(); n != 0 {
		t.Errorf("sync ran %d times for unrelated files, want 0", n)
	}
}

func TestNewWatcher_RequiresPath(t *testing.T) {
	if _, err := NewWatcher(newCountingSyncer(), &WatcherConfig{}); err == nil {
		t.Error("NewWatcher() expected error without database path")
	}
}

func TestWatcher_ShouldProcessEvent(t *testing.T) {
	w := &Watcher{config: &WatcherConfig{DatabasePath: "/data/notesponge.db"}}

	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/data/notesponge.db", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/data/notesponge.db-wal", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/data/notesponge.db-journal", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/data/notesponge.db-shm", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/data/notesponge.db", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/data/other.db", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		if got := w.shouldProcessEvent(tt.event); got != tt.want {
			t.Errorf("shouldProcessEvent(%s %s) = %v, want %v", tt.event.Op, tt.event.Name, got, tt.want)
		}
	}
}

func TestDebouncer_CollapsesBurst(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var calls, last atomic.Int32
	for i := int32(1); i <= 5; i++ {
		n := i
		d.Trigger(func() {
			calls.Add(1)
			last.Store(n)
		})
	}

	time.Sleep(200 * time.Millisecond)
	if calls.Load() != 1 {
		t.Errorf("callback ran %d times, want 1", calls.Load())
	}
	if last.Load() != 5 {
		t.Errorf("callback from trigger %d ran, want the last", last.Load())
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })

	time.Sleep(150 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("callback ran %d times after Stop, want 0", calls.Load())
	}
}
