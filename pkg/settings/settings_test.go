package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"notesponge-hq/mdsync/pkg/notes"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}
	return path
}

func TestStore_SyncPath(t *testing.T) {
	path := writeSettings(t, `{"sync_path": "/tmp/notes", "theme": "dark"}`)

	got, err := NewStore(path).SyncPath()
	if err != nil {
		t.Fatalf("SyncPath() error = %v", err)
	}
	if got != "/tmp/notes" {
		t.Errorf("SyncPath() = %q, want /tmp/notes", got)
	}
}

func TestStore_SyncPathErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"absent", `{"theme": "dark"}`, notes.ErrMissingSyncPath},
		{"null", `{"sync_path": null}`, notes.ErrMissingSyncPath},
		{"empty", `{"sync_path": ""}`, notes.ErrMissingSyncPath},
		{"number", `{"sync_path": 42}`, notes.ErrSyncPathNotString},
		{"bool", `{"sync_path": true}`, notes.ErrSyncPathNotString},
		{"object", `{"sync_path": {"dir": "/tmp"}}`, notes.ErrSyncPathNotString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(writeSettings(t, tt.content)).SyncPath()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SyncPath() error = %v, want %v", err, tt.wantErr)
			}
			var cfgErr *notes.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %T, want *notes.ConfigurationError", err)
			}
			if cfgErr.Key != SyncPathKey {
				t.Errorf("Key = %q, want %q", cfgErr.Key, SyncPathKey)
			}
		})
	}
}

func TestStore_MissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.json"))

	_, err := store.SyncPath()
	if !errors.Is(err, notes.ErrMissingSyncPath) {
		t.Errorf("SyncPath() error = %v, want ErrMissingSyncPath", err)
	}
}

func TestStore_MalformedFile(t *testing.T) {
	store := NewStore(writeSettings(t, `{"sync_path": `))

	_, err := store.SyncPath()
	var cfgErr *notes.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("SyncPath() error = %v, want *notes.ConfigurationError", err)
	}
	if errors.Is(err, notes.ErrMissingSyncPath) {
		t.Error("malformed file reported as missing key")
	}
}

func TestStore_SeesUpdates(t *testing.T) {
	path := writeSettings(t, `{"sync_path": "/first"}`)
	store := NewStore(path)

	if got, _ := store.SyncPath(); got != "/first" {
		t.Fatalf("SyncPath() = %q, want /first", got)
	}

	if err := os.WriteFile(path, []byte(`{"sync_path": "/second"}`), 0o644); err != nil {
		t.Fatalf("Failed to rewrite settings: %v", err)
	}
	if got, _ := store.SyncPath(); got != "/second" {
		t.Errorf("SyncPath() = %q after update, want /second", got)
	}
}

func TestStore_EnvOverride(t *testing.T) {
	t.Setenv("MDSYNC_SYNC_PATH", "/from/env")
	store := NewStore(writeSettings(t, `{"sync_path": "/from/file"}`))

	got, err := store.SyncPath()
	if err != nil {
		t.Fatalf("SyncPath() error = %v", err)
	}
	if got != "/from/env" {
		t.Errorf("SyncPath() = %q, want /from/env", got)
	}
}
