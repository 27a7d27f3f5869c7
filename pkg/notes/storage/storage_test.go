package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

// createTestDB opens a fresh database in a temporary directory and creates
// the given schema.
func createTestDB(t *testing.T, schema ...string) (*DB, *Executor) {
	t.Helper()

	config := &Config{
		Driver:       DriverModernc,
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
		ForeignKeys:  true,
	}

	db, err := Open(config)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	exec := NewExecutor(db, nil)
	for _, stmt := range schema {
		if _, err := exec.Mutate(context.Background(), stmt, nil); err != nil {
			t.Fatalf("Failed to apply schema %q: %v", stmt, err)
		}
	}

	return db, exec
}

// recordingObserver captures statement outcomes.
type recordingObserver struct {
	operations []string
	failures   int
}

func (o *recordingObserver) ObserveStatement(operation string, _ time.Duration, err error) {
	o.operations = append(o.operations, operation)
	if err != nil {
		o.failures++
	}
}
