package export

import (
	"context"
	"log/slog"
	"sync"
)

// SyncPathSource supplies the configured export directory.
type SyncPathSource interface {
	SyncPath() (string, error)
}

// Service is the parameterless sync action exposed to the UI shell and the
// background triggers. Runs are serialized; a run requested while another is
// in flight waits for it to finish.
type Service struct {
	exporter *Exporter
	settings SyncPathSource
	mu       sync.Mutex
	logger   *slog.Logger
}

// NewService creates a sync service that exports into the directory named by
// settings.
func NewService(exporter *Exporter, settings SyncPathSource) *Service {
	return &Service{
		exporter: exporter,
		settings: settings,
		logger:   slog.Default().With("component", "notes.export.service"),
	}
}

// Sync exports into the configured sync directory and returns the run summary.
func (s *Service) Sync(ctx context.Context) (*Result, error) {
	dir, err := s.settings.SyncPath()
	if err != nil {
		s.logger.Error("sync path unavailable", "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.exporter.Export(ctx, dir)
}

// SyncToDirectory exports into the configured sync directory.
func (s *Service) SyncToDirectory(ctx context.Context) error {
	_, err := s.Sync(ctx)
	return err
}

// SyncAsync runs SyncToDirectory in its own goroutine. The returned channel
// yields exactly one value, nil on success, and is then closed.
func (s *Service) SyncAsync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- s.SyncToDirectory(ctx)
	}()
	return done
}

// SyncError runs a sync and returns the message to display, or "" on
// success.
func (s *Service) SyncError(ctx context.Context) string {
	if err := <-s.SyncAsync(ctx); err != nil {
		return err.Error()
	}
	return ""
}
