package export

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Syncer runs one export into the configured directory.
type Syncer interface {
	Sync(ctx context.Context) (*Result, error)
}

// Scheduler runs the sync on a cron schedule. A run still in progress when the
// next one is due causes that tick to be skipped.
type Scheduler struct {
	syncer   Syncer
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewScheduler creates a scheduler for the given cron expression.
func NewScheduler(syncer Syncer, schedule string) *Scheduler {
	logger := slog.Default().With("component", "notes.export.scheduler")
	return &Scheduler{
		syncer:   syncer,
		schedule: schedule,
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DiscardLogger),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		logger: logger,
	}
}

// Start begins running the sync on schedule. Standard five-field expressions
// and descriptors are accepted:
//   - "*/15 * * * *" - every 15 minutes
//   - "@hourly"      - at the top of every hour
//   - "@every 30s"   - every 30 seconds
//
// An empty schedule leaves the scheduler idle. The scheduler stops when ctx
// is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("sync schedule not configured, skipping scheduler")
		return nil
	}
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.runSync(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule sync: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("sync scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Scheduler) runSync(ctx context.Context) {
	s.logger.Info("starting scheduled sync")

	result, err := s.syncer.Sync(ctx)
	if err != nil {
		s.logger.Error("scheduled sync failed", "error", err)
		return
	}

	s.logger.Info("scheduled sync completed",
		"run_id", result.RunID,
		"pages", result.Pages,
		"images", result.Images,
	)
}

// Stop stops the scheduler and waits for a running sync to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.logger.Info("sync scheduler stopped")
	}
}

// IsRunning reports whether the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled sync time, or nil when none is
// scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
