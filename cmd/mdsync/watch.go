package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"notesponge-hq/mdsync/pkg/cli"
	"notesponge-hq/mdsync/pkg/config"
	"notesponge-hq/mdsync/pkg/notes/export"
	"notesponge-hq/mdsync/pkg/telemetry/health"
)

const shutdownTimeout = 5 * time.Second

var watchFlags struct {
	dir            string
	schedule       string
	metricsAddress string
	noWatch        bool
	skipInitial    bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the export current",
	Long: `Run until interrupted, exporting after each burst of database changes and
on an optional cron schedule. Runs never overlap.

When a metrics address is set, an HTTP server exposes:
  /metrics  Prometheus metrics
  /health   liveness
  /ready    database and export directory checks
  /version  build information

Examples:
  # Export on every database change
  mdsync watch

  # Export every 15 minutes only
  mdsync watch --no-watch --schedule "*/15 * * * *"

  # Serve metrics while watching
  mdsync watch --metrics-address 127.0.0.1:9464`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.dir, "dir", "d", "", "export directory (overrides sync_path and export.dir)")
	watchCmd.Flags().StringVar(&watchFlags.schedule, "schedule", "", "cron schedule (overrides export.schedule)")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddress, "metrics-address", "", "metrics and health listen address (overrides telemetry.metrics.listen_address)")
	watchCmd.Flags().BoolVar(&watchFlags.noWatch, "no-watch", false, "do not export on database changes")
	watchCmd.Flags().BoolVar(&watchFlags.skipInitial, "skip-initial", false, "do not export once at startup")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	schedule := cfg.Export.Schedule
	if watchFlags.schedule != "" {
		schedule = watchFlags.schedule
	}
	address := cfg.Telemetry.Metrics.ListenAddress
	if watchFlags.metricsAddress != "" {
		address = watchFlags.metricsAddress
	}
	watchChanges := cfg.Export.Watch && !watchFlags.noWatch

	if schedule == "" && !watchChanges {
		return cli.NewCommandError("watch", errors.New("nothing to do: no schedule and change watching disabled"))
	}

	a, err := newApp(cfg, watchFlags.dir)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer a.Close()

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	logger := slog.Default().With("component", "cmd.watch")
	errChan := make(chan error, 2)

	if address != "" {
		srv := newTelemetryServer(a, address)
		go func() {
			logger.Info("telemetry server listening", "address", address)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("telemetry server: %w", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("telemetry server shutdown failed", "error", err)
			}
		}()
	}

	if !watchFlags.skipInitial {
		if result, err := a.service.Sync(ctx); err != nil {
			logger.Error("initial sync failed", "error", err)
		} else {
			logger.Info("initial sync completed", "run_id", result.RunID, "pages", result.Pages, "images", result.Images)
		}
	}

	scheduler := export.NewScheduler(a.service, schedule)
	if err := scheduler.Start(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}
	if scheduler.IsRunning() {
		defer scheduler.Stop()
		logger.Info("next scheduled sync", "at", scheduler.NextRun())
	}

	if watchChanges {
		watcher, err := export.NewWatcher(a.service, &export.WatcherConfig{
			DatabasePath:     cfg.Database.Path,
			DebounceInterval: cfg.Export.DebounceInterval,
		})
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer watcher.Stop()

		go func() {
			if err := watcher.Watch(ctx); err != nil {
				errChan <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return nil
	case err := <-errChan:
		return cli.NewCommandError("watch", err)
	}
}

// newTelemetryServer serves metrics and health endpoints for a running watch.
func newTelemetryServer(a *app, address string) *http.Server {
	checker := health.New(5*time.Second,
		health.Check{Name: "database", Run: a.exec.Ping},
		health.Check{Name: "sync_path", Run: func(ctx context.Context) error {
			_, err := a.settings.SyncPath()
			return err
		}},
	)

	mux := http.NewServeMux()
	if a.cfg.Telemetry.Metrics.Enabled {
		mux.Handle("/metrics", a.collector.Handler())
	}
	health.Register(mux, checker, Version, GitCommit, BuildDate)

	return &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
