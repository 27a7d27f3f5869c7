package main

import (
	"fmt"

	"notesponge-hq/mdsync/pkg/config"
	"notesponge-hq/mdsync/pkg/notes/export"
	"notesponge-hq/mdsync/pkg/notes/storage"
	"notesponge-hq/mdsync/pkg/settings"
	"notesponge-hq/mdsync/pkg/telemetry/metrics"
)

// app holds the components shared by the commands. The database handle is
// opened once and injected into the executor.
type app struct {
	cfg       *config.Config
	db        *storage.DB
	exec      *storage.Executor
	collector *metrics.Collector
	settings  export.SyncPathSource
	exporter  *export.Exporter
	service   *export.Service
}

// fixedDir is a sync path source that ignores the settings file.
type fixedDir string

func (d fixedDir) SyncPath() (string, error) {
	return string(d), nil
}

// newApp opens the database and wires the executor, exporter, and sync
// service. dir, or export.dir when dir is empty, replaces the sync_path
// setting as the export directory.
func newApp(cfg *config.Config, dir string) (*app, error) {
	db, err := storage.Open(&storage.Config{
		Driver:       cfg.Database.Driver,
		Path:         cfg.Database.Path,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxOpenConns,
		WALMode:      cfg.Database.WALMode,
		BusyTimeout:  cfg.Database.BusyTimeout,
		ForeignKeys:  cfg.Database.ForeignKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	exec := storage.NewExecutor(db, collector)
	exporter := export.NewExporter(exec, collector)

	if dir == "" {
		dir = cfg.Export.Dir
	}
	var source export.SyncPathSource = settings.NewStore(cfg.Settings.Path)
	if dir != "" {
		source = fixedDir(dir)
	}

	return &app{
		cfg:       cfg,
		db:        db,
		exec:      exec,
		collector: collector,
		settings:  source,
		exporter:  exporter,
		service:   export.NewService(exporter, source),
	}, nil
}

// Close closes the database handle.
func (a *app) Close() error {
	return a.db.Close()
}
