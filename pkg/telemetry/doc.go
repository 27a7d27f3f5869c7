// Package telemetry groups the observability packages used by mdsync.
//
// # Components
//
//   - logging: builds the process-wide slog logger from configuration
//   - metrics: Prometheus metrics for export runs and SQL statements
//   - health: liveness, readiness, and version endpoints
//
// # Usage
//
//	cfg := config.GetConfig()
//
//	logger, err := logging.Setup(logging.FromConfig(cfg.Telemetry.Logging))
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	exec := storage.NewExecutor(db, collector)
//	exporter := export.NewExporter(exec, collector)
//
//	checker := health.New(5*time.Second, health.Check{Name: "database", Run: exec.Ping})
//
//	mux := http.NewServeMux()
//	mux.Handle("/metrics", collector.Handler())
//	health.Register(mux, checker, version, commit, buildTime)
package telemetry
