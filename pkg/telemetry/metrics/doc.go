// Package metrics provides Prometheus metrics for mdsync.
//
// # Overview
//
// A Collector owns a registry and two metric groups:
//
//   - Export metrics: run count by status, failures by error kind, run
//     duration, files written, last success time
//   - Statement metrics: executor calls by operation and status, and their
//     duration
//
// The Collector implements the observer hooks of the storage executor and
// the exporter, so wiring it is a matter of passing it to both:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	exec := storage.NewExecutor(db, collector)
//	exporter := export.NewExporter(exec, collector)
//
// When metrics are disabled in configuration, the hooks return immediately
// and the registry stays empty of samples.
//
// # Prometheus Endpoint
//
// Handler exposes the registry in the Prometheus exposition format:
//
//	# HELP notesponge_mdsync_export_runs_total Total number of export runs
//	# TYPE notesponge_mdsync_export_runs_total counter
//	notesponge_mdsync_export_runs_total{status="success"} 12
package metrics
