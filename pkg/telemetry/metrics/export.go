package metrics

import (
	"time"

	"notesponge-hq/mdsync/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ExportMetrics tracks export runs.
//
// Metrics:
//   - notesponge_mdsync_export_runs_total: Runs by status
//   - notesponge_mdsync_export_failures_total: Failed runs by error kind
//   - notesponge_mdsync_export_duration_seconds: Run duration histogram
//   - notesponge_mdsync_export_pages_total: Markdown files written
//   - notesponge_mdsync_export_images_total: Image files written
//   - notesponge_mdsync_export_last_success_timestamp_seconds: Unix time of the last successful run
type ExportMetrics struct {
	runsTotal     *prometheus.CounterVec
	failuresTotal *prometheus.CounterVec
	duration      prometheus.Histogram
	pagesTotal    prometheus.Counter
	imagesTotal   prometheus.Counter
	lastSuccess   prometheus.Gauge
}

// NewExportMetrics creates and registers export metrics with the provided registry.
func NewExportMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ExportMetrics {
	em := &ExportMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_runs_total",
				Help:      "Total number of export runs",
			},
			[]string{"status"},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_failures_total",
				Help:      "Total number of failed export runs by error kind",
			},
			[]string{"kind"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_duration_seconds",
				Help:      "Export run duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		pagesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_pages_total",
				Help:      "Total number of markdown files written",
			},
		),
		imagesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_images_total",
				Help:      "Total number of image files written",
			},
		),
		lastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_last_success_timestamp_seconds",
				Help:      "Unix time of the last successful export run",
			},
		),
	}

	registry.MustRegister(
		em.runsTotal,
		em.failuresTotal,
		em.duration,
		em.pagesTotal,
		em.imagesTotal,
		em.lastSuccess,
	)

	return em
}

// RecordRun records one finished run. pages and images count the files
// written, including those written before a failure.
func (em *ExportMetrics) RecordRun(status string, duration time.Duration, pages, images int) {
	em.runsTotal.WithLabelValues(status).Inc()
	em.duration.Observe(duration.Seconds())
	em.pagesTotal.Add(float64(pages))
	em.imagesTotal.Add(float64(images))

	if status == "success" {
		em.lastSuccess.SetToCurrentTime()
	}
}

// RecordFailure counts a failed run under its error kind.
func (em *ExportMetrics) RecordFailure(kind string) {
	em.failuresTotal.WithLabelValues(kind).Inc()
}
