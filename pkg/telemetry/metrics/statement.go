package metrics

import (
	"time"

	"notesponge-hq/mdsync/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// StatementMetrics tracks executor calls against the database.
//
// Metrics:
//   - notesponge_mdsync_statements_total: Calls by operation and status
//   - notesponge_mdsync_statement_duration_seconds: Call duration by operation
type StatementMetrics struct {
	statementsTotal *prometheus.CounterVec
	duration        *prometheus.HistogramVec
}

// NewStatementMetrics creates and registers statement metrics with the provided registry.
func NewStatementMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *StatementMetrics {
	sm := &StatementMetrics{
		statementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "statements_total",
				Help:      "Total number of SQL statements executed",
			},
			[]string{"operation", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "statement_duration_seconds",
				Help:      "SQL statement duration in seconds, including row marshaling",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation"},
		),
	}

	registry.MustRegister(sm.statementsTotal, sm.duration)

	return sm
}

// RecordStatement records one statement. operation is one of the executor's
// fixed operation names.
func (sm *StatementMetrics) RecordStatement(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	sm.statementsTotal.WithLabelValues(operation, status).Inc()
	sm.duration.WithLabelValues(operation).Observe(duration.Seconds())
}
