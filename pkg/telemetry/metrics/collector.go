package metrics

import (
	"errors"
	"time"

	"notesponge-hq/mdsync/pkg/config"
	"notesponge-hq/mdsync/pkg/notes"
	"notesponge-hq/mdsync/pkg/notes/export"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric mdsync exposes. It satisfies both
// storage.Observer and export.Observer, so one instance can be handed to the
// executor and the exporter.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	exportMetrics    *ExportMetrics
	statementMetrics *StatementMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is used.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "notesponge",
//		Subsystem: "mdsync",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	return &Collector{
		config:           cfg,
		registry:         registry,
		exportMetrics:    NewExportMetrics(cfg, registry),
		statementMetrics: NewStatementMetrics(cfg, registry),
	}
}

// ObserveExport records the outcome of one export run. result may describe a
// partial run when err is non-nil.
func (c *Collector) ObserveExport(result *export.Result, err error) {
	if !c.config.Enabled {
		return
	}

	status := "success"
	if err != nil {
		status = "error"
		c.exportMetrics.RecordFailure(ErrorKind(err))
	}

	var pages, images int
	var duration time.Duration
	if result != nil {
		pages, images, duration = result.Pages, result.Images, result.Duration
	}
	c.exportMetrics.RecordRun(status, duration, pages, images)
}

// ObserveStatement records one executor call.
func (c *Collector) ObserveStatement(operation string, duration time.Duration, err error) {
	if !c.config.Enabled {
		return
	}

	c.statementMetrics.RecordStatement(operation, duration, err)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ErrorKind maps an error onto the low-cardinality label used by failure
// counters.
func ErrorKind(err error) string {
	var (
		cfgErr    *notes.ConfigurationError
		ioErr     *notes.IOError
		dbErr     *notes.DatabaseError
		decodeErr *notes.DecodeError
	)

	switch {
	case err == nil:
		return "none"
	case errors.As(err, &cfgErr):
		return "configuration"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &ioErr):
		return "io"
	case errors.As(err, &dbErr):
		return "database"
	default:
		return "other"
	}
}
