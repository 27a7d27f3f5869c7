package config

import "time"

// Config is the root configuration structure for mdsync.
// It contains the database connection, the settings store location, export
// triggers, and telemetry.
type Config struct {
	// Database contains the SQLite connection configuration.
	Database DatabaseConfig `yaml:"database"`

	// Settings locates the NoteSponge key-value settings store.
	Settings SettingsConfig `yaml:"settings"`

	// Export contains the export directory override and the scheduled and
	// watched sync triggers.
	Export ExportConfig `yaml:"export"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DatabaseConfig contains configuration for the NoteSponge database.
type DatabaseConfig struct {
	// Driver selects the SQLite driver.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the database file path.
	// Default: "notesponge.db"
	Path string `yaml:"path"`

	// WALMode enables Write-Ahead Logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long a statement waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 1
	MaxOpenConns int `yaml:"max_open_conns"`

	// ForeignKeys enables foreign key enforcement.
	// Default: true
	ForeignKeys bool `yaml:"foreign_keys"`
}

// SettingsConfig locates the settings store.
type SettingsConfig struct {
	// Path is the JSON settings file holding sync_path.
	// Default: "settings.json"
	Path string `yaml:"path"`
}

// ExportConfig contains export configuration.
type ExportConfig struct {
	// Dir overrides the sync_path setting when non-empty.
	// Default: ""
	Dir string `yaml:"dir"`

	// Schedule is a cron expression for periodic syncs in watch mode.
	// Empty disables scheduled syncs.
	// Default: ""
	Schedule string `yaml:"schedule"`

	// Watch enables syncing after the database file changes in watch mode.
	// Default: true
	Watch bool `yaml:"watch"`

	// DebounceInterval is the quiet period after a database change before a
	// sync starts.
	// Default: 500ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "notesponge"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "mdsync"
	Subsystem string `yaml:"subsystem"`

	// ListenAddress serves the Prometheus endpoint at /metrics in watch mode.
	// Empty disables the endpoint.
	// Default: ""
	ListenAddress string `yaml:"listen_address"`
}
