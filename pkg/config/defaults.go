package config

import "time"

// Default values for configuration fields.
const (
	// Database defaults
	DefaultDatabaseDriver       = "sqlite"
	DefaultDatabasePath         = "notesponge.db"
	DefaultDatabaseWALMode      = true
	DefaultDatabaseBusyTimeout  = 5 * time.Second
	DefaultDatabaseMaxOpenConns = 1
	DefaultDatabaseForeignKeys  = true

	// Settings defaults
	DefaultSettingsPath = "settings.json"

	// Export defaults
	DefaultExportWatch            = true
	DefaultExportDebounceInterval = 500 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "text"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "notesponge"
	DefaultMetricsSubsystem = "mdsync"
)

// Defaults returns a configuration with every field at its default value.
// LoadConfig decodes YAML on top of it, so booleans whose default is true
// can still be switched off explicitly.
func Defaults() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:       DefaultDatabaseDriver,
			Path:         DefaultDatabasePath,
			WALMode:      DefaultDatabaseWALMode,
			BusyTimeout:  DefaultDatabaseBusyTimeout,
			MaxOpenConns: DefaultDatabaseMaxOpenConns,
			ForeignKeys:  DefaultDatabaseForeignKeys,
		},
		Settings: SettingsConfig{
			Path: DefaultSettingsPath,
		},
		Export: ExportConfig{
			Watch:            DefaultExportWatch,
			DebounceInterval: DefaultExportDebounceInterval,
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				Level:  DefaultLoggingLevel,
				Format: DefaultLoggingFormat,
			},
			Metrics: MetricsConfig{
				Enabled:   DefaultMetricsEnabled,
				Namespace: DefaultMetricsNamespace,
				Subsystem: DefaultMetricsSubsystem,
			},
		},
	}
}

// ApplyDefaults fills zero-valued string, number, and duration fields with
// their defaults. Booleans are left as they are.
func ApplyDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DefaultDatabaseDriver
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDatabasePath
	}
	if cfg.Database.BusyTimeout == 0 {
		cfg.Database.BusyTimeout = DefaultDatabaseBusyTimeout
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = DefaultDatabaseMaxOpenConns
	}

	// Settings defaults
	if cfg.Settings.Path == "" {
		cfg.Settings.Path = DefaultSettingsPath
	}

	// Export defaults
	if cfg.Export.DebounceInterval == 0 {
		cfg.Export.DebounceInterval = DefaultExportDebounceInterval
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
