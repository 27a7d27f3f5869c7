package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// Fields the file omits keep their defaults, and a missing file yields the
// default configuration. The result is validated.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention MDSYNC_SECTION_FIELD (e.g., MDSYNC_DATABASE_PATH).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Values that do not parse are ignored.
func applyEnvOverrides(cfg *Config) {
	// Database overrides
	envString("MDSYNC_DATABASE_DRIVER", &cfg.Database.Driver)
	envString("MDSYNC_DATABASE_PATH", &cfg.Database.Path)
	envBool("MDSYNC_DATABASE_WAL_MODE", &cfg.Database.WALMode)
	envDuration("MDSYNC_DATABASE_BUSY_TIMEOUT", &cfg.Database.BusyTimeout)
	envInt("MDSYNC_DATABASE_MAX_OPEN_CONNS", &cfg.Database.MaxOpenConns)
	envBool("MDSYNC_DATABASE_FOREIGN_KEYS", &cfg.Database.ForeignKeys)

	// Settings overrides
	envString("MDSYNC_SETTINGS_PATH", &cfg.Settings.Path)

	// Export overrides
	envString("MDSYNC_EXPORT_DIR", &cfg.Export.Dir)
	envString("MDSYNC_EXPORT_SCHEDULE", &cfg.Export.Schedule)
	envBool("MDSYNC_EXPORT_WATCH", &cfg.Export.Watch)
	envDuration("MDSYNC_EXPORT_DEBOUNCE_INTERVAL", &cfg.Export.DebounceInterval)

	// Telemetry overrides
	envString("MDSYNC_TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("MDSYNC_TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBool("MDSYNC_TELEMETRY_LOGGING_ADD_SOURCE", &cfg.Telemetry.Logging.AddSource)
	envBool("MDSYNC_TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	envString("MDSYNC_TELEMETRY_METRICS_LISTEN_ADDRESS", &cfg.Telemetry.Metrics.ListenAddress)
}

func envString(key string, dst *string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func envBool(key string, dst *bool) {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func envInt(key string, dst *int) {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}
