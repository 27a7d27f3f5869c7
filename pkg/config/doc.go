// Package config provides configuration management for mdsync.
//
// This package loads configuration from a YAML file with environment
// variable overrides, applies defaults, and validates the result.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("mdsync.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("mdsync.yaml")
//
// A missing file is not an error; every field keeps its default.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention MDSYNC_SECTION_FIELD.
// For example:
//
//   - MDSYNC_DATABASE_PATH overrides database.path
//   - MDSYNC_EXPORT_SCHEDULE overrides export.schedule
//   - MDSYNC_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
//	cfg, err := config.LoadConfigWithEnvOverrides("mdsync.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	config.SetConfig(cfg)
//	cfg = config.GetConfig()
//
// For testing, prefer dependency injection with explicit Config instances
// rather than the global singleton.
//
// # Example Configuration
//
//	database:
//	  path: "~/Library/Application Support/notesponge/notesponge.db"
//	  busy_timeout: 5s
//
//	settings:
//	  path: "~/Library/Application Support/notesponge/settings.json"
//
//	export:
//	  schedule: "*/15 * * * *"
//	  watch: true
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "text"
//	  metrics:
//	    listen_address: "127.0.0.1:9464"
package config
