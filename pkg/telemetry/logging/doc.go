// Package logging configures the process-wide structured logger.
//
// # Overview
//
// Components log through log/slog, each deriving a child of the default
// logger tagged with its name:
//
//	logger := slog.Default().With("component", "notes.export")
//
// This package builds the handler from configuration and installs it as
// the default, so that one call at startup decides level, format, and
// destination for every component:
//
//	logger, err := logging.Setup(logging.Config{
//	    Level:  "info",
//	    Format: "text",
//	})
//
// # Formats
//
//   - json: one JSON object per line
//   - text: key=value pairs
//   - console: key=value pairs with a short wall-clock timestamp
package logging
