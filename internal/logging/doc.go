// Package logging provides structured logging with per-module log level configuration.
//
// # Overview
//
// The logging system uses Go's slog package with automatic output routing:
//   - Logs to systemd journal when available (Linux systems with journald)
//   - Logs to stdout when a terminal, pipe, or file is connected
//   - Logs to both when both are available
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",      // Global log level: debug, info, warn, error
//		Format: "text",      // Output format: text or json
//		Modules: map[string]string{
//			"probe":  "debug", // Per-module overrides
//			"asound": "warn",
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("probe")
//	logger.Info("discovery pass finished", "playback", 2)
//	logger.Debug("endpoint verified", "device", name)
//	logger.Warn("something unusual", "error", err)
//
// Add contextual attributes:
//
//	logger := logging.GetLogger("probe").With("device", name)
//	logger.Info("endpoint verified")  // Includes device in all logs
//
// # Log Levels
//
//	debug - Verbose debugging information
//	info  - General operational messages
//	warn  - Warning conditions
//	error - Error conditions
//
// # Output Destinations
//
// The system automatically detects available outputs:
//
//	Journal available + stdout available → MultiHandler (both)
//	Journal available only              → JournalHandler
//	Stdout available only               → TextHandler or JSONHandler
//
// Journal availability is checked via [github.com/coreos/go-systemd/v22/journal.Enabled].
//
// # Viewing Logs
//
// When run on a system with journald:
//
//	journalctl -t asound-conf-wizard              # All logs
//	journalctl -t asound-conf-wizard --since "5m" # Last 5 minutes
//	journalctl -t asound-conf-wizard -p err       # Errors only
//
// Filter by structured fields:
//
//	journalctl -t asound-conf-wizard MODULE=probe
//	journalctl -t asound-conf-wizard DEVICE=hw:CARD=Intel,DEV=0
//
// # Configuration
//
// Log levels can be set globally or per-module. Module-specific levels
// override the global level for that module only.
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//	probe = "debug"
//	wizard = "warn"
package logging
