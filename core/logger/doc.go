// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) with console or JSON encoding.
//
// # Run Correlation
//
// Sync runs are correlated through a run identifier. The WithRunID helper
// attaches a fresh UUID to the logger so every line emitted during one
// reconciliation run can be grouped together.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRunID(log)
//	log.Info("Starting import")
package logger
