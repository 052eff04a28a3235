// Package logging provides structured logging configuration for mockhttp.
//
// This package wraps log/slog so every mockhttp component logs the same way.
// The transport is silent by default (logging.Nop()); tests that want to see
// match decisions pass a real logger via mockhttp.WithLogger.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatText,
//	})
//
//	transport := mockhttp.New(mockhttp.WithLogger(logger))
//
// # Output Formats
//
//   - Text: human-readable, for watching a test run
//   - JSON: structured, for log aggregation in CI
package logging
