// Package logging assembles structured slog loggers and formatting helpers used
// across ngramsubset.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing (stderr plus an optional log file, never stdout), and exposes
// context-aware helpers so each save is tagged with its request ID. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
