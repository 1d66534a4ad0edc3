// Package logging assembles structured slog loggers and formatting helpers used
// across vidsub.
//
// It owns the configurable console/JSON handlers, fans console output and the
// JSON log file out from one logger, and exposes context-aware helpers so
// pipeline code can tag log lines with video IDs, stages, and run IDs. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
