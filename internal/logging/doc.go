// Package logging assembles the structured slog loggers used by mdtree.
//
// It owns the console and JSON handlers, level parsing, and output routing
// (stderr plus an optional JSON log file), and exposes context-aware helpers
// so batch code can tag log lines with run IDs, document names, and execution
// phases. NewNop provides a silent logger for tests and optional wiring.
package logging
