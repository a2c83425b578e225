// Package services defines shared utilities consumed by the generation,
// extraction, and execution packages.
//
// Key responsibilities:
//   - Context helpers that stamp batch run IDs, document names, and execution
//     phases for logging.
//   - Structured error markers plus the Wrap helper that keep per-unit
//     failures classifiable after they have been collected into a report.
//
// Batch operations never fail fast: they wrap each unit's failure with one of
// the markers below and keep going, so reporting code can group outcomes with
// errors.Is instead of string matching.
package services
