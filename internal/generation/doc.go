// Package generation turns a batch of markdown documents into projects.
//
// Each document is an independent unit: it is parsed, materialized below the
// output root, and optionally executed. A failing unit is recorded in its
// Outcome and never stops the rest of the batch. Only problems with the
// output root itself (it cannot be created or is locked by another run) fail
// the batch as a whole.
package generation
