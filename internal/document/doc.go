// Package document turns one markdown document into a project.
//
// Parse runs the selected notation matchers in priority order, merges their
// fragments into a single path-keyed set, and records every fragment that was
// displaced by a duplicate path. Documents without any recognizable annotation
// fail with services.ErrNoFragmentsFound rather than producing an empty
// project.
package document
