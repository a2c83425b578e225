package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoFragmentsFound marks a document without any recognizable annotation
	// under the active pattern selection.
	ErrNoFragmentsFound = errors.New("no fragments found")
	// ErrDuplicatePath marks an informational duplicate-path overwrite.
	ErrDuplicatePath = errors.New("duplicate path overwritten")
	// ErrDuplicateProject marks a document whose project name is already taken
	// by an earlier document in the same batch.
	ErrDuplicateProject = errors.New("duplicate project name")
	// ErrFileWriteFailed marks a single file that could not be materialized.
	ErrFileWriteFailed = errors.New("file write failed")
	// ErrUnsupportedEncoding marks a file skipped during extraction because its
	// content is not representable as text.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	// ErrExternalTool marks a build/test invocation that exited non-zero,
	// timed out, or could not be launched.
	ErrExternalTool = errors.New("external tool failure")
	// ErrConfiguration marks invalid user input (pattern names, paths).
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes unit context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, unit, operation, message string, err error) error {
	detail := buildDetail(unit, operation, message)
	if marker == nil {
		marker = ErrConfiguration
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify returns a short, stable label for the marker carried by err.
func Classify(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoFragmentsFound):
		return "no_fragments"
	case errors.Is(err, ErrFileWriteFailed):
		return "write_failed"
	case errors.Is(err, ErrUnsupportedEncoding):
		return "unsupported_encoding"
	case errors.Is(err, ErrExternalTool):
		return "tool_failed"
	case errors.Is(err, ErrDuplicatePath):
		return "duplicate_path"
	case errors.Is(err, ErrDuplicateProject):
		return "duplicate_project"
	case errors.Is(err, ErrConfiguration):
		return "config"
	default:
		return "error"
	}
}

func buildDetail(unit, operation, message string) string {
	parts := make([]string, 0, 3)
	if unit = strings.TrimSpace(unit); unit != "" {
		parts = append(parts, unit)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "unit failure"
	}
	return strings.Join(parts, ": ")
}
