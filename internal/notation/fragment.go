package notation

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode"
)

// ErrInvalidPath reports an annotation path that cannot be materialized
// below a project root.
var ErrInvalidPath = errors.New("invalid fragment path")

// Fragment is a single recognized (path, content) pair.
type Fragment struct {
	// Path is relative, slash separated, and never escapes the project root.
	Path string
	// Language is the fence info word when the notation carried one.
	Language string
	// Content is the raw file text.
	Content string
	// Source is the pattern that produced the fragment.
	Source Pattern
}

// NormalizePath validates an annotation path and returns its canonical form.
func NormalizePath(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	p = strings.ReplaceAll(p, "\\", "/")
	for strings.HasPrefix(p, "./") {
		p = strings.TrimLeft(p[2:], "/")
	}
	switch {
	case p == "":
		return "", fmt.Errorf("%w: empty", ErrInvalidPath)
	case strings.HasPrefix(p, "/"):
		return "", fmt.Errorf("%w: %q is absolute", ErrInvalidPath, raw)
	case len(p) >= 2 && p[1] == ':' && isASCIILetter(p[0]):
		return "", fmt.Errorf("%w: %q has a volume name", ErrInvalidPath, raw)
	case strings.HasSuffix(p, "/"):
		return "", fmt.Errorf("%w: %q names a directory", ErrInvalidPath, raw)
	case strings.ContainsAny(p, "<>\"|?*`"):
		return "", fmt.Errorf("%w: %q contains reserved characters", ErrInvalidPath, raw)
	case strings.IndexFunc(p, unicode.IsControl) >= 0:
		return "", fmt.Errorf("%w: %q contains control characters", ErrInvalidPath, raw)
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q escapes the project root", ErrInvalidPath, raw)
	}
	return cleaned, nil
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
