package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// DefaultFileName is read from the root when no ignore file is configured.
const DefaultFileName = ".gitignore"

// alwaysSkipped are VCS and build output directories never worth extracting.
var alwaysSkipped = map[string]bool{
	".git":         true,
	"target":       true,
	"node_modules": true,
}

// Options configures the predicate.
type Options struct {
	Root string
	// IgnoreFile is a gitignore-style file. Empty means <Root>/.gitignore if
	// present; an explicit path must exist.
	IgnoreFile string
	// Skip entries match a path component or a path prefix.
	Skip          []string
	IncludeHidden bool
}

// Predicate reports whether a slash-separated path relative to the root should
// be left out. Directory paths end with "/".
type Predicate func(rel string) bool

// Matcher evaluates Options against relative paths.
type Matcher struct {
	rules         *gitignore.GitIgnore
	skip          []string
	includeHidden bool
}

// New compiles a Matcher.
func New(opts Options) (*Matcher, error) {
	m := &Matcher{includeHidden: opts.IncludeHidden}
	for _, s := range opts.Skip {
		s = strings.Trim(filepath.ToSlash(strings.TrimSpace(s)), "/")
		if s != "" {
			m.skip = append(m.skip, s)
		}
	}

	file := opts.IgnoreFile
	explicit := file != ""
	if !explicit {
		file = filepath.Join(opts.Root, DefaultFileName)
	}
	rules, err := gitignore.CompileIgnoreFile(file)
	switch {
	case err == nil:
		m.rules = rules
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read ignore file %s: %w", file, err)
	}
	return m, nil
}

// Predicate returns m as a plain function.
func (m *Matcher) Predicate() Predicate {
	return m.Ignored
}

// Ignored reports whether rel should be skipped.
func (m *Matcher) Ignored(rel string) bool {
	isDir := strings.HasSuffix(rel, "/")
	clean := path.Clean(strings.TrimSuffix(filepath.ToSlash(rel), "/"))
	if clean == "." || clean == "" {
		return false
	}

	for _, part := range strings.Split(clean, "/") {
		if alwaysSkipped[part] {
			return true
		}
		if !m.includeHidden && strings.HasPrefix(part, ".") {
			return true
		}
		for _, s := range m.skip {
			if part == s {
				return true
			}
		}
	}
	for _, s := range m.skip {
		if clean == s || strings.HasPrefix(clean, s+"/") {
			return true
		}
	}

	if m.rules == nil {
		return false
	}
	if isDir {
		return m.rules.MatchesPath(clean + "/")
	}
	return m.rules.MatchesPath(clean)
}

// Exists reports whether the default ignore file is present under root.
func Exists(root string) bool {
	info, err := os.Stat(filepath.Join(root, DefaultFileName))
	return err == nil && !info.IsDir()
}
