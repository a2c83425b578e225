package extract

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"mdtree/internal/logging"
	"mdtree/internal/notation"
	"mdtree/internal/services"
)

// DefaultPattern is the notation used when Options.Pattern is unset.
const DefaultPattern = notation.WrappedHeadingFence

// Options configures one extraction.
type Options struct {
	Root string
	// Ignore reports paths to leave out; directories are passed with a
	// trailing slash. Nil keeps everything.
	Ignore      func(rel string) bool
	Pattern     notation.Pattern
	IncludeTree bool
	Workers     int
	Logger      *slog.Logger
}

// Skipped records a file left out because it could not be read as text.
type Skipped struct {
	Path string
	Err  error
}

// Result is the rendered document plus what went into it.
type Result struct {
	Document string
	Files    []notation.Fragment
	Skipped  []Skipped
}

// Extract renders the tree under opts.Root.
func Extract(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.NewComponentLogger(opts.Logger, "extract")
	pattern := opts.Pattern
	if !pattern.Valid() {
		pattern = DefaultPattern
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, opts.Root, "extract", "stat root", err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrConfiguration, opts.Root, "extract", "root is not a directory", nil)
	}

	paths, invalid, err := collect(opts.Root, opts.Ignore)
	if err != nil {
		return nil, err
	}

	files := make([]notation.Fragment, len(paths))
	errs := make([]error, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rel := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(opts.Root, filepath.FromSlash(rel)))
			if err != nil {
				errs[i] = err
				return nil
			}
			content, err := decodeText(data)
			if err != nil {
				errs[i] = err
				return nil
			}
			files[i] = notation.Fragment{Path: rel, Content: content, Source: pattern}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Skipped: invalid}
	for i, rel := range paths {
		if errs[i] != nil {
			logger.Warn("file skipped", logging.String("path", rel), logging.Error(errs[i]))
			result.Skipped = append(result.Skipped, Skipped{Path: rel, Err: errs[i]})
			continue
		}
		result.Files = append(result.Files, files[i])
	}

	var sb strings.Builder
	if opts.IncludeTree && len(result.Files) > 0 {
		kept := make([]string, 0, len(result.Files))
		for _, f := range result.Files {
			kept = append(kept, f.Path)
		}
		writeStructure(&sb, rootName(opts.Root), kept)
	}
	for i, f := range result.Files {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(pattern.Serialize(f))
	}
	result.Document = sb.String()

	attrs := []logging.Attr{
		logging.String("root", opts.Root),
		logging.String("pattern", pattern.String()),
		logging.Int("files", len(result.Files)),
		logging.Int("skipped", len(result.Skipped)),
	}
	if len(result.Skipped) > 0 {
		skipped := make([]string, 0, len(result.Skipped))
		for _, sk := range result.Skipped {
			skipped = append(skipped, sk.Path)
		}
		attrs = append(attrs, logging.Strings("skipped_paths", skipped))
	}
	logger.Info("extraction complete", logging.Args(attrs...)...)
	return result, nil
}

// collect lists regular files under root as sorted slash paths. Files whose
// names cannot be written as annotation paths are returned separately.
func collect(root string, ignored func(string) bool) ([]string, []Skipped, error) {
	var (
		paths   []string
		invalid []Skipped
	)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if ignored != nil && ignored(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if ignored != nil && ignored(rel) {
			return nil
		}
		if _, err := notation.NormalizePath(rel); err != nil {
			invalid = append(invalid, Skipped{Path: rel, Err: err})
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, invalid, nil
}

func rootName(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return filepath.Base(root)
	}
	return filepath.Base(abs)
}
