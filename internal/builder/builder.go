package builder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mdtree/internal/fileutil"
	"mdtree/internal/logging"
	"mdtree/internal/project"
	"mdtree/internal/services"
)

// Options controls materialization.
type Options struct {
	// WriteGitignore adds the ecosystem's default .gitignore to buildable
	// projects whose document did not supply one.
	WriteGitignore bool
	Logger         *slog.Logger
}

// FileWriteError records one file that could not be written.
type FileWriteError struct {
	Path string
	Err  error
}

func (e FileWriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileWriteError) Unwrap() []error {
	return []error{services.ErrFileWriteFailed, e.Err}
}

// Report summarizes one materialized project.
type Report struct {
	Dir       string
	Written   []string
	Failures  []FileWriteError
	Gitignore bool
}

// OK reports whether every file was written.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Err joins the per-file failures, or returns nil.
func (r *Report) Err() error {
	if r == nil || len(r.Failures) == 0 {
		return nil
	}
	paths := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		paths = append(paths, f.Path)
	}
	return services.Wrap(
		services.ErrFileWriteFailed,
		filepath.Base(r.Dir),
		"materialize",
		fmt.Sprintf("%d file(s) failed: %s", len(r.Failures), strings.Join(paths, ", ")),
		r.Failures[0].Err,
	)
}

// Build writes proj below outputRoot/<proj.Name>.
func Build(ctx context.Context, proj *project.Project, outputRoot string, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	dir := filepath.Join(outputRoot, proj.Name)
	if err := os.MkdirAll(dir, fileutil.DirMode); err != nil {
		return nil, services.Wrap(services.ErrFileWriteFailed, proj.Name, "create project dir", dir, err)
	}

	report := &Report{Dir: dir}
	for _, f := range proj.AllFiles() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := writeFile(dir, f.Path, f.Content); err != nil {
			logger.Warn("file write failed",
				logging.String("path", f.Path),
				logging.Error(err),
			)
			report.Failures = append(report.Failures, FileWriteError{Path: f.Path, Err: err})
			continue
		}
		report.Written = append(report.Written, f.Path)
	}

	if opts.WriteGitignore && proj.Kind != project.PlainFiles && proj.Ecosystem.Gitignore != "" {
		if _, supplied := proj.File(".gitignore"); !supplied {
			dest := filepath.Join(dir, ".gitignore")
			wrote, err := fileutil.WriteIfAbsent(dest, []byte(proj.Ecosystem.Gitignore), fileutil.FileMode)
			if err != nil {
				report.Failures = append(report.Failures, FileWriteError{Path: ".gitignore", Err: err})
			}
			report.Gitignore = wrote
		}
	}

	logger.Debug("project materialized",
		logging.String("dir", dir),
		logging.Int("files", len(report.Written)),
		logging.Int("failures", len(report.Failures)),
	)
	return report, nil
}

func writeFile(root, rel, content string) error {
	dest, err := fileutil.Resolve(root, rel)
	if err != nil {
		return err
	}
	mode := fileutil.FileMode
	if strings.HasPrefix(content, "#!") {
		mode = 0o755
	}
	return fileutil.WriteAtomic(dest, []byte(content), mode)
}
