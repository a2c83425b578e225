package generation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"mdtree/internal/builder"
	"mdtree/internal/document"
	"mdtree/internal/execution"
	"mdtree/internal/fileutil"
	"mdtree/internal/logging"
	"mdtree/internal/notation"
	"mdtree/internal/project"
	"mdtree/internal/services"
)

// Options configures a generation batch.
type Options struct {
	OutputDir      string
	Selection      notation.Selection
	ProjectType    string
	Workers        int
	Execute        bool
	ExecTimeout    time.Duration
	WriteGitignore bool
}

// Outcome is the result of one document.
type Outcome struct {
	Document   string
	Project    *project.Project
	Overwrites []document.Overwrite
	Build      *builder.Report
	Executions []execution.Result
	Duration   time.Duration
	Err        error
}

// Status is a short label for the outcome's error class.
func (o Outcome) Status() string {
	return services.Classify(o.Err)
}

// Report collects the outcomes of a batch in input order.
type Report struct {
	RunID    string
	Outcomes []Outcome
}

// Failed counts outcomes with an error.
func (r *Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Statuses counts outcomes by status label.
func (r *Report) Statuses() map[string]int {
	counts := make(map[string]int)
	for _, o := range r.Outcomes {
		counts[o.Status()]++
	}
	return counts
}

// Service runs generation batches.
type Service struct {
	opts   Options
	runner execution.Runner
	logger *slog.Logger
}

// NewService builds a Service. runner may be nil when Execute is off.
func NewService(opts Options, runner execution.Runner, logger *slog.Logger) *Service {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Service{
		opts:   opts,
		runner: runner,
		logger: logging.NewComponentLogger(logger, "generation"),
	}
}

// Run processes docs. The returned error is non-nil only when the batch could
// not start; per-document failures are reported in the Outcomes.
func (s *Service) Run(ctx context.Context, docs []string) (*Report, error) {
	if s.opts.OutputDir == "" {
		return nil, services.Wrap(services.ErrConfiguration, "generation", "start", "output directory is required", nil)
	}
	if s.opts.Execute && s.runner == nil {
		return nil, services.Wrap(services.ErrConfiguration, "generation", "start", "execution requested without a runner", nil)
	}
	release, err := fileutil.LockDir(s.opts.OutputDir)
	if err != nil {
		return nil, services.Wrap(services.ErrFileWriteFailed, s.opts.OutputDir, "lock output", "", err)
	}
	defer release()

	report := &Report{RunID: uuid.NewString(), Outcomes: make([]Outcome, len(docs))}
	ctx = services.WithRunID(ctx, report.RunID)
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("generation started",
		logging.Int("documents", len(docs)),
		logging.String("pattern", s.opts.Selection.String()),
		logging.String("output_dir", s.opts.OutputDir),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	owners := make(map[string]string, len(docs))
	for i, doc := range docs {
		if err := claimProjectName(owners, doc); err != nil {
			report.Outcomes[i] = Outcome{Document: doc, Err: err}
			logger.Warn("document skipped", logging.String("document", filepath.Base(doc)), logging.Error(err))
			continue
		}
		g.Go(func() error {
			report.Outcomes[i] = s.process(gctx, doc)
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("generation finished",
		logging.Int("documents", len(docs)),
		logging.Int("failed", report.Failed()),
		logging.Any("statuses", report.Statuses()),
	)
	return report, nil
}

// claimProjectName reserves the output directory name doc maps to. Names are
// compared case-insensitively so two documents never share a directory on
// any filesystem; the first document in input order keeps the name.
func claimProjectName(owners map[string]string, doc string) error {
	name := project.NameFromDocument(doc)
	key := strings.ToLower(name)
	if first, taken := owners[key]; taken {
		msg := fmt.Sprintf("project %q already generated from %s", name, filepath.Base(first))
		return services.Wrap(services.ErrDuplicateProject, filepath.Base(doc), "assign project", msg, nil)
	}
	owners[key] = doc
	return nil
}

// process handles one document end to end.
func (s *Service) process(ctx context.Context, doc string) (out Outcome) {
	start := time.Now()
	ctx = services.WithDocument(ctx, filepath.Base(doc))
	logger := logging.WithContext(ctx, s.logger)
	out = Outcome{Document: doc}
	defer func() { out.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}

	data, err := os.ReadFile(doc)
	if err != nil {
		out.Err = services.Wrap(services.ErrConfiguration, filepath.Base(doc), "read document", "", err)
		logger.Warn("document unreadable", logging.Error(out.Err))
		return out
	}

	parsed, err := document.Parse(doc, string(data), document.Options{
		Selection:   s.opts.Selection,
		ProjectType: s.opts.ProjectType,
	})
	if err != nil {
		out.Err = err
		logger.Warn("document skipped", logging.Error(err))
		return out
	}
	out.Project = parsed.Project
	out.Overwrites = parsed.Overwrites
	for _, ow := range parsed.Overwrites {
		logger.Info("duplicate path overwritten",
			logging.String("path", ow.Path),
			logging.String("kept", ow.Kept.String()),
			logging.String("dropped", ow.Dropped.String()),
		)
	}

	build, err := builder.Build(ctx, parsed.Project, s.opts.OutputDir, builder.Options{
		WriteGitignore: s.opts.WriteGitignore,
		Logger:         logger,
	})
	out.Build = build
	if err != nil {
		out.Err = err
		logger.Error("project not materialized", logging.Error(err))
		return out
	}
	if err := build.Err(); err != nil {
		out.Err = err
	}
	logger.Info("project generated",
		logging.String("project", parsed.Project.Name),
		logging.String("kind", parsed.Project.Kind.String()),
		logging.String("ecosystem", parsed.Project.Ecosystem.Name),
		logging.Int("files", len(build.Written)),
		logging.Bool("manifest_synthesized", parsed.Project.Manifest != nil),
	)

	if !s.opts.Execute || out.Err != nil {
		return out
	}
	out.Executions = execution.Execute(ctx, s.runner, parsed.Project, build.Dir, s.opts.ExecTimeout)
	for _, res := range out.Executions {
		if res.Err != nil {
			out.Err = fmt.Errorf("%s phase: %w", res.Phase, res.Err)
			break
		}
	}
	return out
}
