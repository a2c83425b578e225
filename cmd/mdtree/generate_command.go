package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mdtree/internal/config"
	"mdtree/internal/execution"
	"mdtree/internal/generation"
	"mdtree/internal/logging"
	"mdtree/internal/notation"
	"mdtree/internal/preflight"
)

type generateFlags struct {
	pattern     string
	output      string
	projectType string
	execute     bool
	workers     int
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.pattern, "pattern", "", "Annotation pattern to use (auto or a pattern name)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Root directory for generated projects")
	cmd.Flags().StringVar(&f.projectType, "project-type", "", "Ecosystem to generate (rust, node, dart)")
	cmd.Flags().BoolVar(&f.execute, "execute", false, "Run or test each project after generating it")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Documents processed concurrently")
}

// options merges flags over the loaded configuration.
func (f *generateFlags) options(cmd *cobra.Command, cfg *config.Config) (generation.Options, error) {
	opts := generation.Options{
		OutputDir:      cfg.Paths.OutputDir,
		ProjectType:    cfg.Generate.ProjectType,
		Workers:        cfg.Generate.Workers,
		Execute:        cfg.Generate.Execute,
		ExecTimeout:    cfg.ExecTimeout(),
		WriteGitignore: cfg.Generate.WriteGitignore,
	}

	pattern := cfg.Generate.Pattern
	if f.pattern != "" {
		pattern = f.pattern
	}
	sel, err := notation.ParseSelection(pattern)
	if err != nil {
		return opts, fmt.Errorf("--pattern: %w", err)
	}
	opts.Selection = sel

	if f.output != "" {
		out, err := config.ExpandPath(f.output)
		if err != nil {
			return opts, fmt.Errorf("resolve output directory: %w", err)
		}
		opts.OutputDir = out
	}
	if f.projectType != "" {
		opts.ProjectType = f.projectType
	}
	if cmd.Flags().Changed("execute") {
		opts.Execute = f.execute
	}
	if f.workers > 0 {
		opts.Workers = f.workers
	}
	return opts, nil
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "Generate a project tree from every document in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd, cfg)
			if err != nil {
				return err
			}
			dir, err := inputDir(cfg, args)
			if err != nil {
				return err
			}
			docs, err := generation.Discover(dir, cfg.Generate.DocumentExt)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(docs) == 0 {
				fmt.Fprintf(out, "No %s documents found in %s\n", cfg.Generate.DocumentExt, dir)
				return nil
			}

			logger, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if opts.Execute {
				warnMissingToolchains(cfg, opts.ProjectType, logger)
			}
			report, err := runGeneration(cmd.Context(), opts, docs, logger)
			if err != nil {
				return err
			}
			printGenerationReport(out, report)
			if failed := report.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(report.Outcomes))
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func inputDir(cfg *config.Config, args []string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return cfg.Paths.InputDir, nil
	}
	dir, err := config.ExpandPath(args[0])
	if err != nil {
		return "", fmt.Errorf("resolve input directory: %w", err)
	}
	return dir, nil
}

func runGeneration(ctx context.Context, opts generation.Options, docs []string, logger *slog.Logger) (*generation.Report, error) {
	var runner execution.Runner
	if opts.Execute {
		runner = execution.NewCommandRunner(logger)
	}
	return generation.NewService(opts, runner, logger).Run(ctx, docs)
}

func warnMissingToolchains(cfg *config.Config, projectType string, logger *slog.Logger) {
	pinned := *cfg
	pinned.Generate.ProjectType = projectType
	for _, s := range preflight.CheckToolchains(&pinned, true) {
		if !s.Available {
			logger.Warn("toolchain missing; run and test phases will fail",
				logging.String("ecosystem", s.Name),
				logging.String("command", s.Command),
			)
		}
	}
}

func printGenerationReport(w io.Writer, report *generation.Report) {
	rows := make([][]string, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		rows = append(rows, []string{
			filepath.Base(o.Document),
			projectCell(o),
			kindCell(o),
			filesCell(o),
			strconv.Itoa(len(o.Overwrites)),
			phasesCell(o.Executions),
			o.Status(),
		})
	}
	fmt.Fprintln(w, renderTable(w,
		[]string{"Document", "Project", "Kind", "Files", "Overwrites", "Phases", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
	))
	for _, o := range report.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(w, "%s: %v\n", filepath.Base(o.Document), o.Err)
		}
	}
	fmt.Fprintf(w, "%d generated, %d failed (run %s)\n", len(report.Outcomes)-report.Failed(), report.Failed(), report.RunID)
}

func projectCell(o generation.Outcome) string {
	if o.Project != nil {
		return o.Project.Name
	}
	return "-"
}

func kindCell(o generation.Outcome) string {
	if o.Project == nil {
		return "-"
	}
	if o.Project.Kind.NeedsManifest() {
		return o.Project.Ecosystem.Name + " " + o.Project.Kind.String()
	}
	return o.Project.Kind.String()
}

func filesCell(o generation.Outcome) string {
	if o.Build == nil {
		return "0"
	}
	return strconv.Itoa(len(o.Build.Written))
}

func phasesCell(results []execution.Result) string {
	if len(results) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("%s:%d", r.Phase, r.ExitCode))
	}
	return strings.Join(parts, " ")
}
