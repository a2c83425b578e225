package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mdtree/internal/config"
	"mdtree/internal/extract"
	"mdtree/internal/fileutil"
	"mdtree/internal/ignore"
	"mdtree/internal/notation"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		outPath    string
		pattern    string
		ignoreFile string
		skip       []string
		hidden     bool
		noTree     bool
	)

	cmd := &cobra.Command{
		Use:   "extract <root>",
		Short: "Render a directory tree as one annotated markdown document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve root: %w", err)
			}

			name := cfg.Extract.Pattern
			if pattern != "" {
				name = pattern
			}
			p, err := notation.ParsePattern(name)
			if err != nil {
				return fmt.Errorf("--pattern: %w", err)
			}

			ignoreOpts := ignore.Options{
				Root:          root,
				IgnoreFile:    cfg.Extract.IgnoreFile,
				Skip:          append(append([]string(nil), cfg.Extract.Skip...), skip...),
				IncludeHidden: cfg.Extract.IncludeHidden || hidden,
			}
			if ignoreFile != "" {
				if ignoreOpts.IgnoreFile, err = config.ExpandPath(ignoreFile); err != nil {
					return fmt.Errorf("resolve ignore file: %w", err)
				}
			}
			matcher, err := ignore.New(ignoreOpts)
			if err != nil {
				return err
			}
			ignored := matcher.Predicate()

			var dest string
			if outPath != "" {
				if dest, err = config.ExpandPath(outPath); err != nil {
					return fmt.Errorf("resolve output: %w", err)
				}
				if rel, ok := insideRoot(root, dest); ok {
					base := ignored
					ignored = func(path string) bool { return path == rel || base(path) }
				}
			}

			logger, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			res, err := extract.Extract(cmd.Context(), extract.Options{
				Root:        root,
				Ignore:      ignored,
				Pattern:     p,
				IncludeTree: cfg.Extract.IncludeTree && !noTree,
				Workers:     cfg.Generate.Workers,
				Logger:      logger,
			})
			if err != nil {
				return err
			}

			if dest == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), res.Document)
				return err
			}
			if err := fileutil.WriteAtomic(dest, []byte(res.Document), fileutil.FileMode); err != nil {
				return fmt.Errorf("write %s: %w", dest, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d files to %s using %s (%d skipped)\n", len(res.Files), dest, p, len(res.Skipped))
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Write the document to this file instead of stdout")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Annotation pattern to emit")
	cmd.Flags().StringVar(&ignoreFile, "ignore-file", "", "Gitignore-style file (default <root>/.gitignore)")
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "Comma separated path components or prefixes to leave out")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Include hidden files and directories")
	cmd.Flags().BoolVar(&noTree, "no-tree", false, "Omit the project structure tree")
	return cmd
}

// insideRoot returns dest relative to root when dest lies under it.
func insideRoot(root, dest string) (string, bool) {
	rel, err := filepath.Rel(root, dest)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
