package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"mdtree/internal/logging"
	"mdtree/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Regenerate projects whenever a document changes",
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
			logger, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			w, err := watch.New(watch.Options{
				Dir:      dir,
				Ext:      cfg.Generate.DocumentExt,
				Debounce: cfg.WatchDebounce(),
				Logger:   logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching %s for %s changes\n", dir, cfg.Generate.DocumentExt)

			// Batches share the output lock and the terminal; run one at a time.
			var mu sync.Mutex
			return w.Run(cmd.Context(), func(path string) {
				mu.Lock()
				defer mu.Unlock()
				report, err := runGeneration(cmd.Context(), opts, []string{path}, logger)
				if err != nil {
					logger.Error("regeneration failed",
						logging.String("document", path),
						logging.Error(err),
					)
					return
				}
				printGenerationReport(out, report)
			})
		},
	}
	flags.register(cmd)
	return cmd
}
