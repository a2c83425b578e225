package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mdtree/internal/deps"
	"mdtree/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configured directories and project toolchains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			checks := preflight.RunAll(cfg)
			checkRows := make([][]string, 0, len(checks))
			for _, r := range checks {
				checkRows = append(checkRows, []string{r.Name, passFail(r.Passed), r.Detail})
			}
			fmt.Fprintln(out, renderTable(out, []string{"Check", "Status", "Detail"}, checkRows, nil))

			statuses := preflight.CheckToolchains(cfg, cfg.Generate.Execute)
			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				rows = append(rows, []string{s.Name, s.Command, availability(s), yesNo(!s.Optional), s.Detail})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Ecosystem", "Command", "Status", "Required", "Detail"},
				rows,
				nil,
			))

			var problems []string
			if failed := preflight.Failed(checks); failed > 0 {
				problems = append(problems, fmt.Sprintf("%d check(s) failed", failed))
			}
			if missing := deps.Missing(statuses); missing > 0 {
				problems = append(problems, fmt.Sprintf("%d required toolchain(s) missing", missing))
			}
			if len(problems) > 0 {
				return fmt.Errorf("doctor: %s", strings.Join(problems, "; "))
			}
			return nil
		},
	}
}

func passFail(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

func availability(s deps.Status) string {
	if s.Available {
		return "ok"
	}
	return "missing"
}

