package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mdtree/internal/notation"
)

func newPatternsCommand() *cobra.Command {
	var examples bool

	cmd := &cobra.Command{
		Use:         "patterns",
		Short:       "List the supported annotation patterns in priority order",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			patterns := notation.All()
			rows := make([][]string, 0, len(patterns))
			for i, p := range patterns {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					p.String(),
					strings.Join(p.Aliases(), ", "),
					p.Description(),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Priority", "Pattern", "Aliases", "Description"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			if !examples {
				return nil
			}
			for _, p := range patterns {
				fmt.Fprintf(out, "\n%s:\n\n%s", p, p.Example())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&examples, "examples", false, "Print a sample document for each pattern")
	return cmd
}
