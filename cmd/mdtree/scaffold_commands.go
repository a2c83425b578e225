package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mdtree/internal/config"
	"mdtree/internal/scaffold"
)

func newSampleCommand() *cobra.Command {
	return newScaffoldCommand(
		"sample",
		"Write a sample document that uses several annotation patterns",
		scaffold.SampleFileName,
		scaffold.Sample,
	)
}

func newPromptCommand() *cobra.Command {
	return newScaffoldCommand(
		"prompt",
		"Write an authoring guide describing every annotation pattern",
		scaffold.PromptFileName,
		scaffold.Prompt,
	)
}

func newScaffoldCommand(use, short, fileName string, render func() string) *cobra.Command {
	var dir string
	var force bool

	cmd := &cobra.Command{
		Use:         use,
		Short:       short,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.ExpandPath(dir)
			if err != nil {
				return fmt.Errorf("resolve directory: %w", err)
			}
			dest, err := scaffold.Write(target, fileName, render(), force)
			if err != nil {
				return fmt.Errorf("%w (use --force to replace it)", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", dest)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write into")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
