package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"smartsort/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var flags organizeFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify directories and LLM reachability before a run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			paths := preflight.Paths{Source: cfg.Organize.SourceDir, Target: cfg.Organize.TargetDir}
			if cmd.Flags().Changed("source") {
				if paths.Source, err = expandFlagPath(flags.source); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("target") {
				if paths.Target, err = expandFlagPath(flags.target); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			results := preflight.RunAll(cmd.Context(), cfg, paths)
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				rows = append(rows, []string{r.Name, renderStatusLabel(kind, colorize), r.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows, nil))

			if preflight.Failed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.source, "source", "s", "", "Directory to organize")
	cmd.Flags().StringVarP(&flags.target, "target", "t", "", "Destination root")
	return cmd
}
