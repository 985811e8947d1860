package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"smartsort/internal/journal"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent organization runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireJournal(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortRunID(run.ID),
					run.StartedAt.Local().Format(historyTimeLayout),
					string(run.Status),
					yesNo(run.DryRun),
					strconv.Itoa(run.Processed),
					strconv.Itoa(run.Moved),
					strconv.Itoa(run.Errors),
					run.SourceDir,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Status", "Dry run", "Processed", "Moved", "Errors", "Source"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 lists all)")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the per-file decisions of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireJournal(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			decisions, err := store.Decisions(cmd.Context(), run.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:      %s\n", run.ID)
			fmt.Fprintf(out, "Started:  %s\n", run.StartedAt.Local().Format(historyTimeLayout))
			fmt.Fprintf(out, "Status:   %s\n", run.Status)
			fmt.Fprintf(out, "Dry run:  %s\n", yesNo(run.DryRun))
			fmt.Fprintf(out, "Source:   %s\n", run.SourceDir)
			fmt.Fprintf(out, "Target:   %s\n", run.TargetDir)
			if d := run.Duration(); d > 0 {
				fmt.Fprintf(out, "Duration: %s\n", d.Round(time.Millisecond))
			}
			fmt.Fprintf(out, "Totals:   processed=%d moved=%d errors=%d\n", run.Processed, run.Moved, run.Errors)
			if run.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:    %s\n", run.ErrorMessage)
			}

			if len(decisions) == 0 {
				fmt.Fprintln(out, "No decisions recorded")
				return nil
			}
			rows := make([][]string, 0, len(decisions))
			for _, d := range decisions {
				dest := ""
				if d.Destination != "" {
					dest = filepath.Base(d.Destination)
				}
				rows = append(rows, []string{
					strconv.Itoa(d.Seq),
					filepath.Base(d.SourcePath),
					d.RawCategory,
					d.GroupName,
					dest,
					string(d.Outcome),
					d.ErrorMessage,
				})
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable(
				[]string{"#", "File", "Category", "Group", "Destination", "Outcome", "Error"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}
}

func requireJournal(ctx *commandContext) (*journal.Store, error) {
	store, err := ctx.openJournal()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("run journal is disabled (set [journal] enabled = true)")
	}
	return store, nil
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
