package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"smartsort/internal/classify"
	"smartsort/internal/organizer"
)

type organizeFlags struct {
	source string
	target string
	dryRun bool
}

func (f *organizeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "Directory to organize (default: organize.source_dir, then the current directory)")
	cmd.Flags().StringVarP(&f.target, "target", "t", "", "Destination root (default: organize.target_dir, then ./organized)")
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "d", false, "Report planned moves without touching the filesystem")
}

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var flags organizeFlags
	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Classify, group, and move files (same as running smartsort with no subcommand)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, ctx, &flags)
		},
	}
	flags.bind(cmd)
	return cmd
}

func runOrganize(cmd *cobra.Command, ctx *commandContext, flags *organizeFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger()
	if err != nil {
		return err
	}
	client, err := ctx.llmClient()
	if err != nil {
		return err
	}

	opts := organizer.OptionsFromConfig(cfg)
	if cmd.Flags().Changed("source") {
		opts.SourceDir = flags.source
	}
	if cmd.Flags().Changed("target") {
		opts.TargetDir = flags.target
	}
	opts.DryRun = flags.dryRun

	out := cmd.OutOrStdout()
	deps := organizer.Dependencies{
		Classifier: classify.NewLLMClassifier(client,
			classify.WithTimeout(cfg.ClassifyTimeout()),
			classify.WithFallbackCategory(cfg.Organize.FallbackCategory),
		),
		Namer:    classify.NewLLMNamer(client, classify.WithTimeout(cfg.ClassifyTimeout())),
		Reporter: newMoveReporter(out, shouldColorize(out)),
		Logger:   logger,
	}

	store, err := ctx.openJournal()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		deps.Journal = store
	}

	stats, err := organizer.New(opts, deps).Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, renderStatsTable(stats))
	return nil
}

func renderStatsTable(stats organizer.Stats) string {
	movedLabel := "Moved"
	if stats.DryRun {
		movedLabel = "Moved (dry run)"
	}
	rows := [][]string{
		{"Run", stats.RunID},
		{"Dry run", yesNo(stats.DryRun)},
		{"Processed", strconv.Itoa(stats.Processed)},
		{movedLabel, strconv.Itoa(stats.Moved)},
		{"Errors", strconv.Itoa(stats.Errors)},
		{"Classification fallbacks", strconv.Itoa(stats.ClassificationFailures)},
		{"Naming fallbacks", strconv.Itoa(stats.NamingFallbacks)},
		{"Groups", strconv.Itoa(stats.Groups)},
		{"Duration", stats.Duration.Round(time.Millisecond).String()},
	}
	return renderTable([]string{"Statistic", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}
