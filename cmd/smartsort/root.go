package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags organizeFlags

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "smartsort",
		Short:         "Organize files into folders chosen by an LLM",
		Long:          "Classify every file under the source directory, merge similar categories, and move each file into <target>/<group>/.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, ctx, &flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	flags.bind(rootCmd)

	rootCmd.AddCommand(newOrganizeCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
