package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clipbatch/internal/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var logLevels = []string{"debug", "info", "warn", "error"}

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:   "clipbatch",
		Short: "Cut clips from a video catalog in resumable batches",
		Long: `clipbatch reads a manifest of item ids and cut ranges, finds each id's
source video in the input directory, and writes <id>.mp4 to the output
directory with ffmpeg stream copies. Items are processed in batches on a
bounded worker pool; an existing <id>.mp4 marks the item as done, so an
interrupted run resumes where it stopped.`,
		Example: `  clipbatch config init
  clipbatch plan --manifest cuts.csv --output ./clips
  clipbatch run --manifest cuts.csv --input ./videos --output ./clips --intensity 2`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := checkLogLevel(logLevelFlag); err != nil {
				return err
			}
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Console log level override ("+strings.Join(logLevels, ", ")+"); the run log always records debug")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func checkLogLevel(level string) error {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" || level == "warning" {
		return nil
	}
	for _, known := range logLevels {
		if level == known {
			return nil
		}
	}
	return services.Wrap(services.ErrConfiguration, "cli", "parse flags",
		fmt.Sprintf("--log-level must be one of %s (got %q)", strings.Join(logLevels, ", "), level), nil)
}
