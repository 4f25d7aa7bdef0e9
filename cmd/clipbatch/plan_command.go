package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clipbatch/internal/batch"
	"clipbatch/internal/clipspec"
	"clipbatch/internal/config"
	"clipbatch/internal/extraction"
	"clipbatch/internal/manifest"
	"clipbatch/internal/services"
	"clipbatch/internal/source"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show how the manifest would be batched without running ffmpeg",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *base
			if err := applyRunFlags(cmd, &cfg, flags); err != nil {
				return err
			}
			if cfg.Paths.Manifest == "" {
				return services.Wrap(services.ErrConfiguration, "cli", "resolve paths",
					"manifest is not set (use --manifest or paths.manifest)", nil)
			}
			logger, err := ctx.consoleLogger(&cfg)
			if err != nil {
				return err
			}

			items, err := manifest.Load(cmd.Context(), cfg.Paths.Manifest, manifest.OptionsFromConfig(cfg.Manifest), logger)
			if err != nil {
				return err
			}
			var locator source.Locator
			if cfg.Paths.InputDir != "" {
				if locator, err = source.New(cfg.Paths.InputDir, cfg.Source.Match); err != nil {
					return err
				}
			}

			batches := batch.Partition(items)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d items in %d batches of up to %d\n", len(items), len(batches), batch.Size(len(items)))
			if len(items) == 0 {
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Batch", "ID", "Kind", "Ranges", "Status"},
				planRows(&cfg, batches, locator),
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.manifest, "manifest", "m", "", "Manifest file (CSV or SQLite)")
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "Directory holding the source videos")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Directory receiving the clips")
	return cmd
}

func planRows(cfg *config.Config, batches []batch.Batch, locator source.Locator) [][]string {
	guard := extraction.Guard{OutputDir: cfg.Paths.OutputDir}
	var rows [][]string
	for _, b := range batches {
		for _, item := range b.Items {
			rows = append(rows, []string{
				fmt.Sprintf("%d", b.Index+1),
				item.ID,
				item.Spec.Kind.String(),
				formatRanges(item.Spec),
				planStatus(item, guard, cfg.Paths.OutputDir != "", locator),
			})
		}
	}
	return rows
}

func planStatus(item manifest.Item, guard extraction.Guard, checkOutput bool, locator source.Locator) string {
	if err := extraction.CheckID(item.ID); err != nil {
		return "invalid id"
	}
	if checkOutput {
		if _, done := guard.Done(item.ID); done {
			return "skip (done)"
		}
	}
	if locator != nil {
		if _, found, err := locator.Locate(item.ID); err != nil {
			return "error: " + err.Error()
		} else if !found {
			return "source not found"
		}
	}
	if !item.Spec.Valid() {
		return "invalid: " + item.Spec.Problem
	}
	return "pending"
}

func formatRanges(spec clipspec.ClipSpec) string {
	if len(spec.Ranges) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(spec.Ranges))
	for _, r := range spec.Ranges {
		parts = append(parts, r.Start+" / "+r.End)
	}
	return strings.Join(parts, ", ")
}
