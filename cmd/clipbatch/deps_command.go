package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clipbatch/internal/deps"
	"clipbatch/internal/preflight"
	"clipbatch/internal/services"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external tools and configured directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			statuses := preflight.CheckSystemDeps(cmd.Context(), cfg)
			depRows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				depRows = append(depRows, []string{s.Name, dependencyState(s), orDash(s.Path), orDash(s.Version)})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Status", "Path", "Version"},
				depRows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))

			results := preflight.RunAll(cfg)
			checkRows := make([][]string, 0, len(results))
			for _, r := range results {
				checkRows = append(checkRows, []string{r.Name, passFail(r.Passed), orDash(r.Detail)})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Check", "Status", "Detail"},
				checkRows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return services.Wrap(services.ErrExternalTool, "cli", "check dependencies",
					"missing required tools: "+strings.Join(missing, ", "), nil)
			}
			return nil
		},
	}
}

func dependencyState(s deps.Status) string {
	switch {
	case s.Available:
		return "available"
	case s.Optional:
		return "missing (optional)"
	default:
		return "missing"
	}
}

func passFail(passed bool) string {
	if passed {
		return "ok"
	}
	return "fail"
}
