package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"clipbatch/internal/config"
	"clipbatch/internal/logging"
	"clipbatch/internal/run"
	"clipbatch/internal/services"
	"clipbatch/internal/workerpool"
)

// newCoordinator is replaced in tests to inject a fake ffmpeg runner.
var newCoordinator = run.New

type runFlags struct {
	manifest  string
	input     string
	output    string
	logDir    string
	intensity int
	workers   int
	pause     int
	noInput   bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Extract every clip in the manifest",
		Long: `Extract every clip in the manifest into the output directory.

Items whose <id>.mp4 already exists in the output directory are skipped, so an
interrupted run resumes where it stopped when started again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *base
			if err := applyRunFlags(cmd, &cfg, flags); err != nil {
				return err
			}

			logicalCPUs := runtime.NumCPU()
			interactive := !flags.noInput && isTerminal(cmd.InOrStdin())
			if err := completeRunConfig(cmd, &cfg, interactive, logicalCPUs); err != nil {
				return err
			}
			return executeRun(cmd, ctx, &cfg, logicalCPUs)
		},
	}

	cmd.Flags().StringVarP(&flags.manifest, "manifest", "m", "", "Manifest file (CSV or SQLite)")
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "Directory holding the source videos")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Directory receiving the clips")
	cmd.Flags().StringVar(&flags.logDir, "log-dir", "", "Directory for run and failure logs")
	cmd.Flags().IntVar(&flags.intensity, "intensity", 0, "Processing intensity: 1 low, 2 medium, 3 high")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "Explicit worker count (overrides intensity)")
	cmd.Flags().IntVar(&flags.pause, "pause", 0, "Seconds to pause between batches")
	cmd.Flags().BoolVar(&flags.noInput, "no-input", false, "Never prompt; fail when required values are missing")
	return cmd
}

func applyRunFlags(cmd *cobra.Command, cfg *config.Config, flags runFlags) error {
	paths := []struct {
		value  string
		target *string
	}{
		{flags.manifest, &cfg.Paths.Manifest},
		{flags.input, &cfg.Paths.InputDir},
		{flags.output, &cfg.Paths.OutputDir},
		{flags.logDir, &cfg.Paths.LogDir},
	}
	for _, p := range paths {
		if strings.TrimSpace(p.value) == "" {
			continue
		}
		expanded, err := config.ExpandPath(strings.TrimSpace(p.value))
		if err != nil {
			return err
		}
		*p.target = expanded
	}

	changed := cmd.Flags().Changed
	if changed("intensity") {
		if flags.intensity < config.IntensityLow || flags.intensity > config.IntensityHigh {
			return services.Wrap(services.ErrConfiguration, "cli", "parse flags",
				fmt.Sprintf("--intensity must be 1, 2, or 3 (got %d)", flags.intensity), nil)
		}
		cfg.Workflow.Intensity = flags.intensity
	}
	if changed("workers") {
		if flags.workers < 1 {
			return services.Wrap(services.ErrConfiguration, "cli", "parse flags", "--workers must be at least 1", nil)
		}
		cfg.Workflow.Workers = flags.workers
	}
	if changed("pause") {
		if flags.pause < 0 {
			return services.Wrap(services.ErrConfiguration, "cli", "parse flags", "--pause must not be negative", nil)
		}
		cfg.Workflow.BatchPauseSeconds = flags.pause
	}
	return nil
}

// completeRunConfig fills missing directories and the intensity tier from
// prompts when interactive, and fails on missing required values otherwise.
func completeRunConfig(cmd *cobra.Command, cfg *config.Config, interactive bool, logicalCPUs int) error {
	var p *prompter
	if interactive {
		p = newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	required := []struct {
		label  string
		flag   string
		target *string
	}{
		{"Input directory", "--input", &cfg.Paths.InputDir},
		{"Output directory", "--output", &cfg.Paths.OutputDir},
	}
	for _, r := range required {
		if *r.target != "" {
			continue
		}
		if p == nil {
			return services.Wrap(services.ErrConfiguration, "cli", "resolve paths",
				fmt.Sprintf("%s is not set (use %s or the config file)", strings.ToLower(r.label), r.flag), nil)
		}
		value, err := p.directory(r.label)
		if err != nil {
			return err
		}
		*r.target = value
	}
	if cfg.Paths.Manifest == "" {
		return services.Wrap(services.ErrConfiguration, "cli", "resolve paths",
			"manifest is not set (use --manifest or paths.manifest)", nil)
	}

	flags := cmd.Flags()
	if p != nil && cfg.Workflow.Workers == 0 && !flags.Changed("intensity") {
		tier, err := p.intensity(logicalCPUs, cfg.Workflow.Intensity)
		if err != nil {
			return err
		}
		cfg.Workflow.Intensity = tier
	}
	return nil
}

func executeRun(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, logicalCPUs int) error {
	runID := uuid.NewString()
	consoleLogger, err := logging.New(logging.Options{
		Level:       ctx.logLevel(cfg),
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout"},
		RunID:       runID,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	runLogPath := logging.RunLogPath(cfg.Paths.LogDir, runID)
	runLogHandler, runLogFile, err := logging.OpenRunLog(runLogPath, runID)
	if err != nil {
		return err
	}
	defer runLogFile.Close()
	logger := logging.TeeLogger(consoleLogger, runLogHandler)

	workers := workerpool.Resolve(cfg.Workflow.Workers, logicalCPUs, cfg.Workflow.Intensity)
	logger.Info("clipbatch starting",
		logging.String(logging.FieldEventType, "startup"),
		logging.Int("logical_cpus", logicalCPUs),
		logging.Int("intensity", cfg.Workflow.Intensity),
		logging.Int("workers", workers),
		logging.String("manifest", cfg.Paths.Manifest),
		logging.String("run_log", runLogPath),
	)

	signalCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := run.OptionsFromConfig(cfg, workers)
	opts.RunID = runID
	summary, runErr := newCoordinator(logger).Run(signalCtx, opts)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logging.ErrorWithContext(logger, "run aborted", "run_aborted",
			logging.Error(runErr),
			logging.String(logging.FieldErrorHint, "check the directories and manifest, then run again"),
		)
		return runErr
	}

	out := cmd.OutOrStdout()
	printSummary(out, summary, runLogPath)
	if runErr != nil {
		fmt.Fprintln(out, "Run interrupted; start it again with the same output directory to resume.")
		return runErr
	}
	return nil
}

func printSummary(out io.Writer, summary run.Summary, runLogPath string) {
	rows := [][]string{
		{"Run ID", summary.RunID},
		{"Successful", fmt.Sprintf("%d/%d", summary.Successful, summary.TotalItems)},
		{"Skipped (already done)", fmt.Sprintf("%d", summary.Skipped)},
		{"Source not found", fmt.Sprintf("%d", summary.NotFound)},
		{"Failed", fmt.Sprintf("%d", summary.Failed)},
	}
	if summary.Interrupted > 0 {
		rows = append(rows, []string{"Interrupted", fmt.Sprintf("%d", summary.Interrupted)})
	}
	rows = append(rows,
		[]string{"Batches", fmt.Sprintf("%d x %d", summary.Batches, summary.BatchSize)},
		[]string{"Workers", fmt.Sprintf("%d", summary.Workers)},
		[]string{"Elapsed", summary.Elapsed.Round(time.Millisecond).String()},
		[]string{"Not-found log", orDash(summary.NotFoundLog)},
		[]string{"Error log", orDash(summary.ErrorLog)},
		[]string{"Run log", runLogPath},
	)
	fmt.Fprintln(out, renderFields("Run summary", rows))
}
