package run

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"clipbatch/internal/batch"
	"clipbatch/internal/extraction"
	"clipbatch/internal/logging"
	"clipbatch/internal/manifest"
	"clipbatch/internal/media/ffprobe"
	"clipbatch/internal/preflight"
	"clipbatch/internal/runlog"
	"clipbatch/internal/services"
	"clipbatch/internal/services/ffmpeg"
	"clipbatch/internal/source"
	"clipbatch/internal/workerpool"
)

// Coordinator executes runs. The zero value is not usable; call New.
type Coordinator struct {
	logger *slog.Logger
	runner ffmpeg.Runner
	prober ffprobe.Prober
	now    func() time.Time
	wait   func(ctx context.Context, d time.Duration) bool
}

// New constructs a Coordinator that logs through logger.
func New(logger *slog.Logger) *Coordinator {
	return &Coordinator{
		logger: logging.NewComponentLogger(logger, "coordinator"),
		now:    time.Now,
		wait:   sleep,
	}
}

// WithCommandRunner replaces the ffmpeg process runner.
func (c *Coordinator) WithCommandRunner(r ffmpeg.Runner) {
	if c != nil && r != nil {
		c.runner = r
	}
}

// WithProber replaces the ffprobe implementation.
func (c *Coordinator) WithProber(p ffprobe.Prober) {
	if c != nil && p != nil {
		c.prober = p
	}
}

// Run executes every manifest item. The returned error is non-nil for setup
// failures (see services.IsSetupFailure) and for cancellation; per-item
// failures only show up in the summary and the failure logs.
func (c *Coordinator) Run(ctx context.Context, opts Options) (summary Summary, err error) {
	started := c.now()
	summary.RunID = opts.RunID
	if summary.RunID == "" {
		summary.RunID = uuid.NewString()
	}
	defer func() {
		summary.Elapsed = time.Since(started)
	}()

	ctx = services.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, c.logger)

	if err := preflight.RequireDirectories(opts.InputDir, opts.OutputDir); err != nil {
		return summary, err
	}

	lock := flock.New(filepath.Join(opts.OutputDir, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "run", "lock output directory", opts.OutputDir, err)
	}
	if !locked {
		return summary, services.Wrap(services.ErrRunLocked, "run", "lock output directory",
			fmt.Sprintf("another run is using %s", opts.OutputDir), nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	retention := logging.Retention{
		Dir:      opts.LogDir,
		Days:     opts.RetentionDays,
		Patterns: append([]string{logging.RunLogPattern}, runlog.RetentionPatterns()...),
	}
	if report := retention.Prune(logger); len(report.Removed) > 0 || report.Failed > 0 {
		logger.Info("pruned old logs",
			logging.Int("removed", len(report.Removed)),
			logging.Int("failed", report.Failed),
			logging.Int("retention_days", opts.RetentionDays),
		)
	}

	items, err := manifest.Load(ctx, opts.ManifestPath, opts.Manifest, logger)
	if err != nil {
		return summary, err
	}

	locator, err := source.New(opts.InputDir, opts.SourceMatch)
	if err != nil {
		return summary, err
	}
	tool := ffmpeg.New(opts.FFmpegBinary, opts.CutMode, c.logger)
	tool.WithCommandRunner(c.runner)
	extractor := extraction.New(extraction.Options{
		OutputDir:             opts.OutputDir,
		CleanupFailedSegments: opts.CleanupFailedSegments,
		VerifyDuration:        opts.VerifyDuration,
		DurationTolerance:     opts.DurationTolerance,
		FFprobeBinary:         opts.FFprobeBinary,
	}, locator, tool, c.logger)
	extractor.WithProber(c.prober)

	notFoundLog := runlog.NewNotFoundLog(opts.LogDir, started)
	errorLog := runlog.NewErrorLog(opts.LogDir, started)
	defer func() {
		_ = notFoundLog.Close()
		_ = errorLog.Close()
		summary.NotFoundLog = runlog.ReportedPath(notFoundLog)
		summary.ErrorLog = runlog.ReportedPath(errorLog)
	}()
	recorder := &failureRecorder{notFound: notFoundLog, errors: errorLog, logger: logger}

	batches := batch.Partition(items)
	summary.TotalItems = len(items)
	summary.Batches = len(batches)
	summary.BatchSize = batch.Size(len(items))
	summary.Workers = max(opts.Workers, 1)

	logger.Info("run started",
		logging.String(logging.FieldEventType, "run_started"),
		logging.Int("items", summary.TotalItems),
		logging.Int("batches", summary.Batches),
		logging.Int("batch_size", summary.BatchSize),
		logging.Int("workers", summary.Workers),
		logging.String("input_dir", opts.InputDir),
		logging.String("output_dir", opts.OutputDir),
		logging.String("cut_mode", opts.CutMode),
		logging.Bool("cleanup_failed_segments", opts.CleanupFailedSegments),
		logging.Bool("verify_duration", opts.VerifyDuration),
	)

	pool := workerpool.Pool[manifest.Item, extraction.Outcome]{
		Work: func(ctx context.Context, item manifest.Item) extraction.Outcome {
			outcome := extractor.Extract(ctx, item)
			recorder.record(outcome)
			return outcome
		},
		Recover: func(item manifest.Item, panicErr error) extraction.Outcome {
			outcome := extraction.Outcome{
				ID:     item.ID,
				Status: extraction.StatusFailed,
				Err:    services.Wrap(services.ErrExternalTool, "extraction", "job", "crashed", panicErr),
			}
			recorder.record(outcome)
			return outcome
		},
		Skip: func(item manifest.Item, cause error) extraction.Outcome {
			return extraction.Outcome{ID: item.ID, Status: extraction.StatusFailed, Err: cause}
		},
	}

	for _, b := range batches {
		batchCtx := services.WithBatch(ctx, b.Index+1)
		batchStarted := time.Now()
		outcomes := pool.Run(batchCtx, b.Items, summary.Workers)

		var batchSummary Summary
		for _, outcome := range outcomes {
			summary.add(outcome)
			batchSummary.add(outcome)
		}
		logging.WithContext(batchCtx, logger).Info("batch finished",
			logging.String(logging.FieldEventType, "batch_finished"),
			logging.Int("of", summary.Batches),
			logging.Int("items", len(b.Items)),
			logging.Int("successful", batchSummary.Successful),
			logging.Int("skipped", batchSummary.Skipped),
			logging.Int("not_found", batchSummary.NotFound),
			logging.Int("failed", batchSummary.Failed),
			logging.Duration("elapsed", time.Since(batchStarted)),
		)

		if ctx.Err() != nil {
			summary.Interrupted += remainingAfter(batches, b.Index)
			break
		}
		if b.Index < len(batches)-1 && opts.BatchPause > 0 {
			logger.Info("pausing between batches", logging.Duration("pause", opts.BatchPause))
			if !c.wait(ctx, opts.BatchPause) {
				summary.Interrupted += remainingAfter(batches, b.Index)
				break
			}
		}
	}

	if cause := ctx.Err(); cause != nil {
		logging.WarnWithContext(logger, "run interrupted",
			"run_interrupted",
			logging.Int("successful", summary.Successful),
			logging.Int("interrupted", summary.Interrupted),
			logging.String(logging.FieldErrorHint, "run again with the same manifest and output directory to resume"),
			logging.String(logging.FieldImpact, "remaining items were not processed"),
		)
		return summary, cause
	}

	logger.Info("run finished",
		logging.String(logging.FieldEventType, "run_finished"),
		logging.Int("successful", summary.Successful),
		logging.Int("total", summary.TotalItems),
		logging.Int("skipped", summary.Skipped),
		logging.Int("not_found", summary.NotFound),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", time.Since(started)),
	)
	return summary, nil
}

func remainingAfter(batches []batch.Batch, index int) int {
	remaining := 0
	for _, b := range batches[index+1:] {
		remaining += len(b.Items)
	}
	return remaining
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
