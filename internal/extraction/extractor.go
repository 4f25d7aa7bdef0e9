package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"clipbatch/internal/clipspec"
	"clipbatch/internal/fileutil"
	"clipbatch/internal/logging"
	"clipbatch/internal/manifest"
	"clipbatch/internal/media/ffprobe"
	"clipbatch/internal/services"
	"clipbatch/internal/source"
)

// Cutter performs the external cut and concat invocations.
type Cutter interface {
	Cut(ctx context.Context, src string, r clipspec.Range, out string) error
	Concat(ctx context.Context, listFile, out string) error
}

// Options controls output placement and post-processing.
type Options struct {
	OutputDir             string
	CleanupFailedSegments bool
	VerifyDuration        bool
	DurationTolerance     float64
	FFprobeBinary         string
}

// Extractor executes clip jobs. It is safe for concurrent use; each call only
// touches its own item's paths.
type Extractor struct {
	opts    Options
	guard   Guard
	locator source.Locator
	tool    Cutter
	probe   ffprobe.Prober
	logger  *slog.Logger
}

// New constructs an Extractor.
func New(opts Options, locator source.Locator, tool Cutter, logger *slog.Logger) *Extractor {
	if opts.DurationTolerance <= 0 {
		opts.DurationTolerance = 1
	}
	return &Extractor{
		opts:    opts,
		guard:   Guard{OutputDir: opts.OutputDir},
		locator: locator,
		tool:    tool,
		probe:   ffprobe.Inspect,
		logger:  logging.NewComponentLogger(logger, "extraction"),
	}
}

// WithProber replaces the ffprobe implementation used for duration checks.
func (e *Extractor) WithProber(p ffprobe.Prober) {
	if e != nil && p != nil {
		e.probe = p
	}
}

// Extract runs one item to completion and reports its outcome.
func (e *Extractor) Extract(ctx context.Context, item manifest.Item) Outcome {
	started := time.Now()
	ctx = services.WithItemID(ctx, item.ID)
	logger := logging.WithContext(ctx, e.logger)

	outcome := e.extract(ctx, item, logger)
	outcome.ID = item.ID
	outcome.Elapsed = time.Since(started)

	switch outcome.Status {
	case StatusSuccess:
		logger.Info("clip extracted",
			logging.String(logging.FieldEventType, "item_completed"),
			logging.String("output", outcome.Output),
			logging.Int("ranges", len(item.Spec.Ranges)),
			logging.Duration("elapsed", outcome.Elapsed),
		)
	case StatusSkipped:
		logger.Info("output already present; skipping",
			logging.String(logging.FieldEventType, "item_skipped"),
			logging.String("output", outcome.Output),
		)
	case StatusSourceNotFound:
		logging.WarnWithContext(logger, "source file not found",
			"source_not_found",
			logging.String(logging.FieldErrorHint, "check the input directory for a file named after the id"),
			logging.String(logging.FieldImpact, "item is not processed"),
		)
	case StatusFailed:
		if outcome.Interrupted() {
			logger.Info("item interrupted", logging.Error(outcome.Err))
			break
		}
		logging.ErrorWithContext(logger, "clip extraction failed",
			"item_failed",
			logging.Error(outcome.Err),
			logging.String(logging.FieldErrorHint, "see the error log entry for this id"),
		)
	}
	return outcome
}

func (e *Extractor) extract(ctx context.Context, item manifest.Item, logger *slog.Logger) Outcome {
	if err := CheckID(item.ID); err != nil {
		return Outcome{Status: StatusFailed, Err: err}
	}
	if out, done := e.guard.Done(item.ID); done {
		return Outcome{Status: StatusSkipped, Output: out}
	}
	if err := ctx.Err(); err != nil {
		return Outcome{Status: StatusFailed, Err: err}
	}

	src, found, err := e.locator.Locate(item.ID)
	if err != nil {
		return Outcome{Status: StatusFailed, Err: err}
	}
	if !found {
		err := services.Wrap(services.ErrNotFound, "source", "locate", fmt.Sprintf("no input file for id %q", item.ID), nil)
		return Outcome{Status: StatusFor(err), Err: err}
	}

	if !item.Spec.Valid() {
		problem := item.Spec.Problem
		if problem == "" {
			problem = "no ranges"
		}
		err := services.Wrap(services.ErrValidation, "clipspec", "resolve", problem, nil)
		return Outcome{Status: StatusFailed, Source: src, Err: err}
	}

	output := OutputPath(e.opts.OutputDir, item.ID)
	logger.Debug("extracting clip",
		logging.String("source", src),
		logging.String("kind", item.Spec.Kind.String()),
		logging.Int("ranges", len(item.Spec.Ranges)),
	)

	switch item.Spec.Kind {
	case clipspec.KindMulti:
		err = e.runMulti(ctx, item, src, output, logger)
	default:
		err = e.runSimple(ctx, item, src, output)
	}
	if err != nil {
		return Outcome{Status: StatusFor(err), Source: src, Err: err}
	}
	return Outcome{Status: StatusSuccess, Source: src, Output: output}
}

func (e *Extractor) runSimple(ctx context.Context, item manifest.Item, src, output string) error {
	tmp := partialPath(e.opts.OutputDir, item.ID)
	if err := e.tool.Cut(ctx, src, item.Spec.Ranges[0], tmp); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return e.promote(tmp, output)
}

func (e *Extractor) runMulti(ctx context.Context, item manifest.Item, src, output string, logger *slog.Logger) (err error) {
	scratch := ScratchDir(e.opts.OutputDir, item.ID)
	defer func() {
		if err != nil && e.opts.CleanupFailedSegments {
			if rmErr := fileutil.RemoveQuietly(scratch); rmErr != nil {
				logger.Warn("failed to remove segment directory", logging.String("path", scratch), logging.Error(rmErr))
			}
		}
	}()

	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return services.Wrap(services.ErrValidation, "extraction", "create segment directory", scratch, err)
	}
	listPath := ListPath(e.opts.OutputDir, item.ID)
	list, err := createConcatList(listPath)
	if err != nil {
		return services.Wrap(services.ErrValidation, "extraction", "concat list", listPath, err)
	}
	defer list.close()

	segments := make([]string, 0, len(item.Spec.Ranges))
	for idx, r := range item.Spec.Ranges {
		segment, err := filepath.Abs(SegmentPath(e.opts.OutputDir, item.ID, idx))
		if err != nil {
			return services.Wrap(services.ErrValidation, "extraction", "segment path", item.ID, err)
		}
		if err := e.tool.Cut(ctx, src, r, segment); err != nil {
			return fmt.Errorf("segment %d: %w", idx, err)
		}
		if err := fileutil.RequireNonEmptyFile(segment); err != nil {
			return services.Wrap(services.ErrExternalTool, "ffmpeg", fmt.Sprintf("segment %d", idx), "no output", err)
		}
		if err := list.add(segment); err != nil {
			return services.Wrap(services.ErrValidation, "extraction", "concat list", listPath, err)
		}
		segments = append(segments, segment)
		logger.Debug("segment extracted", logging.Int("segment", idx), logging.String("path", segment))
	}
	if err := list.close(); err != nil {
		return services.Wrap(services.ErrValidation, "extraction", "concat list", listPath, err)
	}

	tmp := partialPath(e.opts.OutputDir, item.ID)
	if err := e.tool.Concat(ctx, listPath, tmp); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if e.opts.VerifyDuration {
		if err := e.verifyDuration(ctx, segments, tmp, logger); err != nil {
			_ = os.Remove(tmp)
			return err
		}
	}
	return e.promote(tmp, output)
}

func (e *Extractor) promote(tmp, output string) error {
	if err := fileutil.RequireNonEmptyFile(tmp); err != nil {
		_ = os.Remove(tmp)
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "output", "no output", err)
	}
	if err := fileutil.Promote(tmp, output); err != nil {
		return services.Wrap(services.ErrValidation, "extraction", "finalize", output, err)
	}
	return nil
}

// verifyDuration compares the joined artifact with the sum of its segments.
func (e *Extractor) verifyDuration(ctx context.Context, segments []string, joined string, logger *slog.Logger) error {
	var expected float64
	for _, segment := range segments {
		d, err := e.durationOf(ctx, segment)
		if err != nil {
			return err
		}
		expected += d
	}
	actual, err := e.durationOf(ctx, joined)
	if err != nil {
		return err
	}
	logger.Debug("duration verified",
		logging.Float64("expected_seconds", expected),
		logging.Float64("actual_seconds", actual),
		logging.Float64("tolerance_seconds", e.opts.DurationTolerance),
	)
	if math.Abs(actual-expected) > e.opts.DurationTolerance {
		return services.Wrap(services.ErrValidation, "extraction", "verify duration",
			fmt.Sprintf("joined clip is %.2fs, segments total %.2fs (tolerance %.2fs)", actual, expected, e.opts.DurationTolerance), nil)
	}
	return nil
}

func (e *Extractor) durationOf(ctx context.Context, path string) (float64, error) {
	result, err := e.probe(ctx, e.opts.FFprobeBinary, path)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "ffprobe", "inspect", path, err)
	}
	d := result.DurationSeconds()
	if math.IsNaN(d) {
		return 0, services.Wrap(services.ErrExternalTool, "ffprobe", "inspect", path, errors.New("unparseable duration"))
	}
	return d, nil
}
