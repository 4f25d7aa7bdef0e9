package run

import (
	"time"

	"clipbatch/internal/config"
	"clipbatch/internal/manifest"
)

// LockFileName is created inside the output directory for the run's duration.
const LockFileName = ".clipbatch.lock"

// Options carries everything a run needs. Paths must already be expanded.
type Options struct {
	RunID string

	InputDir     string
	OutputDir    string
	LogDir       string
	ManifestPath string
	Manifest     manifest.Options

	// Workers is the resolved pool size; values below 1 are treated as 1.
	Workers    int
	BatchPause time.Duration

	SourceMatch   string
	FFmpegBinary  string
	FFprobeBinary string
	CutMode       string

	CleanupFailedSegments bool
	VerifyDuration        bool
	DurationTolerance     float64

	RetentionDays int
}

// OptionsFromConfig maps configuration onto run options. workers must be the
// already resolved pool size.
func OptionsFromConfig(cfg *config.Config, workers int) Options {
	return Options{
		InputDir:              cfg.Paths.InputDir,
		OutputDir:             cfg.Paths.OutputDir,
		LogDir:                cfg.Paths.LogDir,
		ManifestPath:          cfg.Paths.Manifest,
		Manifest:              manifest.OptionsFromConfig(cfg.Manifest),
		Workers:               workers,
		BatchPause:            time.Duration(cfg.Workflow.BatchPauseSeconds) * time.Second,
		SourceMatch:           cfg.Source.Match,
		FFmpegBinary:          cfg.FFmpeg.Binary,
		FFprobeBinary:         cfg.FFmpeg.FFprobeBinary,
		CutMode:               cfg.FFmpeg.CutMode,
		CleanupFailedSegments: cfg.Workflow.CleanupFailedSegments,
		VerifyDuration:        cfg.Workflow.VerifyDuration,
		DurationTolerance:     cfg.Workflow.DurationToleranceSeconds,
		RetentionDays:         cfg.Logging.RetentionDays,
	}
}
