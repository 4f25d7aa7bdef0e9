package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeManifest()
	c.normalizeFFmpeg()
	c.Source.Match = strings.ToLower(strings.TrimSpace(c.Source.Match))
	if c.Source.Match == "" {
		c.Source.Match = defaultSourceMatch
	}
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.InputDir, err = expandPath(strings.TrimSpace(c.Paths.InputDir)); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.Manifest, err = expandPath(strings.TrimSpace(c.Paths.Manifest)); err != nil {
		return fmt.Errorf("paths.manifest: %w", err)
	}
	return nil
}

func (c *Config) normalizeManifest() {
	c.Manifest.IDColumn = strings.TrimSpace(c.Manifest.IDColumn)
	if c.Manifest.IDColumn == "" {
		c.Manifest.IDColumn = defaultIDColumn
	}
	c.Manifest.CutsColumn = strings.TrimSpace(c.Manifest.CutsColumn)
	if c.Manifest.CutsColumn == "" {
		c.Manifest.CutsColumn = defaultCutsColumn
	}
	if c.Manifest.Delimiter == "" {
		c.Manifest.Delimiter = defaultDelimiter
	}
	if c.Manifest.Delimiter == `\t` {
		c.Manifest.Delimiter = "\t"
	}
	c.Manifest.Table = strings.TrimSpace(c.Manifest.Table)
	if c.Manifest.Table == "" {
		c.Manifest.Table = defaultManifestTable
	}
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	if value, ok := os.LookupEnv("CLIPBATCH_FFMPEG"); ok && strings.TrimSpace(value) != "" {
		c.FFmpeg.Binary = strings.TrimSpace(value)
	}
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = defaultFFmpegBinary
	}
	c.FFmpeg.FFprobeBinary = strings.TrimSpace(c.FFmpeg.FFprobeBinary)
	if value, ok := os.LookupEnv("CLIPBATCH_FFPROBE"); ok && strings.TrimSpace(value) != "" {
		c.FFmpeg.FFprobeBinary = strings.TrimSpace(value)
	}
	if c.FFmpeg.FFprobeBinary == "" {
		c.FFmpeg.FFprobeBinary = defaultFFprobeBinary
	}
	c.FFmpeg.CutMode = strings.ToLower(strings.TrimSpace(c.FFmpeg.CutMode))
	if c.FFmpeg.CutMode == "" {
		c.FFmpeg.CutMode = defaultCutMode
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.Intensity == 0 {
		c.Workflow.Intensity = defaultIntensity
	}
	if c.Workflow.Workers < 0 {
		c.Workflow.Workers = 0
	}
	if c.Workflow.DurationToleranceSeconds <= 0 {
		c.Workflow.DurationToleranceSeconds = defaultDurationToleranceSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
