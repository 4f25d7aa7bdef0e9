package config

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

var sqlIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateManifest(); err != nil {
		return err
	}
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateSource(); err != nil {
		return err
	}
	return c.validateWorkflow()
}

func (c *Config) validateManifest() error {
	if utf8.RuneCountInString(c.Manifest.Delimiter) != 1 {
		return fmt.Errorf("manifest.delimiter must be a single character; got %q", c.Manifest.Delimiter)
	}
	if c.Manifest.IDColumn == c.Manifest.CutsColumn {
		return errors.New("manifest.id_column and manifest.cuts_column must differ")
	}
	for name, value := range map[string]string{
		"manifest.table":       c.Manifest.Table,
		"manifest.id_column":   c.Manifest.IDColumn,
		"manifest.cuts_column": c.Manifest.CutsColumn,
	} {
		if !sqlIdentifier.MatchString(value) {
			return fmt.Errorf("%s must be a plain identifier; got %q", name, value)
		}
	}
	return nil
}

func (c *Config) validateFFmpeg() error {
	switch c.FFmpeg.CutMode {
	case CutModeDuration, CutModeTo:
		return nil
	default:
		return fmt.Errorf("ffmpeg.cut_mode must be %q or %q; got %q", CutModeDuration, CutModeTo, c.FFmpeg.CutMode)
	}
}

func (c *Config) validateSource() error {
	switch c.Source.Match {
	case MatchSubstring, MatchExact:
		return nil
	default:
		return fmt.Errorf("source.match must be %q or %q; got %q", MatchSubstring, MatchExact, c.Source.Match)
	}
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.Intensity < IntensityLow || c.Workflow.Intensity > IntensityHigh {
		return fmt.Errorf("workflow.intensity must be between %d and %d; got %d", IntensityLow, IntensityHigh, c.Workflow.Intensity)
	}
	if c.Workflow.BatchPauseSeconds < 0 {
		return fmt.Errorf("workflow.batch_pause_seconds must be >= 0; got %d", c.Workflow.BatchPauseSeconds)
	}
	return nil
}
