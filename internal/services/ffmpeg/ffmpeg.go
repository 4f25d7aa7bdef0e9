// Package ffmpeg wraps the ffmpeg invocations used to cut and join clips.
//
// All media work is stream copy; the client only assembles argument lists,
// runs one OS process per call, and classifies failures as
// services.ErrExternalTool with the tool's stderr attached.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"clipbatch/internal/clipspec"
	"clipbatch/internal/config"
	"clipbatch/internal/logging"
	"clipbatch/internal/services"
)

// Runner executes one external command to completion.
type Runner func(ctx context.Context, name string, args ...string) error

// Client runs cut and concat invocations against a configured binary.
type Client struct {
	binary  string
	cutMode string
	logger  *slog.Logger
	run     Runner
}

// New constructs a client. An empty binary falls back to "ffmpeg" and an
// empty cut mode to "duration".
func New(binary, cutMode string, logger *slog.Logger) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if strings.TrimSpace(cutMode) == "" {
		cutMode = config.CutModeDuration
	}
	return &Client{
		binary:  binary,
		cutMode: cutMode,
		logger:  logging.NewComponentLogger(logger, "ffmpeg"),
		run:     defaultRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (c *Client) WithCommandRunner(r Runner) {
	if c != nil && r != nil {
		c.run = r
	}
}

// Binary returns the configured executable.
func (c *Client) Binary() string {
	return c.binary
}

// Cut copies one range of src into out.
func (c *Client) Cut(ctx context.Context, src string, r clipspec.Range, out string) error {
	args := CutArgs(c.cutMode, src, r, out)
	c.logger.Debug("ffmpeg cut",
		logging.String("source", src),
		logging.String("start", r.Start),
		logging.String("end", r.End),
		logging.String("output", out),
	)
	if err := c.run(ctx, c.binary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "cut", fmt.Sprintf("%s [%s %s]", out, r.Start, r.End), err)
	}
	return nil
}

// Concat joins the files listed in listFile into out.
func (c *Client) Concat(ctx context.Context, listFile, out string) error {
	args := ConcatArgs(c.cutMode, listFile, out)
	c.logger.Debug("ffmpeg concat",
		logging.String("list", listFile),
		logging.String("output", out),
	)
	if err := c.run(ctx, c.binary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "concat", out, err)
	}
	return nil
}

var preamble = []string{"-hide_banner", "-nostdin", "-y", "-loglevel", "error"}

// CutArgs builds the argument list for one range.
//
// In "duration" mode start is an input seek and end is passed as -t, so it is
// read by ffmpeg as a duration. In "to" mode both are output-side positions.
func CutArgs(mode, src string, r clipspec.Range, out string) []string {
	args := append([]string(nil), preamble...)
	if mode == config.CutModeTo {
		return append(args,
			"-i", src,
			"-ss", r.Start,
			"-to", r.End,
			"-c:v", "copy",
			"-c:a", "copy",
			"-avoid_negative_ts", "1",
			"-movflags", "+faststart",
			out,
		)
	}
	return append(args,
		"-ss", r.Start,
		"-i", src,
		"-t", r.End,
		"-c", "copy",
		"-map", "0",
		"-avoid_negative_ts", "1",
		out,
	)
}

// ConcatArgs builds the argument list for the concat demuxer.
func ConcatArgs(mode, listFile, out string) []string {
	args := append([]string(nil), preamble...)
	if mode == config.CutModeTo {
		args = append(args, "-fflags", "+genpts")
	}
	args = append(args,
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c", "copy",
	)
	if mode == config.CutModeTo {
		args = append(args, "-movflags", "+faststart")
	}
	return append(args, out)
}

func defaultRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Join(ctxErr, err)
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return err
		}
		return fmt.Errorf("%w: %s", err, lastLines(detail, 5))
	}
	return nil
}

func lastLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}
