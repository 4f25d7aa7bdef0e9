package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipbatch/internal/config"
	"clipbatch/internal/run"
	"clipbatch/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	tool       *testsupport.FakeTool
}

// setupCLITestEnv writes a config for a fresh temp tree, points HOME at it,
// and routes ffmpeg calls made by `run` through a FakeTool.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	homeDir := filepath.Join(testsupport.BaseDir(cfg), "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	configPath := filepath.Join(homeDir, ".config", "clipbatch", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	tool := testsupport.NewFakeTool()
	previous := newCoordinator
	newCoordinator = func(logger *slog.Logger) *run.Coordinator {
		c := previous(logger)
		c.WithCommandRunner(tool.Run)
		return c
	}
	t.Cleanup(func() {
		newCoordinator = previous
	})

	return &cliTestEnv{cfg: cfg, configPath: configPath, tool: tool}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	flags := []string{"--log-level", "error"}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ninput_dir = %q\noutput_dir = %q\nlog_dir = %q\nmanifest = %q\n\n[workflow]\nworkers = %d\nbatch_pause_seconds = %d\n\n[logging]\nretention_days = %d\n",
		cfg.Paths.InputDir,
		cfg.Paths.OutputDir,
		cfg.Paths.LogDir,
		cfg.Paths.Manifest,
		cfg.Workflow.Workers,
		cfg.Workflow.BatchPauseSeconds,
		cfg.Logging.RetentionDays,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
