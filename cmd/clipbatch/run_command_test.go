package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipbatch/internal/extraction"
	"clipbatch/internal/logging"
	"clipbatch/internal/services"
	"clipbatch/internal/testsupport"
)

const cliManifest = "id,cuts\n" +
	"A,\"['00:00:01','00:00:05']\"\n" +
	"B,\"[['00:00:00','00:00:10'],['00:01:00','00:00:05']]\"\n" +
	"C,\"['00:00:01','00:00:05']\"\n"

func TestRunCommandExtractsAndSummarizes(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithManifest(cliManifest),
		testsupport.WithSources("A", "B"),
	)

	out, _, err := runCLI(t, []string{"run", "--no-input"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Run summary")
	requireContains(t, out, "2/3")
	requireContains(t, out, "ids_not_found.txt")

	for _, id := range []string{"A", "B"} {
		if _, err := os.Stat(extraction.OutputPath(env.cfg.Paths.OutputDir, id)); err != nil {
			t.Fatalf("expected output for %s: %v", id, err)
		}
	}
	if env.tool.CallCount() != 4 {
		t.Fatalf("expected 4 tool calls, got %d", env.tool.CallCount())
	}

	runLogs, err := filepath.Glob(filepath.Join(env.cfg.Paths.LogDir, logging.RunLogPrefix+"*.log"))
	if err != nil || len(runLogs) != 1 {
		t.Fatalf("expected one run log, got %v (err=%v)", runLogs, err)
	}
	data, err := os.ReadFile(runLogs[0])
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	if !strings.Contains(string(data), `"run_finished"`) {
		t.Fatalf("run log missing run_finished event:\n%s", data)
	}
}

func TestRunCommandFlagsOverrideConfig(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithSources("A"))
	manifestPath := filepath.Join(testsupport.BaseDir(env.cfg), "other.csv")
	if err := os.WriteFile(manifestPath, []byte("id,cuts\nA,\"['1','2']\"\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	output := filepath.Join(testsupport.BaseDir(env.cfg), "elsewhere")
	if err := os.MkdirAll(output, 0o755); err != nil {
		t.Fatalf("mkdir output: %v", err)
	}

	out, _, err := runCLI(t, []string{"run", "--no-input", "--manifest", manifestPath, "--output", output, "--workers", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "1/1")
	if _, err := os.Stat(extraction.OutputPath(output, "A")); err != nil {
		t.Fatalf("expected output in flag directory: %v", err)
	}
}

func TestRunCommandSetupErrors(t *testing.T) {
	t.Run("missing input directory", func(t *testing.T) {
		env := setupCLITestEnv(t, testsupport.WithManifest(cliManifest))
		missing := filepath.Join(testsupport.BaseDir(env.cfg), "nope")
		_, _, err := runCLI(t, []string{"run", "--no-input", "--input", missing}, env.configPath)
		if !errors.Is(err, services.ErrDirectoryInvalid) {
			t.Fatalf("expected ErrDirectoryInvalid, got %v", err)
		}
		if env.tool.CallCount() != 0 {
			t.Fatalf("no tool calls expected, got %d", env.tool.CallCount())
		}
	})

	t.Run("unreadable manifest", func(t *testing.T) {
		env := setupCLITestEnv(t)
		_, _, err := runCLI(t, []string{"run", "--no-input"}, env.configPath)
		if !errors.Is(err, services.ErrManifestUnreadable) {
			t.Fatalf("expected ErrManifestUnreadable, got %v", err)
		}
	})

	t.Run("invalid intensity", func(t *testing.T) {
		env := setupCLITestEnv(t, testsupport.WithManifest(cliManifest))
		_, _, err := runCLI(t, []string{"run", "--no-input", "--intensity", "5"}, env.configPath)
		if !errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("expected ErrConfiguration, got %v", err)
		}
	})

	t.Run("input not configured without prompting", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		path := filepath.Join(t.TempDir(), "empty.toml")
		if err := os.WriteFile(path, []byte("[paths]\nlog_dir = \""+t.TempDir()+"\"\n"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		_, _, err := runCLI(t, []string{"run", "--no-input"}, path)
		if !errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("expected ErrConfiguration, got %v", err)
		}
		requireContains(t, err.Error(), "--input")
	})
}
