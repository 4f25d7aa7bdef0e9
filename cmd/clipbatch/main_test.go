package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"clipbatch/internal/services"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", fmt.Errorf("run: %w", context.Canceled), exitInterrupted},
		{"bad directory", services.Wrap(services.ErrDirectoryInvalid, "preflight", "validate directories", "", nil), exitSetup},
		{"unreadable manifest", services.Wrap(services.ErrManifestUnreadable, "manifest", "load", "", nil), exitSetup},
		{"locked output", services.Wrap(services.ErrRunLocked, "run", "lock output directory", "", nil), exitSetup},
		{"missing tool", services.Wrap(services.ErrExternalTool, "cli", "check dependencies", "", nil), exitFailure},
		{"other", errors.New("boom"), exitFailure},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCode(tc.err); got != tc.want {
				t.Fatalf("exitCode = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRootRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, _, err := runCLI(t, []string{"--log-level", "verbose", "config", "init", "--path", t.TempDir() + "/c.toml"}, "")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if exitCode(err) != exitSetup {
		t.Fatalf("bad flag should exit with the setup status, got %d", exitCode(err))
	}
}

func TestRootPrintsVersion(t *testing.T) {
	out, _, err := runCLI(t, []string{"--version"}, "")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	requireContains(t, out, "clipbatch version "+version)
}
