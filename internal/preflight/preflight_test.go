package preflight

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipbatch/internal/config"
	"clipbatch/internal/services"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir, AccessReadWrite)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"), AccessRead)
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f, AccessRead)
	if result.Passed || !strings.Contains(result.Detail, "is not a directory") {
		t.Fatalf("expected not-a-directory failure, got %+v", result)
	}
}

func TestCheckDirectoryAccess_Unset(t *testing.T) {
	if result := CheckDirectoryAccess("test", " ", AccessRead); result.Passed || result.Detail != "not configured" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCheckManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cuts.csv")
	if err := os.WriteFile(path, []byte("id,cuts\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckManifest("m", path); !result.Passed {
		t.Fatalf("expected readable manifest, got %s", result.Detail)
	}
	if result := CheckManifest("m", dir); result.Passed {
		t.Fatal("directory must not pass as manifest")
	}
	if result := CheckManifest("m", filepath.Join(dir, "absent.csv")); result.Passed {
		t.Fatal("missing manifest must fail")
	}
}

func TestRequireDirectories(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	if err := RequireDirectories(in, out); err != nil {
		t.Fatalf("expected valid directories, got %v", err)
	}
	err := RequireDirectories(filepath.Join(in, "missing"), out)
	if !errors.Is(err, services.ErrDirectoryInvalid) {
		t.Fatalf("expected ErrDirectoryInvalid, got %v", err)
	}
	if !strings.Contains(err.Error(), "input directory") {
		t.Fatalf("error should name the input directory: %v", err)
	}
}

func TestRunAllAndSystemDeps(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.InputDir = t.TempDir()
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	results := RunAll(&cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 checks, got %d", len(results))
	}
	for _, r := range results[:3] {
		if !r.Passed {
			t.Fatalf("expected %s to pass: %s", r.Name, r.Detail)
		}
	}
	if results[3].Passed {
		t.Fatal("unset manifest must fail")
	}

	cfg.FFmpeg.Binary = "clearly-not-present-ffmpeg"
	statuses := CheckSystemDeps(context.Background(), &cfg)
	if len(statuses) != 2 || statuses[0].Available {
		t.Fatalf("unexpected statuses %+v", statuses)
	}
}
