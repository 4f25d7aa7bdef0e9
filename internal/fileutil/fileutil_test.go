package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.mp4")
	if Exists(path) {
		t.Fatal("expected missing file")
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if !Exists(path) {
		t.Fatal("expected empty file to count as existing")
	}
	if !Exists(dir) {
		t.Fatal("expected directory to count as existing")
	}
}

func TestRequireNonEmptyFile(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.mp4")
	empty := filepath.Join(dir, "empty.mp4")
	full := filepath.Join(dir, "full.mp4")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := RequireNonEmptyFile(missing); err == nil {
		t.Fatal("expected error for missing file")
	}
	if err := RequireNonEmptyFile(empty); err == nil {
		t.Fatal("expected error for empty file")
	}
	if err := RequireNonEmptyFile(dir); err == nil {
		t.Fatal("expected error for directory")
	}
	if err := RequireNonEmptyFile(full); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPromote(t *testing.T) {
	dir := t.TempDir()
	tmp := filepath.Join(dir, ".7.partial.mp4")
	dst := filepath.Join(dir, "7.mp4")
	if err := os.WriteFile(tmp, []byte("clip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Promote(tmp, dst); err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if Exists(tmp) {
		t.Fatal("temp file should be gone")
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "clip" {
		t.Fatalf("content mismatch: %q", got)
	}

	if err := Promote(filepath.Join(dir, "absent"), dst); err == nil {
		t.Fatal("expected error promoting missing file")
	}
}

func TestRemoveQuietly(t *testing.T) {
	dir := t.TempDir()
	scratch := filepath.Join(dir, "7")
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(scratch, "7part0.mp4"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RemoveQuietly(scratch); err != nil {
		t.Fatalf("RemoveQuietly: %v", err)
	}
	if Exists(scratch) {
		t.Fatal("expected scratch removed")
	}
	if err := RemoveQuietly(scratch); err != nil {
		t.Fatalf("second remove should be quiet: %v", err)
	}
	if err := RemoveQuietly(""); err != nil {
		t.Fatalf("empty path should be ignored: %v", err)
	}
}
