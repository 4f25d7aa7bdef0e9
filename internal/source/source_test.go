package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"clipbatch/internal/services"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestSubstringLocatorFirstSortedMatch(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b_42.final.mp4", "a_42.mp4", "42.txt", "notes.mp4")

	path, found, err := SubstringLocator{Dir: dir}.Locate("42")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if !found {
		t.Fatal("expected match")
	}
	if filepath.Base(path) != "a_42.mp4" {
		t.Fatalf("expected first sorted match, got %s", path)
	}
}

func TestSubstringLocatorPrefixCollisionPreserved(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "112.mp4")

	path, found, err := SubstringLocator{Dir: dir}.Locate("12")
	if err != nil || !found {
		t.Fatalf("expected substring match, found=%v err=%v", found, err)
	}
	if filepath.Base(path) != "112.mp4" {
		t.Fatalf("unexpected match %s", path)
	}

	if _, found, _ := (ExactLocator{Dir: dir}).Locate("12"); found {
		t.Fatal("exact locator must not match 112.mp4 for id 12")
	}
}

func TestLocatorNotFound(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "7.mkv", "77mp4")
	if err := os.Mkdir(filepath.Join(dir, "7.mp4"), 0o755); err != nil {
		t.Fatal(err)
	}

	for _, loc := range []Locator{SubstringLocator{Dir: dir}, ExactLocator{Dir: dir}} {
		path, found, err := loc.Locate("7")
		if err != nil {
			t.Fatalf("%T: unexpected error %v", loc, err)
		}
		if found || path != "" {
			t.Fatalf("%T: expected not found, got %q", loc, path)
		}
	}
}

func TestLocatorNormalizesUnicode(t *testing.T) {
	dir := t.TempDir()
	decomposed := "Jose\u0301.mp4"
	touch(t, dir, decomposed)

	path, found, err := ExactLocator{Dir: dir}.Locate("Jos\u00e9")
	if err != nil || !found {
		t.Fatalf("expected NFC match, found=%v err=%v", found, err)
	}
	if filepath.Base(path) != decomposed {
		t.Fatalf("expected original on-disk name, got %q", path)
	}
}

func TestLocatorMissingDirectory(t *testing.T) {
	_, _, err := SubstringLocator{Dir: filepath.Join(t.TempDir(), "gone")}.Locate("1")
	if !errors.Is(err, services.ErrDirectoryInvalid) {
		t.Fatalf("expected ErrDirectoryInvalid, got %v", err)
	}
}

func TestNewSelectsStrategy(t *testing.T) {
	if loc, err := New("/in", "substring"); err != nil {
		t.Fatal(err)
	} else if _, ok := loc.(SubstringLocator); !ok {
		t.Fatalf("expected SubstringLocator, got %T", loc)
	}
	if loc, err := New("/in", "Exact"); err != nil {
		t.Fatal(err)
	} else if _, ok := loc.(ExactLocator); !ok {
		t.Fatalf("expected ExactLocator, got %T", loc)
	}
	if _, err := New("/in", "fuzzy"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
