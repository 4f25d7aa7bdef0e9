package services_test

import (
	"errors"
	"strings"
	"testing"

	"clipbatch/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "extract", "concat", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"extract", "concat", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestIsSetupFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"directory", services.Wrap(services.ErrDirectoryInvalid, "setup", "input", "missing", nil), true},
		{"manifest", services.Wrap(services.ErrManifestUnreadable, "setup", "manifest", "", errors.New("eof")), true},
		{"locked", services.Wrap(services.ErrRunLocked, "setup", "lock", "", nil), true},
		{"tool", services.Wrap(services.ErrExternalTool, "extract", "cut", "", nil), false},
		{"not found", services.Wrap(services.ErrNotFound, "extract", "locate", "", nil), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.IsSetupFailure(tt.err); got != tt.want {
				t.Fatalf("IsSetupFailure(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
