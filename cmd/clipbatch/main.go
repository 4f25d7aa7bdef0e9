package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"clipbatch/internal/services"
)

// Exit statuses. A completed run exits 0 even when some items failed; those
// are reported in the summary and the failure logs.
const (
	exitFailure     = 1
	exitSetup       = 2
	exitInterrupted = 130
)

func main() {
	err := newRootCommand().Execute()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "clipbatch:", err)
	}
	if code := exitCode(err); code != 0 {
		os.Exit(code)
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case services.IsSetupFailure(err):
		return exitSetup
	default:
		return exitFailure
	}
}
