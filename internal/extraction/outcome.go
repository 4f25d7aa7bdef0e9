package extraction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clipbatch/internal/services"
)

// Status classifies how an item finished.
type Status int

const (
	StatusSuccess Status = iota
	StatusSkipped
	StatusSourceNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkipped:
		return "skipped"
	case StatusSourceNotFound:
		return "source_not_found"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Succeeded reports whether the status counts toward the success tally.
func (s Status) Succeeded() bool {
	return s == StatusSuccess || s == StatusSkipped
}

// Outcome is the result of one Extract call.
type Outcome struct {
	ID      string
	Status  Status
	Source  string
	Output  string
	Err     error
	Elapsed time.Duration
}

// Interrupted reports whether the item stopped because the run was cancelled.
func (o Outcome) Interrupted() bool {
	return o.Err != nil && (errors.Is(o.Err, context.Canceled) || errors.Is(o.Err, context.DeadlineExceeded))
}

// StatusFor maps an item error to its outcome status.
func StatusFor(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, services.ErrNotFound):
		return StatusSourceNotFound
	default:
		return StatusFailed
	}
}
