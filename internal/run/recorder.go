package run

import (
	"log/slog"

	"clipbatch/internal/extraction"
	"clipbatch/internal/logging"
	"clipbatch/internal/runlog"
)

// failureRecorder writes outcomes to the failure logs as workers produce them.
type failureRecorder struct {
	notFound runlog.Sink
	errors   runlog.Sink
	logger   *slog.Logger
}

func (r *failureRecorder) record(o extraction.Outcome) {
	var err error
	switch {
	case o.Status == extraction.StatusSourceNotFound:
		err = r.notFound.Record(o.ID, "")
	case o.Status == extraction.StatusFailed && !o.Interrupted():
		message := "unknown error"
		if o.Err != nil {
			message = o.Err.Error()
		}
		err = r.errors.Record(o.ID, message)
	}
	if err != nil {
		logging.WarnWithContext(r.logger, "failed to write failure log",
			"failure_log_write_failed",
			logging.String(logging.FieldItemID, o.ID),
			logging.Error(err),
			logging.String(logging.FieldImpact, "item outcome missing from failure log"),
		)
	}
}
