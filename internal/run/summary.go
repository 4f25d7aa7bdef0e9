package run

import (
	"time"

	"clipbatch/internal/extraction"
)

// Summary is the final accounting of a run.
//
// Successful includes Skipped. Interrupted counts items that never started
// because the run was cancelled; they are not failures and are picked up by
// the next run.
type Summary struct {
	RunID       string
	TotalItems  int
	Successful  int
	Skipped     int
	NotFound    int
	Failed      int
	Interrupted int
	Batches     int
	BatchSize   int
	Workers     int
	Elapsed     time.Duration
	NotFoundLog string
	ErrorLog    string
}

// Processed returns the number of items that reached a final outcome.
func (s Summary) Processed() int {
	return s.Successful + s.NotFound + s.Failed
}

func (s *Summary) add(o extraction.Outcome) {
	switch {
	case o.Status == extraction.StatusSkipped:
		s.Skipped++
		s.Successful++
	case o.Status == extraction.StatusSuccess:
		s.Successful++
	case o.Status == extraction.StatusSourceNotFound:
		s.NotFound++
	case o.Interrupted():
		s.Interrupted++
	default:
		s.Failed++
	}
}
