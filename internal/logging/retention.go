package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Retention prunes the log directory. Every run writes its debug log and its
// failure logs side by side in Dir, so one pass over Dir with the patterns of
// each file kind covers them all.
type Retention struct {
	Dir string
	// Days is the maximum age in days; 0 or less keeps everything.
	Days     int
	Patterns []string
	// Now defaults to time.Now.
	Now func() time.Time
}

// RetentionReport lists what a prune pass did.
type RetentionReport struct {
	Removed []string
	Failed  int
}

// Prune removes regular files in Dir that match any pattern and were last
// modified more than Days ago. Directories and unmatched files are never
// touched. A missing Dir is not an error.
func (r Retention) Prune(logger *slog.Logger) RetentionReport {
	var report RetentionReport
	dir := strings.TrimSpace(r.Dir)
	if r.Days <= 0 || dir == "" || len(r.Patterns) == 0 {
		return report
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	cutoff := now().AddDate(0, 0, -r.Days)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !r.matches(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			report.Failed++
			WarnWithContext(logger, "log retention remove failed; file remains", "log_retention_failed",
				String("path", path),
				Error(err),
				String(FieldErrorHint, "check file permissions and log_dir ownership"),
				String(FieldImpact, "old log file remains on disk"),
			)
			continue
		}
		report.Removed = append(report.Removed, path)
		if logger != nil {
			logger.Debug("log pruned", String("path", path), String(FieldEventType, "log_pruned"))
		}
	}
	sort.Strings(report.Removed)
	return report
}

func (r Retention) matches(name string) bool {
	for _, pattern := range r.Patterns {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}
