package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// RunLogPrefix starts the file name of every per-run debug log.
const RunLogPrefix = "clipbatch-"

// RunLogPattern matches every per-run debug log name.
const RunLogPattern = RunLogPrefix + "*.log"

// RunLogPath returns the debug log path for runID inside dir.
func RunLogPath(dir, runID string) string {
	return filepath.Join(dir, RunLogPrefix+runID+".log")
}

// OpenRunLog opens the per-run JSON log at debug level. Records carry run_id
// when runID is set. The returned file must be closed by the caller.
func OpenRunLog(path, runID string) (slog.Handler, *os.File, error) {
	if err := ensureLogDir(path); err != nil {
		return nil, nil, fmt.Errorf("create run log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, nil, fmt.Errorf("open run log %s: %w", path, err)
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelDebug)
	handler := newJSONHandler(file, levelVar, true)
	if runID = strings.TrimSpace(runID); runID != "" {
		handler = newRunIDHandler(handler, runID)
	}
	return handler, file, nil
}
