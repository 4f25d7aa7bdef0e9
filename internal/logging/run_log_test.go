package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipbatch/internal/logging"
)

func TestOpenRunLogWritesDebugJSON(t *testing.T) {
	dir := t.TempDir()
	path := logging.RunLogPath(filepath.Join(dir, "logs"), "abc")
	if filepath.Base(path) != "clipbatch-abc.log" {
		t.Fatalf("unexpected run log name %q", path)
	}

	handler, file, err := logging.OpenRunLog(path, "abc")
	if err != nil {
		t.Fatalf("OpenRunLog: %v", err)
	}
	base, err := logging.New(logging.Options{Level: "info", Format: "console", OutputPaths: []string{filepath.Join(dir, "console.log")}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger := logging.TeeLogger(base, handler)
	logger.Debug("segment extracted", logging.String(logging.FieldItemID, "7"))
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &record); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	if record["run_id"] != "abc" || record["item_id"] != "7" || record["level"] != "debug" {
		t.Fatalf("unexpected record %v", record)
	}

	console, err := os.ReadFile(filepath.Join(dir, "console.log"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(console), "segment extracted") {
		t.Fatal("debug record must not reach the info-level console")
	}
}
