// Package runlog records per-item failures of a run in append-only text files.
//
// Two logs exist per run, both named after the run start time: one listing
// ids whose source file was not found ("<id>,") and one listing extraction
// errors ("ID <id> ERROR <message>"). Files are created on the first entry, so
// a log that exists always has content. Writes from concurrent workers are
// serialized per file.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// StampLayout formats the run start time in log file names.
const StampLayout = "20060102-1504"

const (
	notFoundSuffix = "-ids_not_found.txt"
	errorsSuffix   = "-errors.txt"
)

// Sink receives failure records for one category.
type Sink interface {
	Record(id, message string) error
	Path() string
	Count() int
}

// FileSink appends one line per record to a lazily created file.
type FileSink struct {
	path   string
	header string
	format func(id, message string) string

	mu    sync.Mutex
	file  *os.File
	count int
}

// NewNotFoundLog returns the sink for ids without a source file.
func NewNotFoundLog(dir string, started time.Time) *FileSink {
	return &FileSink{
		path:   filepath.Join(dir, started.Format(StampLayout)+notFoundSuffix),
		header: "# ids without a matching source file, run started " + started.Format(time.RFC3339),
		format: func(id, _ string) string { return id + "," },
	}
}

// NewErrorLog returns the sink for failed extractions.
func NewErrorLog(dir string, started time.Time) *FileSink {
	return &FileSink{
		path:   filepath.Join(dir, started.Format(StampLayout)+errorsSuffix),
		header: "# extraction errors, run started " + started.Format(time.RFC3339),
		format: func(id, message string) string { return fmt.Sprintf("ID %s ERROR %s", id, message) },
	}
}

// Record appends one line.
func (s *FileSink) Record(id, message string) error {
	line := s.format(id, singleLine(message))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open %s: %w", s.path, err)
		}
		if _, err := file.WriteString(s.header + "\n"); err != nil {
			_ = file.Close()
			return fmt.Errorf("write %s: %w", s.path, err)
		}
		s.file = file
	}
	if _, err := s.file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	s.count++
	return nil
}

// Path returns the log file path whether or not it exists yet.
func (s *FileSink) Path() string {
	return s.path
}

// Count returns the number of recorded lines, excluding the header.
func (s *FileSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Close releases the file handle if one was opened.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// MemorySink keeps records in memory.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
}

// Entry is one recorded failure.
type Entry struct {
	ID      string
	Message string
}

// Record implements Sink.
func (m *MemorySink) Record(id, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{ID: id, Message: singleLine(message)})
	return nil
}

// Path implements Sink; memory sinks have no file.
func (m *MemorySink) Path() string { return "" }

// Count implements Sink.
func (m *MemorySink) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Entries returns a copy of the recorded failures.
func (m *MemorySink) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...)
}

// ReportedPath returns the sink path when it holds entries, otherwise "".
func ReportedPath(s Sink) string {
	if s == nil || s.Count() == 0 {
		return ""
	}
	return s.Path()
}

func singleLine(message string) string {
	return strings.Join(strings.Fields(message), " ")
}

// RetentionPatterns lists glob patterns matching failure logs in a log dir.
func RetentionPatterns() []string {
	return []string{"*" + notFoundSuffix, "*" + errorsSuffix}
}
