package testsupport

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Invocation records one call made through FakeTool.
type Invocation struct {
	Name   string
	Args   []string
	Input  string
	Output string
	Concat bool
}

// FakeTool stands in for ffmpeg. Cuts write a one-line description of the
// range to the output path; concats write the listed files back to back, so
// tests can read the final artifact to check segment order. It records every
// call and the highest number of calls in flight at once.
type FakeTool struct {
	// Delay holds each call open so overlapping workers are observable.
	Delay time.Duration
	// FailOn returns a non-nil error to make a call fail without output.
	FailOn func(Invocation) error
	// SkipOutput makes successful calls produce nothing.
	SkipOutput bool

	mu       sync.Mutex
	calls    []Invocation
	inflight int
	peak     int
}

// NewFakeTool returns a FakeTool with no delay and no failures.
func NewFakeTool() *FakeTool {
	return &FakeTool{}
}

// Run matches the ffmpeg.Runner signature.
func (f *FakeTool) Run(ctx context.Context, name string, args ...string) error {
	inv := parseInvocation(name, args)

	f.mu.Lock()
	f.calls = append(f.calls, inv)
	f.inflight++
	if f.inflight > f.peak {
		f.peak = f.inflight
	}
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.inflight--
		f.mu.Unlock()
	}()

	if f.Delay > 0 {
		timer := time.NewTimer(f.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	if f.FailOn != nil {
		if err := f.FailOn(inv); err != nil {
			return err
		}
	}
	if f.SkipOutput || inv.Output == "" {
		return nil
	}
	if inv.Concat {
		return writeConcat(inv.Input, inv.Output)
	}
	return os.WriteFile(inv.Output, []byte(describeCut(args)+"\n"), 0o644)
}

// Calls returns a copy of every recorded invocation in call order.
func (f *FakeTool) Calls() []Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Invocation, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns the number of recorded invocations.
func (f *FakeTool) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// Peak returns the concurrency high-water mark.
func (f *FakeTool) Peak() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.peak
}

func parseInvocation(name string, args []string) Invocation {
	inv := Invocation{Name: name, Args: append([]string(nil), args...)}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-i":
			if i+1 < len(args) {
				inv.Input = args[i+1]
			}
		case "-f":
			if i+1 < len(args) && args[i+1] == "concat" {
				inv.Concat = true
			}
		}
	}
	if len(args) > 0 {
		inv.Output = args[len(args)-1]
	}
	return inv
}

func describeCut(args []string) string {
	var start, end string
	for i := 0; i+1 < len(args); i++ {
		switch args[i] {
		case "-ss":
			start = args[i+1]
		case "-t", "-to":
			end = args[i+1]
		}
	}
	return fmt.Sprintf("cut %s-%s", start, end)
}

func writeConcat(listPath, output string) error {
	list, err := os.Open(listPath)
	if err != nil {
		return err
	}
	defer list.Close()

	var joined strings.Builder
	scanner := bufio.NewScanner(list)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		path, ok := ParseConcatLine(line)
		if !ok {
			return fmt.Errorf("malformed concat line %q", line)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		joined.Write(data)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return os.WriteFile(output, []byte(joined.String()), 0o644)
}

// ParseConcatLine extracts the path from a `file '<path>'` concat entry.
func ParseConcatLine(line string) (string, bool) {
	const prefix = "file '"
	if !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, "'") || len(line) < len(prefix)+1 {
		return "", false
	}
	quoted := line[len(prefix) : len(line)-1]
	return strings.ReplaceAll(quoted, `'\''`, `'`), true
}
