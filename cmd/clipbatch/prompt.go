package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"clipbatch/internal/config"
	"clipbatch/internal/workerpool"
)

func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok || file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) line(question string) (string, error) {
	fmt.Fprint(p.out, question)
	answer, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// directory asks until a non-empty path is given and returns it expanded.
func (p *prompter) directory(label string) (string, error) {
	for {
		answer, err := p.line(fmt.Sprintf("%s: ", label))
		if err != nil {
			return "", err
		}
		answer = strings.Trim(answer, `"'`)
		if answer == "" {
			fmt.Fprintln(p.out, "A path is required.")
			continue
		}
		return config.ExpandPath(answer)
	}
}

// intensity shows the worker count each tier yields on this host and returns
// the chosen tier. An empty answer keeps current.
func (p *prompter) intensity(logicalCPUs, current int) (int, error) {
	fmt.Fprintf(p.out, "Detected %d logical cores.\n", logicalCPUs)
	fmt.Fprintf(p.out, "  1) low     %d workers\n", workerpool.WorkerCount(logicalCPUs, workerpool.TierLow))
	fmt.Fprintf(p.out, "  2) medium  %d workers\n", workerpool.WorkerCount(logicalCPUs, workerpool.TierMedium))
	fmt.Fprintf(p.out, "  3) high    %d workers\n", workerpool.WorkerCount(logicalCPUs, workerpool.TierHigh))
	for {
		answer, err := p.line(fmt.Sprintf("Processing intensity [1-3] (%d): ", current))
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return current, nil
		}
		tier, convErr := strconv.Atoi(answer)
		if convErr == nil && tier >= config.IntensityLow && tier <= config.IntensityHigh {
			return tier, nil
		}
		fmt.Fprintln(p.out, "Enter 1, 2, or 3.")
	}
}
