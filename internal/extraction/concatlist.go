package extraction

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

const listHeader = "# clipbatch concat list"

// concatList is the ordered segment manifest for one multi-cut item. It is
// truncated on creation so a prior failed attempt never leaves stale entries.
type concatList struct {
	path string
	file *os.File
	w    *bufio.Writer
}

func createConcatList(path string) (*concatList, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create concat list: %w", err)
	}
	list := &concatList{path: path, file: file, w: bufio.NewWriter(file)}
	if _, err := list.w.WriteString(listHeader + "\n"); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("write concat list: %w", err)
	}
	return list, nil
}

func (l *concatList) add(absPath string) error {
	if _, err := l.w.WriteString(concatLine(absPath) + "\n"); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}

func (l *concatList) close() error {
	if l == nil || l.file == nil {
		return nil
	}
	flushErr := l.w.Flush()
	closeErr := l.file.Close()
	l.file = nil
	if flushErr != nil {
		return fmt.Errorf("flush concat list: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close concat list: %w", closeErr)
	}
	return nil
}

// concatLine quotes a path for the concat demuxer, which closes a quoted
// string at every single quote.
func concatLine(path string) string {
	return "file '" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}
