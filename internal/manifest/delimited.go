package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"clipbatch/internal/services"
)

func readDelimited(path string, opts Options) ([]row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrManifestUnreadable, "manifest", "open", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = opts.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, services.Wrap(services.ErrManifestUnreadable, "manifest", "read header", "manifest is empty", nil)
		}
		return nil, services.Wrap(services.ErrManifestUnreadable, "manifest", "read header", path, err)
	}
	idIdx, cutsIdx := -1, -1
	for idx, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch {
		case strings.EqualFold(name, opts.IDColumn):
			idIdx = idx
		case strings.EqualFold(name, opts.CutsColumn):
			cutsIdx = idx
		}
	}
	if idIdx < 0 || cutsIdx < 0 {
		return nil, services.Wrap(services.ErrManifestUnreadable, "manifest", "read header",
			fmt.Sprintf("header must contain %q and %q columns", opts.IDColumn, opts.CutsColumn), nil)
	}

	var rows []row
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, services.Wrap(services.ErrManifestUnreadable, "manifest", "read row", fmt.Sprintf("line %d", line), err)
		}
		if isBlank(record) {
			continue
		}
		rows = append(rows, row{
			line: line,
			id:   field(record, idIdx),
			cuts: field(record, cutsIdx),
		})
	}
	return rows, nil
}

func field(record []string, idx int) string {
	if idx < len(record) {
		return record[idx]
	}
	return ""
}

func isBlank(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
