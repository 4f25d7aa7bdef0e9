package manifest

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"clipbatch/internal/clipspec"
	"clipbatch/internal/config"
	"clipbatch/internal/logging"
	"clipbatch/internal/services"
)

// Item is one manifest row resolved into an executable clip specification.
type Item struct {
	ID   string
	Spec clipspec.ClipSpec
}

// Options selects the columns and table that hold item data.
type Options struct {
	IDColumn   string
	CutsColumn string
	Delimiter  rune
	Table      string
}

// OptionsFromConfig derives loader options from the manifest config section.
func OptionsFromConfig(cfg config.Manifest) Options {
	opts := Options{
		IDColumn:   cfg.IDColumn,
		CutsColumn: cfg.CutsColumn,
		Table:      cfg.Table,
		Delimiter:  ',',
	}
	for _, r := range cfg.Delimiter {
		opts.Delimiter = r
		break
	}
	return opts
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.IDColumn) == "" {
		o.IDColumn = "id"
	}
	if strings.TrimSpace(o.CutsColumn) == "" {
		o.CutsColumn = "cuts"
	}
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if strings.TrimSpace(o.Table) == "" {
		o.Table = "cuts"
	}
	return o
}

// Load reads every item from path in manifest order. Ids are unique in the
// result: a repeated id keeps its first row and later rows are skipped.
func Load(ctx context.Context, path string, opts Options, logger *slog.Logger) ([]Item, error) {
	logger = logging.NewComponentLogger(logger, "manifest")
	opts = opts.withDefaults()
	if strings.TrimSpace(path) == "" {
		return nil, services.Wrap(services.ErrManifestUnreadable, "manifest", "load", "no manifest path configured", nil)
	}

	var (
		rows []row
		err  error
	)
	if IsSQLite(path) {
		rows, err = readSQLite(ctx, path, opts)
	} else {
		rows, err = readDelimited(path, opts)
	}
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(rows))
	firstLine := make(map[string]int, len(rows))
	for _, r := range rows {
		id := strings.TrimSpace(r.id)
		if id == "" {
			logging.WarnWithContext(logger, "manifest row has no id; skipping",
				"manifest_row_skipped",
				logging.Int("line", r.line),
				logging.String(logging.FieldErrorHint, "fill in the "+opts.IDColumn+" column"),
				logging.String(logging.FieldImpact, "row is not processed"),
			)
			continue
		}
		if line, seen := firstLine[id]; seen {
			logging.WarnWithContext(logger, "duplicate manifest id; keeping the first row",
				"manifest_row_skipped",
				logging.String(logging.FieldItemID, id),
				logging.Int("line", r.line),
				logging.Int("first_line", line),
				logging.String(logging.FieldErrorHint, "merge the cut ranges into one row per id"),
				logging.String(logging.FieldImpact, "row is not processed"),
			)
			continue
		}
		firstLine[id] = r.line
		spec := clipspec.Resolve(r.cuts)
		if spec.Problem != "" {
			logger.Debug("manifest cut specification unresolved",
				logging.String(logging.FieldItemID, id),
				logging.Int("line", r.line),
				logging.String("problem", spec.Problem),
			)
		}
		items = append(items, Item{ID: id, Spec: spec})
	}

	logger.Info("manifest loaded",
		logging.String("path", path),
		logging.Int("items", len(items)),
		logging.Int("rows", len(rows)),
	)
	return items, nil
}

// IsSQLite reports whether path names a SQLite manifest by extension.
func IsSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}

// row is a raw manifest record before resolution. line is 1-based and counts
// the header for delimited files; for SQLite it is the result ordinal.
type row struct {
	line int
	id   string
	cuts string
}
