package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"clipbatch/internal/services"
)

func readSQLite(ctx context.Context, path string, opts Options) ([]row, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, services.Wrap(services.ErrManifestUnreadable, "manifest", "open", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, services.Wrap(services.ErrManifestUnreadable, "manifest", "open sqlite", path, err)
	}
	defer db.Close()

	// Identifiers are validated by config; quoting keeps reserved words usable.
	query := fmt.Sprintf(`SELECT CAST(%q AS TEXT), CAST(%q AS TEXT) FROM %q ORDER BY rowid`,
		opts.IDColumn, opts.CutsColumn, opts.Table)
	result, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, services.Wrap(services.ErrManifestUnreadable, "manifest", "query sqlite", opts.Table, err)
	}
	defer result.Close()

	var rows []row
	for result.Next() {
		var id, cuts sql.NullString
		if err := result.Scan(&id, &cuts); err != nil {
			return nil, services.Wrap(services.ErrManifestUnreadable, "manifest", "scan sqlite", opts.Table, err)
		}
		rows = append(rows, row{line: len(rows) + 1, id: id.String, cuts: cuts.String})
	}
	if err := result.Err(); err != nil {
		return nil, services.Wrap(services.ErrManifestUnreadable, "manifest", "iterate sqlite", opts.Table, err)
	}
	return rows, nil
}
