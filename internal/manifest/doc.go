// Package manifest reads the cut manifest into an ordered list of items.
//
// Two sources are supported: delimited text with a header row, and SQLite
// databases (.db, .sqlite, .sqlite3) holding a table with the same id and cuts
// columns. Each cuts cell is resolved into a clipspec.ClipSpec at load time.
// Any failure to open or parse the source is reported as
// services.ErrManifestUnreadable, which aborts the run.
package manifest
