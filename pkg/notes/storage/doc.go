// Package storage converts between SQL result sets and the portable value
// model, and runs statements against the NoteSponge SQLite database.
//
// # Components
//
//   - MarshalRows turns *sql.Rows into ordered Records, dispatching on each
//     column's declared type rather than on the stored content
//   - Bind converts loosely-typed parameters (nil, strings, numbers, anything
//     else as JSON text) into statement arguments
//   - Executor owns no handle of its own; it borrows one connection from the
//     injected DB per call and releases it when the call returns
//   - DB opens the database with WAL journaling, a busy timeout, and foreign
//     keys enforced on every pooled connection
//
// # Drivers
//
// Both SQLite drivers are registered. "sqlite" (modernc.org/sqlite) is the
// pure-Go default; "sqlite3" (github.com/mattn/go-sqlite3) requires cgo.
//
// # Usage
//
//	db, err := storage.Open(&storage.Config{Path: "notesponge.db"})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	exec := storage.NewExecutor(db, nil)
//	records, err := exec.Query(ctx, "SELECT id, title FROM pages WHERE id = ?", []any{1})
package storage
