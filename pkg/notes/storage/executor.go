package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"notesponge-hq/mdsync/pkg/notes"
)

// Observer receives the outcome of every statement the Executor runs.
type Observer interface {
	ObserveStatement(operation string, duration time.Duration, err error)
}

// Executor runs SQL against the shared connection handle. Each call holds the
// connection exclusively from acquisition until its rows are fully marshaled.
type Executor struct {
	db       *DB
	observer Observer
	logger   *slog.Logger
}

// NewExecutor creates an executor over db. observer may be nil.
func NewExecutor(db *DB, observer Observer) *Executor {
	return &Executor{
		db:       db,
		observer: observer,
		logger:   slog.Default().With("component", "notes.storage.executor"),
	}
}

// Mutate executes a statement that returns no rows and reports the number of
// rows it affected. Any rows the statement does produce are ignored.
func (e *Executor) Mutate(ctx context.Context, query string, params []any) (int64, error) {
	start := time.Now()
	var affected int64
	err := e.withConn(ctx, query, params, func(conn *sql.Conn, args []any) error {
		res, err := conn.ExecContext(ctx, query, args...)
		if err != nil {
			return notes.NewDatabaseError("execute", query, err)
		}
		if affected, err = res.RowsAffected(); err != nil {
			return notes.NewDatabaseError("rows_affected", query, err)
		}
		return nil
	})
	e.observe("mutate", start, err)
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Query executes a statement and marshals every result row into a Record.
// An empty result set yields an empty, non-nil slice.
func (e *Executor) Query(ctx context.Context, query string, params []any) ([]Record, error) {
	start := time.Now()
	var records []Record
	err := e.withConn(ctx, query, params, func(conn *sql.Conn, args []any) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return notes.NewDatabaseError("query", query, err)
		}
		defer rows.Close()

		records, err = MarshalRows(rows, e.logger)
		if err != nil {
			var dbErr *notes.DatabaseError
			if errors.As(err, &dbErr) && dbErr.SQL == "" {
				dbErr.SQL = query
			}
			return err
		}
		return nil
	})
	e.observe("query", start, err)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// TableColumns returns the names of table's columns in declaration order.
// A table that does not exist has no columns.
func (e *Executor) TableColumns(ctx context.Context, table string) ([]string, error) {
	const query = "SELECT name FROM pragma_table_info(?) ORDER BY cid"

	start := time.Now()
	var names []string
	err := e.withConn(ctx, query, []any{table}, func(conn *sql.Conn, args []any) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return notes.NewDatabaseError("query", query, err)
		}
		defer rows.Close()

		// pragma_table_info reports no declared types, so names are scanned
		// directly rather than marshaled.
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return notes.NewDatabaseError("scan", query, err)
			}
			names = append(names, name)
		}
		if err := rows.Err(); err != nil {
			return notes.NewDatabaseError("query", query, err)
		}
		return nil
	})
	e.observe("table_columns", start, err)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Ping verifies the database answers a trivial statement.
func (e *Executor) Ping(ctx context.Context) error {
	records, err := e.Query(ctx, "SELECT 1 AS ok", nil)
	if err != nil {
		return err
	}
	if len(records) != 1 {
		return notes.NewDatabaseError("ping", "SELECT 1 AS ok", errors.New("unexpected result"))
	}
	return nil
}

func (e *Executor) withConn(ctx context.Context, query string, params []any, fn func(*sql.Conn, []any) error) error {
	args, err := Bind(params)
	if err != nil {
		return notes.NewDatabaseError("bind", query, err)
	}

	conn, err := e.db.Conn(ctx)
	if err != nil {
		return notes.NewDatabaseError("acquire", query, err)
	}
	defer conn.Close()

	return fn(conn, args)
}

func (e *Executor) observe(operation string, start time.Time, err error) {
	d := time.Since(start)
	if err != nil {
		e.logger.Debug("statement failed", "operation", operation, "duration", d, "error", err)
	}
	if e.observer != nil {
		e.observer.ObserveStatement(operation, d, err)
	}
}
