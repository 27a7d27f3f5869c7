package storage

import (
	"database/sql"
	"fmt"
	"log/slog"

	"notesponge-hq/mdsync/pkg/notes"
	"notesponge-hq/mdsync/pkg/notes/value"
)

// MarshalRows converts every row of rows into a Record, dispatching on each
// column's declared type. It does not close rows.
//
// Marshaling is all-or-nothing: the first cell that does not match its
// declared type aborts with a *notes.DecodeError naming the row and column,
// and no records are returned.
func MarshalRows(rows *sql.Rows, logger *slog.Logger) ([]Record, error) {
	if logger == nil {
		logger = slog.Default()
	}

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, notes.NewDatabaseError("columns", "", err)
	}
	cols := describeColumns(types)
	reportUnknownColumns(logger, cols)

	raw := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}

	records := []Record{}
	for row := 0; rows.Next(); row++ {
		if err := rows.Scan(dest...); err != nil {
			return nil, notes.NewDatabaseError("scan", "", err)
		}

		record := Record{
			names:  make([]string, 0, len(cols)),
			values: make(map[string]value.Value, len(cols)),
		}
		for i, col := range cols {
			v, err := decodeCell(col.Type, raw[i])
			if err != nil {
				return nil, notes.NewDecodeError(row, col.Name, err)
			}
			record.set(col.Name, v)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, notes.NewDatabaseError("query", "", err)
	}

	return records, nil
}

// decodeCell converts one scanned driver value according to the column's
// declared type. SQL NULL is Null under every declared type.
func decodeCell(t ColumnType, raw any) (value.Value, error) {
	if raw == nil {
		return value.Null(), nil
	}

	switch t {
	case ColumnInteger:
		if i, ok := raw.(int64); ok {
			return value.Integer(i), nil
		}

	case ColumnReal:
		switch x := raw.(type) {
		case float64:
			return value.Real(x), nil
		case int64:
			return value.Real(float64(x)), nil
		}

	case ColumnText:
		switch x := raw.(type) {
		case string:
			return value.Text(x), nil
		case []byte:
			return value.Text(string(x)), nil
		}

	case ColumnBlob:
		switch x := raw.(type) {
		case []byte:
			return value.Blob(x), nil
		case string:
			return value.Blob([]byte(x)), nil
		}

	case ColumnNull, ColumnUnknown:
		return value.Null(), nil
	}

	return value.Null(), fmt.Errorf("%w: declared %s, driver returned %T", notes.ErrTypeMismatch, t, raw)
}

// reportUnknownColumns emits the non-fatal diagnostic for columns decoded as
// Null because their declared type is not recognized.
func reportUnknownColumns(logger *slog.Logger, cols []Column) {
	for _, col := range cols {
		if col.Type != ColumnUnknown {
			continue
		}
		if col.DeclaredType == "" {
			logger.Debug("column has no declared type, decoding as NULL", "column", col.Name)
			continue
		}
		logger.Warn("unrecognized declared column type, decoding as NULL",
			"column", col.Name,
			"declared_type", col.DeclaredType,
		)
	}
}
