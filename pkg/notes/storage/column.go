package storage

import (
	"database/sql"
	"strings"
)

// ColumnType is the closed set of declared column types the marshaler
// dispatches on.
type ColumnType uint8

const (
	// ColumnUnknown covers unrecognized declared types and expression columns
	// that carry no declared type. Decoded as Null.
	ColumnUnknown ColumnType = iota
	ColumnInteger
	ColumnReal
	ColumnText
	ColumnBlob
	// ColumnNull is an explicit NULL declared type. Decoded as Null.
	ColumnNull
)

// String returns the canonical type name.
func (t ColumnType) String() string {
	switch t {
	case ColumnInteger:
		return "INTEGER"
	case ColumnReal:
		return "REAL"
	case ColumnText:
		return "TEXT"
	case ColumnBlob:
		return "BLOB"
	case ColumnNull:
		return "NULL"
	default:
		return "UNKNOWN"
	}
}

// ParseColumnType maps a driver-reported declared type name onto a ColumnType
// using SQLite's affinity rules, so "VARCHAR(64)" reads as TEXT and "BIGINT"
// as INTEGER. Names matching no rule, and the empty name SQLite reports for
// expression columns, are ColumnUnknown.
func ParseColumnType(declared string) ColumnType {
	d := strings.ToUpper(strings.TrimSpace(declared))

	switch {
	case d == "":
		return ColumnUnknown
	case d == "NULL":
		return ColumnNull
	case strings.Contains(d, "INT"):
		return ColumnInteger
	case strings.Contains(d, "CHAR"), strings.Contains(d, "CLOB"), strings.Contains(d, "TEXT"):
		return ColumnText
	case strings.Contains(d, "BLOB"):
		return ColumnBlob
	case strings.Contains(d, "REAL"), strings.Contains(d, "FLOA"), strings.Contains(d, "DOUB"):
		return ColumnReal
	default:
		return ColumnUnknown
	}
}

// Column describes one column of a result set.
type Column struct {
	Name         string
	DeclaredType string
	Type         ColumnType
}

// describeColumns builds column descriptors from the driver's column types.
func describeColumns(types []*sql.ColumnType) []Column {
	cols := make([]Column, len(types))
	for i, ct := range types {
		declared := ct.DatabaseTypeName()
		cols[i] = Column{
			Name:         ct.Name(),
			DeclaredType: declared,
			Type:         ParseColumnType(declared),
		}
	}
	return cols
}
