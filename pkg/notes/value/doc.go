// Package value defines the portable representation of a single database
// cell.
//
// A Value is a closed tagged union over the five SQLite storage classes:
// Null, Integer, Real, Text, and Blob. The tag of a Value read from the
// database comes from the column's declared type, never from its content.
//
// # Accessors
//
// Every accessor is total. Asking a Text value for an integer returns
// (0, false); nothing panics and nothing errors:
//
//	v := value.Text("hello")
//	if n, ok := v.AsInt64(); ok {
//	    ...
//	}
//
// # Boundaries
//
// Blobs carry raw bytes. Only when a blob crosses a text-only boundary, such
// as JSON, is it encoded as standard padded base64. Reals that are NaN or
// infinite cannot be represented in JSON and become Null at construction.
package value
