package storage

import (
	"bytes"
	"encoding/json"

	"notesponge-hq/mdsync/pkg/notes/value"
)

// Field is one named value of a Record.
type Field struct {
	Name  string
	Value value.Value
}

// Record is an ordered mapping from column name to Value.
//
// Columns keep the position of their first occurrence. When a result set
// repeats a column name, the later value replaces the earlier one in place.
type Record struct {
	names  []string
	values map[string]value.Value
}

// NewRecord builds a Record from fields in order, applying last-write-wins
// to duplicate names.
func NewRecord(fields ...Field) Record {
	r := Record{
		names:  make([]string, 0, len(fields)),
		values: make(map[string]value.Value, len(fields)),
	}
	for _, f := range fields {
		r.set(f.Name, f.Value)
	}
	return r
}

func (r *Record) set(name string, v value.Value) {
	if _, exists := r.values[name]; !exists {
		r.names = append(r.names, name)
	}
	r.values[name] = v
}

// Get returns the value of the named column. Absent columns report false.
func (r Record) Get(name string) (value.Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Columns returns the column names in order.
func (r Record) Columns() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of distinct columns.
func (r Record) Len() int {
	return len(r.names)
}

// Fields returns the record's fields in column order.
func (r Record) Fields() []Field {
	fields := make([]Field, len(r.names))
	for i, name := range r.names {
		fields[i] = Field{Name: name, Value: r.values[name]}
	}
	return fields
}

// MarshalJSON encodes the record as a JSON object with keys in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
