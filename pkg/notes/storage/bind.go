package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// Bind converts loosely-typed parameters into statement arguments.
//
// Binding rules:
//   - nil binds SQL NULL
//   - strings bind as text
//   - every number, integral or not, binds as a float64; integers beyond
//     2^53 lose precision
//   - booleans, arrays, objects and any other shape bind as their JSON text
//
// Bind never checks a parameter against the destination column; mismatches
// surface when the statement executes.
func Bind(params []any) ([]any, error) {
	args := make([]any, len(params))
	for i, p := range params {
		arg, err := bindParam(p)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i+1, err)
		}
		args[i] = arg
	}
	return args, nil
}

func bindParam(p any) (any, error) {
	switch x := p.(type) {
	case nil:
		return nil, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", x.String(), err)
		}
		return f, nil
	}

	rv := reflect.ValueOf(p)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode %T as JSON: %w", p, err)
	}
	return string(data), nil
}

// ParseParams decodes a JSON array into the generic parameter shapes Bind
// accepts. Numbers are kept as json.Number until bound. Empty input yields no
// parameters.
func ParseParams(data []byte) ([]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var params []any
	if err := dec.Decode(&params); err != nil {
		return nil, fmt.Errorf("parameters must be a JSON array: %w", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("parameters must be a single JSON array")
	}
	return params, nil
}
