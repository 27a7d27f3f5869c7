package value

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
)

// Kind is the tag of a Value.
type Kind uint8

const (
	// KindNull is SQL NULL, and the fallback for unknown declared types.
	KindNull Kind = iota
	// KindInteger is a 64-bit signed integer.
	KindInteger
	// KindReal is a finite 64-bit float.
	KindReal
	// KindText is a UTF-8 string.
	KindText
	// KindBlob is a raw byte sequence.
	KindBlob
)

// String returns the SQLite storage class name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindInteger:
		return "INTEGER"
	case KindReal:
		return "REAL"
	case KindText:
		return "TEXT"
	case KindBlob:
		return "BLOB"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is one database cell. The zero Value is Null.
//
// Values are immutable: constructors and accessors copy byte slices so no
// caller can mutate a Value after construction.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    []byte
}

// Null returns the Null value.
func Null() Value {
	return Value{}
}

// Integer returns an Integer value.
func Integer(i int64) Value {
	return Value{kind: KindInteger, i: i}
}

// Real returns a Real value. NaN and ±Inf have no portable representation
// and collapse to Null.
func Real(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: KindReal, f: f}
}

// Text returns a Text value.
func Text(s string) Value {
	return Value{kind: KindText, s: s}
}

// Blob returns a Blob value holding a copy of b. A nil slice yields an empty
// blob, not Null.
func Blob(b []byte) Value {
	return Value{kind: KindBlob, b: append([]byte{}, b...)}
}

// Kind returns the tag of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is Null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsInt64 returns the integer held by an Integer value.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.i, true
}

// AsFloat64 returns the float held by a Real value.
func (v Value) AsFloat64() (float64, bool) {
	if v.kind != KindReal {
		return 0, false
	}
	return v.f, true
}

// AsString returns the string held by a Text value. Blobs are not strings.
func (v Value) AsString() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.s, true
}

// AsBytes returns a copy of the bytes held by a Blob value.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindBlob {
		return nil, false
	}
	return append([]byte{}, v.b...), true
}

// Equal reports whether v and o have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.i == o.i
	case KindReal:
		return v.f == o.f
	case KindText:
		return v.s == o.s
	case KindBlob:
		return bytes.Equal(v.b, o.b)
	default:
		return true
	}
}

// String formats v for logs and diagnostics. Blobs print their length only.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return strconv.Quote(v.s)
	case KindBlob:
		return fmt.Sprintf("<blob %d bytes>", len(v.b))
	default:
		return "NULL"
	}
}

// EncodeBase64 encodes raw bytes with standard padded base64, the encoding
// blobs use at text-only boundaries.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBase64 decodes standard padded base64.
func DecodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
