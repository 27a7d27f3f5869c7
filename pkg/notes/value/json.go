package value

import (
	"encoding/json"
	"strconv"
)

// MarshalJSON implements json.Marshaler.
//
// Null encodes as null, Integer and Real as numbers, Text as a string, and
// Blob as a standard padded base64 string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInteger:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindReal:
		return json.Marshal(v.f)
	case KindText:
		return json.Marshal(v.s)
	case KindBlob:
		return json.Marshal(EncodeBase64(v.b))
	default:
		return []byte("null"), nil
	}
}
