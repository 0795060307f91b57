package domain

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/gowebpki/jcs"
)

// CanonicalJSON encodes v with RFC 8785 canonicalization so that equal values compare byte-equal
func CanonicalJSON(v any) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jcs.Transform(raw)
}

// CanonicalizeRaw canonicalizes an already encoded JSON value
func CanonicalizeRaw(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	return jcs.Transform(raw)
}

// ValuesEqual compares two encoded values after canonicalization. Empty and null are equal.
func ValuesEqual(a, b json.RawMessage) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	ca, errA := jcs.Transform(a)
	cb, errB := jcs.Transform(b)
	if errA != nil || errB != nil {
		return bytes.Equal(a, b)
	}
	return bytes.Equal(ca, cb)
}

// AnyEqual compares two decoded JSON values by their canonical encoding
func AnyEqual(a, b any) bool {
	ca, errA := CanonicalJSON(a)
	cb, errB := CanonicalJSON(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ca, cb)
}

// AsNumber converts decoded JSON numbers and numeric strings to float64
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// IsNull reports whether an encoded value is empty or JSON null
func IsNull(v json.RawMessage) bool {
	return len(v) == 0 || string(v) == "null"
}

func marshalTagged(payload any, header map[string]any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	for k, v := range header {
		fields[k] = v
	}
	return json.Marshal(fields)
}
