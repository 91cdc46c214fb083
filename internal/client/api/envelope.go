package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

func isNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func objectFields(raw []byte) (map[string]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	return m, true
}

// unwrap strips a {"data": ...} envelope when present.
func unwrap(raw []byte) []byte {
	if m, ok := objectFields(raw); ok {
		if data, ok := m["data"]; ok && !isNull(data) {
			return data
		}
	}
	return raw
}

// decodeOne decodes a single object. The value may be bare, inside "data",
// or under one of keys (for example {"user": {...}}). {"data": null} and
// non-object values are rejected.
func decodeOne[T any](raw []byte, keys ...string) (T, error) {
	var zero T

	if m, ok := objectFields(raw); ok {
		if data, ok := m["data"]; ok && isNull(data) {
			return zero, fmt.Errorf("%w: null data", ErrUnrecognizedShape)
		}
	}
	raw = unwrap(raw)
	m, ok := objectFields(raw)
	if !ok {
		return zero, ErrUnrecognizedShape
	}
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if _, isObj := objectFields(v); isObj {
				raw = v
				break
			}
		}
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}
	return out, nil
}

// decodeList decodes a collection: a bare array, {"data": array}, or the
// list envelope {key: array, "total": n}. A null or empty body is an empty
// list.
func decodeList[T any](raw []byte, key string) ([]T, error) {
	if isNull(raw) {
		return []T{}, nil
	}

	raw = bytes.TrimSpace(unwrap(raw))
	if raw[0] == '{' {
		m, _ := objectFields(raw)
		if data, ok := m["data"]; ok && isNull(data) {
			return []T{}, nil
		}
		items, ok := m[key]
		if !ok {
			return nil, ErrUnrecognizedShape
		}
		if isNull(items) {
			return []T{}, nil
		}
		raw = bytes.TrimSpace(items)
	}
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrUnrecognizedShape
	}

	out := []T{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}
	return out, nil
}
