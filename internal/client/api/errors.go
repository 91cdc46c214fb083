package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUnavailable       = errors.New("server unavailable")
	ErrNotFound          = errors.New("not found")
	ErrUnrecognizedShape = errors.New("unrecognized response shape")
)

// APIError is a non-2xx response.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Detail)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Detail returns the server-supplied message carried by err, if any.
func Detail(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}

// parseDetail extracts the human message from an error body. FastAPI sends
// detail as a string, a list of strings, or a list of {"msg": ...} objects.
func parseDetail(body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	if len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		var items []json.RawMessage
		if err := json.Unmarshal(payload.Detail, &items); err == nil {
			parts := make([]string, 0, len(items))
			for _, it := range items {
				var str string
				if err := json.Unmarshal(it, &str); err == nil {
					parts = append(parts, str)
					continue
				}
				var obj struct {
					Msg string `json:"msg"`
				}
				if err := json.Unmarshal(it, &obj); err == nil && obj.Msg != "" {
					parts = append(parts, obj.Msg)
				}
			}
			return strings.Join(parts, "; ")
		}
	}

	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
