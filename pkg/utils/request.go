package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/milo-garden/mindful-garden/backend/internal/apperr"
)

// MaxBodyBytes caps inbound JSON bodies.
const MaxBodyBytes = 1 << 20

// ErrInvalidBody is returned for bodies that are not a single JSON object.
var ErrInvalidBody = apperr.Validation("invalid request body")

// DecodeObject reads the request body as one JSON object. A literal null
// yields a nil map and no error. Integral numbers are kept as int64, all
// other numbers become float64.
func DecodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, ErrInvalidBody
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrInvalidBody
	}
	if raw == nil {
		return nil, nil
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrInvalidBody
	}
	return normalizeNumbers(obj).(map[string]any), nil
}

// RequireString returns body[key] when it is a non-empty string.
func RequireString(body map[string]any, key string) (string, error) {
	value, ok := body[key].(string)
	if !ok || value == "" {
		return "", apperr.MissingField(key)
	}
	return value, nil
}

func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	default:
		return v
	}
}
