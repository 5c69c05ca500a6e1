package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// TransportError is a non-retryable HTTP failure or an exhausted retry budget.
type TransportError struct {
	Status int
	Method string
	Path   string

	// Payload is the parsed JSON error body; nil when the body was not JSON.
	Payload map[string]any
	// Raw is the response body as text.
	Raw string

	// Code and Message come from the {"error": {...}} envelope when present.
	Code    int
	Message string
}

func newTransportError(status int, method, path string, body []byte) *TransportError {
	e := &TransportError{Status: status, Method: method, Path: path, Raw: string(bytes.TrimSpace(body))}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Payload = payload
		var env struct {
			Error struct {
				Message string `json:"message"`
				Code    int    `json:"code"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &env) == nil {
			e.Code = env.Error.Code
			e.Message = env.Error.Message
		}
	}
	return e
}

func (e *TransportError) Error() string {
	detail := e.Raw
	if detail == "" {
		detail = "empty response"
	}
	return fmt.Sprintf("HTTP %d %s %s: %s", e.Status, e.Method, e.Path, detail)
}

// RemainingCooldown reads error.data.cooldown.remainingSeconds when the
// server reports a structured cooldown.
func (e *TransportError) RemainingCooldown() (int, bool) {
	if e.Payload == nil {
		return 0, false
	}
	var env struct {
		Error struct {
			Data struct {
				Cooldown *struct {
					RemainingSeconds int `json:"remainingSeconds"`
				} `json:"cooldown"`
			} `json:"data"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Raw), &env); err != nil || env.Error.Data.Cooldown == nil {
		return 0, false
	}
	return env.Error.Data.Cooldown.RemainingSeconds, true
}

// DecodeError means the server accepted the request with a 2xx status but the
// body did not fit the expected result. Any side effect of the request happened.
type DecodeError struct {
	Method string
	Path   string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err came from decoding a successful response.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// ValidationError is a local precondition failure raised before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

var courseHints = []string{`"course"`, `'course'`, "course.destination"}

// IsCourseShapeError reports whether err is a client-side rejection of the
// navigate body that names the course/destination field. The API does not
// expose a dedicated error code for this, so the body text is matched.
func IsCourseShapeError(err error) bool {
	var te *TransportError
	if !errors.As(err, &te) {
		return false
	}
	if te.Status < 400 || te.Status >= 500 {
		return false
	}
	for _, h := range courseHints {
		if strings.Contains(te.Raw, h) {
			return true
		}
	}
	return false
}
