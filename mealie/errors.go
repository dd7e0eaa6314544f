package mealie

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a backend failure so callers can react without
// matching on status codes or message text.
type ErrorKind string

const (
	KindAuth       ErrorKind = "authentication"
	KindNotFound   ErrorKind = "not_found"
	KindValidation ErrorKind = "validation"
	KindTransport  ErrorKind = "transport"
	KindBackend    ErrorKind = "backend"
)

// APIError is the error type returned for every failed backend call.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Op         string // method and path, e.g. "GET /api/recipes"
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("mealie: %s: %s (status %d): %s", e.Op, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("mealie: %s: %s: %s", e.Op, e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// KindOf returns the error kind carried by err, or "" if err is not an APIError.
func KindOf(err error) ErrorKind {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func IsAuth(err error) bool       { return KindOf(err) == KindAuth }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsTransport(err error) bool  { return KindOf(err) == KindTransport }

func kindForStatus(code int) ErrorKind {
	switch code {
	case 401, 403:
		return KindAuth
	case 404:
		return KindNotFound
	case 400, 409, 422:
		return KindValidation
	default:
		return KindBackend
	}
}

// statusError builds an APIError from a non-2xx response, pulling the backend's
// "detail" message out of the body when it has one.
func statusError(op string, code int, body []byte) *APIError {
	msg := strings.TrimSpace(string(body))
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != nil {
		switch d := payload.Detail.(type) {
		case string:
			msg = d
		default:
			if data, err := json.Marshal(d); err == nil {
				msg = string(data)
			}
		}
	}
	const maxMsg = 512
	if len(msg) > maxMsg {
		msg = msg[:maxMsg]
	}
	return &APIError{
		Kind:       kindForStatus(code),
		StatusCode: code,
		Op:         op,
		Message:    msg,
	}
}
