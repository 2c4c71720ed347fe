// Package apierror carries the typed error returned by every SDK call. It lives
// in its own package so the request plumbing can construct it without importing
// the root SDK package.
package apierror

import (
	"fmt"
	"net/http"
)

// Kind classifies an API failure into the buckets callers branch on.
type Kind string

const (
	NetworkUnreachable Kind = "network_unreachable"
	Unauthorized       Kind = "unauthorized"
	Forbidden          Kind = "forbidden"
	NotFound           Kind = "not_found"
	ValidationFailed   Kind = "validation_failed"
	Internal           Kind = "internal"
)

type Error struct {
	Kind       Kind
	StatusCode int
	// Message is the server-provided reason when one was present in the
	// response body, otherwise a generic description.
	Message string
	// RawBody holds the undecoded response body for debugging.
	RawBody []byte

	cause error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Kind, e.Message)
	}
	return fmt.Sprintf("api error (%s): %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewTransport wraps a transport-level failure (dial, TLS, timeout) that never
// produced an HTTP response.
func NewTransport(err error) *Error {
	return &Error{
		Kind:    NetworkUnreachable,
		Message: err.Error(),
		cause:   err,
	}
}

// NewFromStatus maps an HTTP status to its Kind. The message should be the
// server-provided reason when the body carried one.
func NewFromStatus(status int, message string, rawBody []byte) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{
		Kind:       kindForStatus(status),
		StatusCode: status,
		Message:    message,
		RawBody:    rawBody,
	}
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ValidationFailed
	case http.StatusUnauthorized:
		return Unauthorized
	case http.StatusForbidden:
		return Forbidden
	case http.StatusNotFound:
		return NotFound
	default:
		return Internal
	}
}
