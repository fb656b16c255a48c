package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired matches any *SessionExpiredError via errors.Is.
var ErrSessionExpired = errors.New("Session expired. Please log in again.")

// NetworkError means no HTTP response was obtained.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "Network error. Please check your connection and try again."
}

func (e *NetworkError) Unwrap() error { return e.Err }

// SessionExpiredError is returned for HTTP 401. By the time the caller sees
// it the tokens have already been discarded.
type SessionExpiredError struct {
	Endpoint string
}

func (e *SessionExpiredError) Error() string { return ErrSessionExpired.Error() }

func (e *SessionExpiredError) Is(target error) bool { return target == ErrSessionExpired }

// RequestFailedError is any other non-2xx response.
type RequestFailedError struct {
	StatusCode int
	Message    string
}

func (e *RequestFailedError) Error() string { return e.Message }

// DecodeError means a 2xx response body was not valid JSON for the
// expected envelope.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid response from %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidPayloadError means a success=true envelope carried data that does
// not have the shape the endpoint promises.
type InvalidPayloadError struct {
	Endpoint string
	Err      error
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("unexpected payload from %s: %v", e.Endpoint, e.Err)
}

func (e *InvalidPayloadError) Unwrap() error { return e.Err }
