// Package errors holds the sentinel errors shared across the client and the
// TransportError type, the only failure kind the sync loop ever surfaces.
package errors

import (
	"fmt"
	"net/http"
)

var (
	ErrMissingCredential = fmt.Errorf("missing credential")
	ErrMissingEndpoint   = fmt.Errorf("missing endpoint")
	ErrNoInstances       = fmt.Errorf("no instances available")
	ErrRateLimited       = fmt.Errorf("rate limit exceeded")
	ErrTimeout           = fmt.Errorf("request timed out")
	ErrTransportClosed   = fmt.Errorf("transport closed")
	ErrEmptyResponse     = fmt.Errorf("empty response")
	ErrResponseTooLarge  = fmt.Errorf("response too large")
	ErrAlreadyStarted    = fmt.Errorf("scheduler already started")
)

// TransportError is a failed call. Remote refusals (non-2xx) and local
// failures (dial, timeout, throttling) collapse into this one type; the
// controller only ever shows its Error() text.
type TransportError struct {
	Operation  string
	StatusCode int    // 0 when the request never got an HTTP answer
	Body       string // response body of a non-2xx answer, trimmed
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		status := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
		if e.Body != "" {
			return status + ": " + e.Body
		}
		return status
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "request failed"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewStatusError builds the error for a non-2xx answer.
func NewStatusError(operation string, statusCode int, body string) *TransportError {
	return &TransportError{Operation: operation, StatusCode: statusCode, Body: body}
}

// Wrap turns any local failure into a TransportError for operation.
func Wrap(operation string, err error) *TransportError {
	if te, ok := err.(*TransportError); ok {
		return te
	}
	return &TransportError{Operation: operation, Err: err}
}
