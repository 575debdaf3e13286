package rest

import (
	"errors"
	"fmt"
)

// NetworkError indicates a transport-level failure: the request never produced
// an HTTP response (connection refused, DNS failure, context cancellation).
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError indicates a non-2xx response that carried no structured detail.
type ServerError struct {
	StatusCode int
	URL        string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error calling %s: status %d", e.URL, e.StatusCode)
}

// ValidationError indicates a non-2xx response carrying a JSON "detail" field,
// typically a 4xx from malformed input. Detail is the backend's human-readable
// message and is safe to surface to the operator.
type ValidationError struct {
	StatusCode int
	Detail     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request rejected (status %d): %s", e.StatusCode, e.Detail)
}

// Message returns the human-readable text to surface for an API error: the
// backend's detail when present, a generic description otherwise.
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Detail
	}
	var se *ServerError
	if errors.As(err, &se) {
		return fmt.Sprintf("the clinic API returned status %d", se.StatusCode)
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return "the clinic API could not be reached"
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
