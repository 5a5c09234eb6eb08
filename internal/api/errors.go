package api

import (
	"errors"
	"fmt"
)

var (
	// ErrRetryExhausted indicates every attempt of a call failed. It wraps the
	// error of the final attempt.
	ErrRetryExhausted = errors.New("api retry attempts exhausted")

	// ErrUnavailable indicates the server could not be reached at all.
	ErrUnavailable = errors.New("api server unavailable")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: HTTP error! status: %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP error! status: %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsClientError reports whether the failure was a 4xx response.
func (e *StatusError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// StatusCode extracts the HTTP status from err, or 0 when err did not come
// from a non-2xx response.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
