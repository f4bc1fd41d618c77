package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable matches any transport-level failure: refused connection,
	// DNS failure, timeout.
	ErrUnreachable = errors.New("backend unreachable")

	// ErrInvalidResponse is returned when a body cannot be decoded or fails
	// validation.
	ErrInvalidResponse = errors.New("invalid response from backend")
)

// UnreachableError reports that no HTTP response was received
type UnreachableError struct {
	BaseURL string
	Err     error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("Cannot connect to backend API at %s. Check if backend is running and accessible.", e.BaseURL)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

func (e *UnreachableError) Is(target error) bool { return target == ErrUnreachable }

func (e *UnreachableError) Hint() string {
	return "start the backend or point habitdash at it with --api-url or HABITDASH_API_URL"
}

// HTTPError is a non-2xx response
type HTTPError struct {
	StatusCode int
	StatusText string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Backend API error (%d): %s", e.StatusCode, e.StatusText)
}

// IsNotFound reports whether err is a 404 from the backend
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == 404
}
