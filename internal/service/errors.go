package service

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrDelegateNotFound is returned by DelegateByID when the API answers with an
// empty record instead of a delegate
var ErrDelegateNotFound = errors.New("delegate not found")

// APIError is returned when the RIMUN API answers with a non-2xx status.
// Body holds the response text, or "" if it could not be read.
type APIError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API %s failed: %d %s", e.Path, e.StatusCode, e.Body)
}

// DecodeError is returned when a 2xx response body is not valid JSON for the
// expected shape
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse %s response: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the requested record does not exist,
// either as an HTTP 404 or as an empty delegate record
func IsNotFound(err error) bool {
	if errors.Is(err, ErrDelegateNotFound) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
