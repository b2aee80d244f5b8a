package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound matches 404 responses and absent records.
var ErrNotFound = errors.New("not found")

// TransportError means the request could not be sent or no response arrived.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPError surfaces non-2xx responses with the raw body text.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		body = http.StatusText(e.Status)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, body)
}

//nolint:errorlint
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// ParseError means a read response body did not have the expected shape.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: unexpected response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err denotes a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
