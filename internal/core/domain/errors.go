// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the sync pipeline
var (
	// ErrHTTP matches any HTTPError
	ErrHTTP = errors.New("http error")

	// ErrParse matches any ParseError
	ErrParse = errors.New("parse error")

	// ErrInvalidValue matches any ValueError
	ErrInvalidValue = errors.New("invalid value")
)

// HTTPError represents a non-2xx response or a transport failure on any
// marketplace or vendor call.
type HTTPError struct {
	Op         string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Op, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTP
}

// ParseError represents an unreadable archive, spreadsheet or API response
type ParseError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValueError represents inventory text that cannot be converted
type ValueError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface
func (e *ValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

// Unwrap implements errors.Unwrap
func (e *ValueError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ValueError) Is(target error) bool {
	return target == ErrInvalidValue
}
