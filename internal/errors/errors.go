// Package errors defines stable error codes for all failure modes.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for analysis failures
type ErrorCode string

const (
	// RootNotFound indicates the analysis root path does not exist
	RootNotFound ErrorCode = "ROOT_NOT_FOUND"
	// ScanError indicates a stat/read failure on a single file
	ScanError ErrorCode = "SCAN_ERROR"
	// ParseError indicates a grammar failure or error-node threshold exceeded
	ParseError ErrorCode = "PARSE_ERROR"
	// HistoryUnavailable indicates no version-control backend or a failed git query
	HistoryUnavailable ErrorCode = "HISTORY_UNAVAILABLE"
	// ConfigReadError indicates a missing or malformed project manifest
	ConfigReadError ErrorCode = "CONFIG_READ_ERROR"
	// CacheError indicates a summary cache read/write failure
	CacheError ErrorCode = "CACHE_ERROR"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// LensError represents a repolens error with code and message
type LensError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new LensError
func New(code ErrorCode, message string, cause error) *LensError {
	return &LensError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *LensError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *LensError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *LensError) WithDetails(details interface{}) *LensError {
	e.Details = details
	return e
}

// CodeOf returns the error code carried by err, or InternalError for
// errors that did not originate from this package.
func CodeOf(err error) ErrorCode {
	if le, ok := err.(*LensError); ok {
		return le.Code
	}
	return InternalError
}
