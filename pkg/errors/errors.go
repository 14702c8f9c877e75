// Package errors provides the error types used across the fieldsync
// pipeline. The taxonomy mirrors how the pipeline degrades: a malformed
// input file is fatal, a remote fetch or address lookup failure degrades to
// "no data", and a persistence failure loses one output without touching
// the others.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors.
var (
	// ErrNoAPIKey indicates a lookup was requested without a configured key.
	ErrNoAPIKey = errors.New("API key not configured")

	// ErrNoData indicates an input source produced no usable records.
	ErrNoData = errors.New("no data")

	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrUnavailable indicates a remote endpoint is temporarily unavailable.
	ErrUnavailable = errors.New("endpoint unavailable")
)

// ParseError represents unreadable or malformed input. For the placemark
// source file this is fatal to the whole run; for a remote response body it
// degrades that resource's remote set to empty.
type ParseError struct {
	Format  string // "csv", "json"
	File    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// APIError represents a failed request against the remote datastore.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Endpoint, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *APIError) Is(target error) bool {
	return e.StatusCode >= 500 && target == ErrUnavailable
}

// LookupError represents a failed geocoding lookup. It only ever skips the
// fill-if-empty policy for a single record.
type LookupError struct {
	Lat     float64
	Lng     float64
	Status  string // geocoder status, when the API answered
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("address lookup failed for (%v, %v): status %s", e.Lat, e.Lng, e.Status)
	}
	return fmt.Sprintf("address lookup failed for (%v, %v): %s", e.Lat, e.Lng, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *LookupError) Unwrap() error {
	return e.Err
}

// PersistenceError represents a failed snapshot or operation log write.
// Emission is all-or-nothing; a PersistenceError means the target file was
// not produced, not that it was half-written.
type PersistenceError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid or incomplete configuration.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Helper wrapping functions for common patterns.

// WrapParse wraps an error as a ParseError.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// WrapPersistence wraps an error as a PersistenceError.
func WrapPersistence(path string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Path: path, Err: err}
}

// IsNoAPIKey checks whether an error means the lookup key is absent.
func IsNoAPIKey(err error) bool {
	return errors.Is(err, ErrNoAPIKey)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
