// Package errors provides custom error types for the kolmap system.
// These errors enable programmatic error checking (errors.Is / errors.As)
// for the load pipeline, the table sources and the link sources.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As are re-exported so callers need a single errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the kolmap system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrLoadFailed indicates that a required raw table could not be obtained.
	// The pipeline returns no tables at all when this is reported.
	ErrLoadFailed = errors.New("load failed")

	// ErrSourceUnavailable indicates a remote source could not be reached
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrUnauthorized indicates the credentials were rejected by a remote source
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMalformedResponse indicates a remote source answered with unusable data
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNotConfigured indicates an optional source has no configuration
	ErrNotConfigured = errors.New("not configured")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// LoadError is the single aggregate failure reported when a required raw
// table cannot be obtained. It is distinct from an empty result.
type LoadError struct {
	Table string
	Err   error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("failed to load table %s: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("failed to load tables: %v", e.Err)
}

// Unwrap implements errors.Unwrap
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *LoadError) Is(target error) bool {
	return target == ErrLoadFailed
}

// NewLoadError creates a new LoadError
func NewLoadError(table string, err error) *LoadError {
	return &LoadError{Table: table, Err: err}
}

// SourceKind classifies why a remote source failed.
type SourceKind string

const (
	// SourceKindUnavailable covers network errors and 5xx answers.
	SourceKindUnavailable SourceKind = "unavailable"
	// SourceKindAuth covers rejected or missing credentials.
	SourceKindAuth SourceKind = "auth"
	// SourceKindMalformed covers answers that could not be interpreted.
	SourceKindMalformed SourceKind = "malformed"
	// SourceKindConfig covers sources that are not configured.
	SourceKindConfig SourceKind = "config"
)

// SourceError represents a failure of a table or link source
type SourceError struct {
	Source  string // e.g. "drive", "sheets", "xlsx"
	Kind    SourceKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("%s source %s: %s", e.Source, e.Kind, msg)
}

// Unwrap implements errors.Unwrap
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SourceError) Is(target error) bool {
	switch e.Kind {
	case SourceKindUnavailable:
		return target == ErrSourceUnavailable
	case SourceKindAuth:
		return target == ErrUnauthorized
	case SourceKindMalformed:
		return target == ErrMalformedResponse
	case SourceKindConfig:
		return target == ErrNotConfigured
	}
	return false
}

// NewSourceError creates a new SourceError
func NewSourceError(source string, kind SourceKind, err error) *SourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &SourceError{
		Source:  source,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrNotConfigured
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "xlsx", ...
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsLoadFailure checks if an error is a fatal load failure
func IsLoadFailure(err error) bool {
	return errors.Is(err, ErrLoadFailed)
}

// IsUnauthorized checks if an error is a credential failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsSourceUnavailable checks if an error indicates source unavailability
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapLoad wraps an error as a LoadError
func WrapLoad(table string, err error) error {
	if err == nil {
		return nil
	}
	return NewLoadError(table, err)
}

// WrapSource wraps an error as a SourceError
func WrapSource(source string, kind SourceKind, err error) error {
	if err == nil {
		return nil
	}
	return NewSourceError(source, kind, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
