// Package errors provides custom error types for the gamelist system.
// These errors enable programmatic error checking (errors.Is / errors.As)
// across the reconciliation pipeline and its collaborators.
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

// Common sentinel errors for the gamelist system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrCatalogUnavailable indicates the catalog service failed or answered non-2xx.
	// It is fatal to a run.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrSpreadsheetReadFailed indicates the spreadsheet snapshot could not be read
	ErrSpreadsheetReadFailed = errors.New("spreadsheet read failed")

	// ErrSpreadsheetWriteFailed indicates a batch write-back failed
	ErrSpreadsheetWriteFailed = errors.New("spreadsheet write failed")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
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

// CatalogError represents a failed call to the game catalog service.
// Every CatalogError is a CatalogUnavailable condition.
type CatalogError struct {
	Operation  string // "lookup_title", "lookup_id"
	Query      string // title or id that was looked up
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *CatalogError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog %s %q failed (status %d): %s", e.Operation, e.Query, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("catalog %s %q failed: %s", e.Operation, e.Query, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *CatalogError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *CatalogError) Is(target error) bool {
	return target == ErrCatalogUnavailable
}

// NewCatalogError creates a new CatalogError
func NewCatalogError(operation, query string, statusCode int, message string) *CatalogError {
	return &CatalogError{
		Operation:  operation,
		Query:      query,
		StatusCode: statusCode,
		Message:    message,
	}
}

// SpreadsheetError represents a failed read or write against the spreadsheet.
type SpreadsheetError struct {
	Operation string // "read" or "write"
	Range     string
	Err       error
}

// Error implements the error interface
func (e *SpreadsheetError) Error() string {
	if e.Range != "" {
		return fmt.Sprintf("spreadsheet %s of %s failed: %v", e.Operation, e.Range, e.Err)
	}
	return fmt.Sprintf("spreadsheet %s failed: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SpreadsheetError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SpreadsheetError) Is(target error) bool {
	switch e.Operation {
	case "read":
		return target == ErrSpreadsheetReadFailed
	case "write":
		return target == ErrSpreadsheetWriteFailed
	}
	return false
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
	Format  string // "json", "csv", "a1", etc.
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s %s: %s", e.Format, e.File, e.Message)
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

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "commit", "download"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCatalogUnavailable checks if an error came from the catalog service
func IsCatalogUnavailable(err error) bool {
	return errors.Is(err, ErrCatalogUnavailable)
}

// IsSpreadsheetWriteFailed checks if an error is a failed write-back
func IsSpreadsheetWriteFailed(err error) bool {
	return errors.Is(err, ErrSpreadsheetWriteFailed)
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapCatalog wraps a transport failure as a CatalogError
func WrapCatalog(operation, query string, err error) error {
	if err == nil {
		return nil
	}
	return &CatalogError{
		Operation: operation,
		Query:     query,
		Message:   err.Error(),
		Err:       err,
	}
}

// WrapSpreadsheet wraps a transport failure as a SpreadsheetError
func WrapSpreadsheet(operation, rng string, err error) error {
	if err == nil {
		return nil
	}
	return &SpreadsheetError{Operation: operation, Range: rng, Err: err}
}
