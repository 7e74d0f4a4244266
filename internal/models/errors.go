package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key violation")
	ErrInvalidID    = errors.New("invalid ID format")
)

// ValidationError describes a record that failed validation
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError creates a validation error with a stable code
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// DataError indicates a dataset that cannot be trained on
// (too few samples, degenerate labels)
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error: %s", e.Reason)
}

// NewDataError creates a DataError
func NewDataError(format string, args ...interface{}) *DataError {
	return &DataError{Reason: fmt.Sprintf(format, args...)}
}

// SchemaError indicates a feature vector that does not match the
// schema a model was trained against
type SchemaError struct {
	Expected []string
	Got      []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema mismatch: expected %v, got %v", e.Expected, e.Got)
}

// IsDataError reports whether err is a DataError
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}

// IsSchemaError reports whether err is a SchemaError
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
