// Package domain defines domain-specific errors.
// These errors represent rendering and decoding failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that renderers, services and adapters can return.
var (
	// ErrSurfaceUnavailable is returned when no drawing surface can be obtained from a canvas.
	// Renderers absorb it and skip the paint.
	ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

	// ErrEmptyInput is returned when a frame or a decoded buffer holds no samples.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidDimensions is returned when a canvas size cannot hold a single bar.
	ErrInvalidDimensions = errors.New("invalid canvas dimensions")

	// ErrUnsupportedFormat is returned when an audio container format is not recognized.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrNotInitialized is returned when an operation is attempted on an uninitialized component.
	ErrNotInitialized = errors.New("component not initialized")

	// ErrAlreadyRunning is returned when a component is started twice.
	ErrAlreadyRunning = errors.New("component already running")

	// ErrClosed is returned when a component is used after shutdown.
	ErrClosed = errors.New("component closed")
)

// DecodeError represents a failure to turn a recording into samples.
type DecodeError struct {
	Op      string // Operation that failed (e.g., "identify", "decode")
	Format  string // Container format (if known)
	Message string // Error message
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("decoder %s failed for %s: %s", e.Op, e.Format, e.Message)
	}
	return fmt.Sprintf("decoder %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(op, format, message string, err error) *DecodeError {
	return &DecodeError{
		Op:      op,
		Format:  format,
		Message: message,
		Err:     err,
	}
}

// RepositoryError represents an error from a repository.
type RepositoryError struct {
	Op      string // Operation that failed (e.g., "save", "load")
	Type    string // Repository type (e.g., "style")
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s.%s failed: %s", e.Type, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new RepositoryError.
func NewRepositoryError(op, repoType, message string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Type:    repoType,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   any    // Value that failed validation
	Message string // Error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ServiceError represents an error from a service layer operation.
type ServiceError struct {
	Service string // Service name (e.g., "WaveformService")
	Op      string // Operation that failed
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("service %s.%s failed: %s", e.Service, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op, message string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Message: message,
		Err:     err,
	}
}
