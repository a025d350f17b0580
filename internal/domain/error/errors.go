package error

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error codes carried by structured Error values. Use cases attach these to
// failure results; the API layer maps them to HTTP status codes.
const (
	CodeUserAlreadyExists = "user_already_exists"
	CodeUserNotFound      = "user_not_found"
	CodeValidation        = "validation_error"
	CodeInternal          = "internal_error"
)

// Base error types for the persistence layer. Repositories return these;
// use cases translate them into structured Error values where the failure
// is an expected business outcome.
var (
	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when trying to create a user whose email is already registered
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidEmail is returned when the email address fails validation
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidName is returned when the user name is empty or too long
	ErrInvalidName = errors.New("invalid user name")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrUnitOfWorkState is returned when a unit of work is used outside
	// its scope or asked to commit more than once
	ErrUnitOfWorkState = errors.New("unit of work state violation")
)

// Error is a structured error value carried inside failure results.
// It identifies the failure kind (Code), a human-readable message, and an
// optional machine-readable reason payload. ID correlates API responses
// with log lines.
type Error struct {
	ID        string
	Code      string
	Message   string
	Reason    any
	Retryable bool
}

// New creates a structured error with a fresh correlation ID.
func New(code, message string) *Error {
	return &Error{
		ID:      uuid.NewString(),
		Code:    code,
		Message: message,
	}
}

// WithReason attaches a machine-readable reason payload.
func (e *Error) WithReason(reason any) *Error {
	e.Reason = reason
	return e
}

// WithRetryable marks the error as safe to retry.
func (e *Error) WithRetryable() *Error {
	e.Retryable = true
	return e
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (id=%s)", e.Code, e.Message, e.ID)
}

// LogFields returns a map of fields for structured logging
func (e *Error) LogFields() map[string]any {
	fields := map[string]any{
		"error_id":   e.ID,
		"error_code": e.Code,
		"message":    e.Message,
	}
	if e.Reason != nil {
		fields["reason"] = e.Reason
	}
	return fields
}

// Public returns the externally visible shape of the error. The reason
// payload stays internal.
func (e *Error) Public() map[string]any {
	return map[string]any{
		"error_code": e.Code,
		"message":    e.Message,
		"error_id":   e.ID,
	}
}

// UnitOfWorkStateError signals a contract violation on a unit of work:
// committing twice, or touching the scope after it has exited. These are
// caller bugs, not runtime conditions to recover from.
type UnitOfWorkStateError struct {
	Op     string
	Reason string
}

// Error implements the error interface
func (e *UnitOfWorkStateError) Error() string {
	return fmt.Sprintf("unit of work %s: %s", e.Op, e.Reason)
}

// Is checks if the target error is an ErrUnitOfWorkState
func (e *UnitOfWorkStateError) Is(target error) bool {
	return target == ErrUnitOfWorkState
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsDuplicateUserError checks if the error indicates an already registered user
func IsDuplicateUserError(err error) bool {
	return errors.Is(err, ErrDuplicateUser)
}

// IsUnitOfWorkStateError checks if the error is a unit of work contract violation
func IsUnitOfWorkStateError(err error) bool {
	return errors.Is(err, ErrUnitOfWorkState)
}
