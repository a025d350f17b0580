// Package result provides the success/failure value returned by every use
// case. Expected business failures travel as Err values instead of error
// returns, so a use case signature distinguishes "the operation ran and was
// declined" from "something broke".
package result

import (
	"fmt"

	apperr "github.com/avesta-dev/backend-template/internal/domain/error"
)

// Result holds either a success value or a structured error, never both.
type Result[T any] struct {
	value T
	err   *apperr.Error
	ok    bool
}

// Ok creates a successful Result wrapping value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Err creates a failure Result wrapping a structured error.
func Err[T any](err *apperr.Error) Result[T] {
	return Result[T]{err: err}
}

// IsOk reports whether the Result carries a success value.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// IsErr reports whether the Result carries an error.
func (r Result[T]) IsErr() bool {
	return !r.ok
}

// Unwrap returns the success value. Calling it on a failure result is a
// caller bug and panics with an UnwrapOnErrError carrying the wrapped error.
// Reserve Unwrap for the outermost boundary (the API layer), after IsErr
// has been checked; calling it mid-pipeline defeats the purpose of the type.
func (r Result[T]) Unwrap() T {
	if !r.ok {
		panic(&UnwrapOnErrError{Err: r.err})
	}
	return r.value
}

// UnwrapErr returns the wrapped error. Calling it on a success result
// panics with an UnwrapOnOkError.
func (r Result[T]) UnwrapErr() *apperr.Error {
	if r.ok {
		panic(&UnwrapOnOkError{Value: r.value})
	}
	return r.err
}

// UnwrapOr returns the success value or def when the Result is a failure.
func (r Result[T]) UnwrapOr(def T) T {
	if r.ok {
		return r.value
	}
	return def
}

// Map applies transform to the success value, passing failures through with
// the identical error value. transform must not encode expected failures as
// panics; use FlatMap to chain fallible steps.
func Map[T, U any](r Result[T], transform func(T) U) Result[U] {
	if !r.ok {
		return Result[U]{err: r.err}
	}
	return Ok(transform(r.value))
}

// FlatMap chains a fallible step: transform runs only on success and its
// Result is returned as-is. Failures pass through unchanged.
func FlatMap[T, U any](r Result[T], transform func(T) Result[U]) Result[U] {
	if !r.ok {
		return Result[U]{err: r.err}
	}
	return transform(r.value)
}

// UnwrapOnErrError is the panic value raised by Unwrap on a failure result.
// It carries the wrapped error for diagnostics.
type UnwrapOnErrError struct {
	Err *apperr.Error
}

func (e *UnwrapOnErrError) Error() string {
	return fmt.Sprintf("called Unwrap on a failure result: %v", e.Err)
}

// UnwrapOnOkError is the panic value raised by UnwrapErr on a success result.
type UnwrapOnOkError struct {
	Value any
}

func (e *UnwrapOnOkError) Error() string {
	return fmt.Sprintf("called UnwrapErr on a success result carrying %v", e.Value)
}
