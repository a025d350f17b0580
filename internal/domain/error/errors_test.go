package error

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	// Test to ensure all base error types are defined properly
	if ErrUserNotFound.Error() != "user not found" {
		t.Errorf("ErrUserNotFound has unexpected message: %s", ErrUserNotFound.Error())
	}
	if ErrDuplicateUser.Error() != "user already exists" {
		t.Errorf("ErrDuplicateUser has unexpected message: %s", ErrDuplicateUser.Error())
	}
	if ErrUnitOfWorkState.Error() != "unit of work state violation" {
		t.Errorf("ErrUnitOfWorkState has unexpected message: %s", ErrUnitOfWorkState.Error())
	}
}

func TestStructuredError(t *testing.T) {
	err := New(CodeUserNotFound, "User abc not found")

	if err.ID == "" {
		t.Error("expected a generated correlation ID")
	}
	if err.Code != CodeUserNotFound {
		t.Errorf("unexpected code: %s", err.Code)
	}
	if !strings.Contains(err.Error(), CodeUserNotFound) {
		t.Errorf("Error() should contain the code: %s", err.Error())
	}
	if !strings.Contains(err.Error(), err.ID) {
		t.Errorf("Error() should contain the correlation ID: %s", err.Error())
	}

	other := New(CodeUserNotFound, "User abc not found")
	if other.ID == err.ID {
		t.Error("each error should get its own correlation ID")
	}
}

func TestErrorReason(t *testing.T) {
	err := New(CodeValidation, "invalid input").WithReason("email is malformed")

	if err.Reason != "email is malformed" {
		t.Errorf("unexpected reason: %v", err.Reason)
	}

	// The reason stays out of the public shape
	public := err.Public()
	if _, ok := public["reason"]; ok {
		t.Error("Public() must not expose the reason payload")
	}
	if public["error_code"] != CodeValidation {
		t.Errorf("unexpected public error_code: %v", public["error_code"])
	}

	// But shows up in log fields
	fields := err.LogFields()
	if fields["reason"] != "email is malformed" {
		t.Errorf("LogFields() should carry the reason: %v", fields["reason"])
	}
}

func TestUnitOfWorkStateError(t *testing.T) {
	err := &UnitOfWorkStateError{Op: "commit", Reason: "transaction already finalized"}

	if !errors.Is(err, ErrUnitOfWorkState) {
		t.Error("UnitOfWorkStateError should match ErrUnitOfWorkState")
	}
	if !IsUnitOfWorkStateError(err) {
		t.Error("IsUnitOfWorkStateError should report true")
	}
	if !IsUnitOfWorkStateError(fmt.Errorf("wrapped: %w", err)) {
		t.Error("wrapped state errors should still match")
	}
	if !strings.Contains(err.Error(), "commit") {
		t.Errorf("Error() should name the operation: %s", err.Error())
	}
}

func TestErrorHelpers(t *testing.T) {
	if !IsNotFoundError(ErrUserNotFound) {
		t.Error("IsNotFoundError should match ErrUserNotFound")
	}
	if !IsNotFoundError(fmt.Errorf("lookup failed: %w", ErrUserNotFound)) {
		t.Error("IsNotFoundError should match wrapped errors")
	}
	if IsNotFoundError(ErrDuplicateUser) {
		t.Error("IsNotFoundError should not match other errors")
	}
	if !IsDuplicateUserError(ErrDuplicateUser) {
		t.Error("IsDuplicateUserError should match ErrDuplicateUser")
	}
}
