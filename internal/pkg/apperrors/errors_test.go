package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "With Code",
			appError: &AppError{
				Code:    "TEST_CODE",
				Message: "This is a test error",
			},
			expected: "[TEST_CODE] This is a test error",
		},
		{
			name: "Without Code",
			appError: &AppError{
				Message: "This is a test error without code",
			},
			expected: "This is a test error without code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestValidationErrorError(t *testing.T) {
	withField := &ValidationError{Field: "numGuests", Message: "must be at least 1"}
	if got := withField.Error(); got != "validation failed for field 'numGuests': must be at least 1" {
		t.Errorf("unexpected message: %q", got)
	}

	withoutField := &ValidationError{Message: "bad input"}
	if got := withoutField.Error(); got != "validation failed: bad input" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestNewValidationErrorWrapsSentinel(t *testing.T) {
	err := NewValidationError("startAt", "must be a valid date")
	if !errors.Is(err, ErrValidation) {
		t.Error("expected error to wrap ErrValidation")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("expected error to unwrap to *ValidationError")
	}
	if ve.Field != "startAt" {
		t.Errorf("expected field 'startAt', got %q", ve.Field)
	}
}

func TestCustomerNotFoundError(t *testing.T) {
	err := NewCustomerNotFound(9999999)
	if err.Error() != "No such customer: 9999999" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected error to wrap ErrNotFound")
	}

	var nf *CustomerNotFoundError
	if !errors.As(err, &nf) {
		t.Fatal("expected error to unwrap to *CustomerNotFoundError")
	}
	if nf.CustomerID != 9999999 {
		t.Errorf("expected customer id 9999999, got %d", nf.CustomerID)
	}
}

func TestWrapDatabaseError(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapDatabaseError(cause, "failed to query customers")

	if !errors.Is(err, ErrDatabase) {
		t.Error("expected error to wrap ErrDatabase")
	}
	if !errors.Is(err, cause) {
		t.Error("expected error to wrap the original cause")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, 200},
		{"validation", NewValidationError("numGuests", "must be at least 1"), 400},
		{"invalid argument", fmt.Errorf("%w: bad id", ErrInvalidArgument), 400},
		{"not found", NewCustomerNotFound(42), 404},
		{"route not found", ErrRouteNotFound, 404},
		{"database", WrapDatabaseError(errors.New("boom"), "query failed"), 500},
		{"unknown", errors.New("something else"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}
