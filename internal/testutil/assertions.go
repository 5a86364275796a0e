package testutil

import (
	"errors"
	"testing"

	apperrors "jbucks/internal/errors"
)

// AssertNoError fails the test immediately if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertAppError checks that err is an *AppError carrying the given code.
func AssertAppError(t *testing.T, err error, code string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T (%v)", err, err)
	}
	if appErr.Code != code {
		t.Errorf("expected error code %q, got %q: %s", code, appErr.Code, appErr.Message)
	}
}
