package store

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/arnavk09/dream-serve/apperror"
)

func kindOf(t *testing.T, err error) *apperror.Error {
	t.Helper()
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error %v is not a normalized error", err)
	}
	return appErr
}

func TestStoreErrorMapsConstraintViolation(t *testing.T) {
	// Class 23 = integrity constraint violation.
	err := storeError(&pgconn.PgError{Code: "23502", Message: "null value in column \"name\""})

	appErr := kindOf(t, err)
	if appErr.Kind != apperror.ValidationFailed {
		t.Fatalf("kind = %s, want ValidationFailed", appErr.Kind)
	}
	if appErr.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", appErr.Status)
	}
}

func TestStoreErrorMapsInvalidData(t *testing.T) {
	appErr := kindOf(t, storeError(gorm.ErrInvalidData))
	if appErr.Kind != apperror.ValidationFailed {
		t.Fatalf("kind = %s, want ValidationFailed", appErr.Kind)
	}
}

func TestStoreErrorDefaultsToUnavailable(t *testing.T) {
	appErr := kindOf(t, storeError(errors.New("dial tcp: connection refused")))
	if appErr.Kind != apperror.Unavailable {
		t.Fatalf("kind = %s, want Unavailable", appErr.Kind)
	}
	if appErr.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", appErr.Status)
	}
}
