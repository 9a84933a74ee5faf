package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorConstructors(t *testing.T) {
	cases := []struct {
		err        error
		wantCode   string
		wantStatus int
	}{
		{NewValidationError("bad input", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{NewNotFound("project", nil), "NOT_FOUND", http.StatusNotFound},
		{NewUnauthorized("no token"), "UNAUTHORIZED", http.StatusUnauthorized},
		{NewForbidden("viewers cannot write"), "FORBIDDEN", http.StatusForbidden},
		{NewConflict("duplicate", nil), "CONFLICT", http.StatusConflict},
		{NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		var domainErr *DomainError
		require.ErrorAs(t, tc.err, &domainErr)
		assert.Equal(t, tc.wantCode, domainErr.Code)
		assert.Equal(t, tc.wantStatus, domainErr.HTTPStatus)
	}
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	domainErr := ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	domainErr := ToDomainError(errors.New("disk full"))
	require.NotNil(t, domainErr)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.EqualError(t, domainErr.Unwrap(), "disk full")
}

func TestToDomainErrorPassesThrough(t *testing.T) {
	original := NewConflict("cm_number already exists", map[string]any{"cm_number": "C1234"})
	wrapped := fmt.Errorf("create matter: %w", original)

	domainErr := ToDomainError(wrapped)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, "C1234", domainErr.Details["cm_number"])
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestMapErrorNilStaysNil(t *testing.T) {
	// Services return MapError(repoCall()) directly, so a nil result must be
	// the untyped nil interface, not a nil *DomainError.
	err := MapError(nil)
	assert.NoError(t, err)
	assert.Nil(t, err)
}

func TestMapErrorTranslates(t *testing.T) {
	err := MapError(pgx.ErrNoRows)
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
