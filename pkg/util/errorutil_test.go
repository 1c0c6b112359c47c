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

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewValidationError("bad input", map[string]any{"field": "type"})

	converted := ToDomainError(original)
	require.NotNil(t, converted)
	assert.Same(t, original, error(converted))
	assert.Equal(t, "VALIDATION_FAILED", converted.Code)
	assert.Equal(t, http.StatusBadRequest, converted.HTTPStatus)
}

func TestToDomainErrorUnwrapsWrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading ticket: %w", NewForbidden("admin role required"))

	converted := ToDomainError(wrapped)
	assert.Equal(t, "FORBIDDEN", converted.Code)
	assert.Equal(t, http.StatusForbidden, converted.HTTPStatus)
}

func TestToDomainErrorNoRows(t *testing.T) {
	converted := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", converted.Code)
	assert.Equal(t, http.StatusNotFound, converted.HTTPStatus)
}

func TestToDomainErrorHidesDriverDetail(t *testing.T) {
	driverErr := errors.New("pq: connection refused")

	converted := ToDomainError(driverErr)
	assert.Equal(t, "INTERNAL_ERROR", converted.Code)
	assert.Equal(t, http.StatusInternalServerError, converted.HTTPStatus)
	assert.Equal(t, "internal server error", converted.Message)
	assert.ErrorIs(t, converted, driverErr)
}

func TestNewInvalidTypeDetails(t *testing.T) {
	err := NewInvalidType("Plumbing")

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_TYPE", de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, "Plumbing", de.Details["type"])
}

func TestDomainErrorMessage(t *testing.T) {
	plain := &DomainError{Message: "ticket not found"}
	assert.Equal(t, "ticket not found", plain.Error())

	withCause := &DomainError{Message: "internal server error", Err: errors.New("timeout")}
	assert.Equal(t, "internal server error: timeout", withCause.Error())
}
