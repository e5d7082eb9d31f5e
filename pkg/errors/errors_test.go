package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamflow/teamflow-backend/pkg/errors"
)

func TestNotFound(t *testing.T) {
	err := errors.NotFound("user")

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "user not found", err.Message)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestValidation_CarriesFieldDetails(t *testing.T) {
	err := errors.Validation(map[string]string{
		"title": "this field is required",
		"role":  "must be one of: admin customer manager hr",
	})

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "this field is required", err.Details["title"])
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestIntegrity_IsServerError(t *testing.T) {
	err := errors.Integrity("foreign key violated during create")

	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.True(t, errors.Is(err, errors.ErrIntegrity))
	assert.False(t, errors.Is(err, errors.ErrValidation))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := errors.Wrap(cause, "INTERNAL_ERROR", "query failed", http.StatusInternalServerError)

	require.ErrorContains(t, err, "query failed")
	assert.Equal(t, cause, err.Unwrap())
}

func TestAs_ExtractsAppError(t *testing.T) {
	var appErr *errors.AppError
	err := fmt.Errorf("handler: %w", errors.Conflict("duplicate email"))

	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)
}
