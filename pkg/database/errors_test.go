package database_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamflow/teamflow-backend/pkg/database"
	"github.com/teamflow/teamflow-backend/pkg/errors"
)

func TestMapPQError_ForeignKeyViolation(t *testing.T) {
	err := database.MapPQError(&pq.Error{
		Code:       "23503",
		Constraint: "fk_event_attendees_user",
	})

	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "user not found", err.Message)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestMapPQError_ForeignKeyToDepartment(t *testing.T) {
	err := database.MapPQError(&pq.Error{
		Code:       "23503",
		Constraint: "fk_roles_department",
	})

	require.NotNil(t, err)
	assert.Equal(t, "department not found", err.Message)
}

func TestMapPQError_UniqueViolation(t *testing.T) {
	err := database.MapPQError(&pq.Error{
		Code:       "23505",
		Constraint: "users_email_key",
	})

	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.StatusCode)
	assert.Equal(t, "a user with this email already exists", err.Message)
}

func TestMapPQError_NotNullViolation(t *testing.T) {
	err := database.MapPQError(&pq.Error{
		Code:   "23502",
		Column: "title",
	})

	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "must not be empty", err.Details["title"])
}

func TestMapPQError_CheckConstraint(t *testing.T) {
	err := database.MapPQError(&pq.Error{
		Code:       "23514",
		Constraint: "calendar_events_time_range_valid",
	})

	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "must not be before start time", err.Details["end_time"])
}

func TestMapPQError_UnknownConstraintClass(t *testing.T) {
	err := database.MapPQError(&pq.Error{Code: "23P01"})

	require.NotNil(t, err)
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.True(t, errors.Is(err, errors.ErrIntegrity))
}

func TestMapPQError_NotAPQError(t *testing.T) {
	assert.Nil(t, database.MapPQError(fmt.Errorf("plain error")))
}
