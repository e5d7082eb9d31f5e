package httputil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/teamflow/teamflow-backend/pkg/errors"
	"github.com/teamflow/teamflow-backend/pkg/httputil"
)

type eventRequest struct {
	Title       string    `validate:"required,max=200"`
	StartTime   time.Time `validate:"required"`
	EndTime     time.Time `validate:"required,gtefield=StartTime"`
	CreatedBy   string    `validate:"required,uuid4"`
	AttendeeIDs []string  `validate:"dive,uuid4"`
	Role        string    `validate:"omitempty,oneof=admin customer manager hr"`
}

func validRequest() eventRequest {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return eventRequest{
		Title:     "Standup",
		StartTime: start,
		EndTime:   start.Add(15 * time.Minute),
		CreatedBy: "6ba7b810-9dad-41d1-80b4-00c04fd430c8",
	}
}

func TestValidate_Passes(t *testing.T) {
	req := validRequest()
	assert.NoError(t, httputil.Validate(&req))
}

func TestValidate_RequiredField(t *testing.T) {
	req := validRequest()
	req.Title = ""

	err := httputil.Validate(&req)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "this field is required", appErr.Details["Title"])
}

func TestValidate_EndBeforeStart(t *testing.T) {
	req := validRequest()
	req.EndTime = req.StartTime.Add(-time.Hour)

	err := httputil.Validate(&req)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, "must not be before StartTime", appErr.Details["EndTime"])
}

func TestValidate_EndEqualsStartAllowed(t *testing.T) {
	req := validRequest()
	req.EndTime = req.StartTime

	assert.NoError(t, httputil.Validate(&req))
}

func TestValidate_InvalidUUID(t *testing.T) {
	req := validRequest()
	req.CreatedBy = "not-a-uuid"

	err := httputil.Validate(&req)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, "must be a valid UUID", appErr.Details["CreatedBy"])
}

func TestValidate_EnumOutsideClosedSet(t *testing.T) {
	req := validRequest()
	req.Role = "superuser"

	err := httputil.Validate(&req)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Contains(t, appErr.Details["Role"], "must be one of")
}
