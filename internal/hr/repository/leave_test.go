package repository_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/teamflow/teamflow-backend/internal/hr/repository"
	"github.com/teamflow/teamflow-backend/pkg/errors"
	"github.com/teamflow/teamflow-backend/pkg/testutil"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var suite *testutil.IntegrationSuite

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	suite, err = testutil.NewIntegrationSuite(ctx)
	if err != nil {
		log.Fatalf("failed to create integration suite: %v", err)
	}
	defer suite.Cleanup(ctx)

	os.Exit(m.Run())
}

func TestLeaveRepository_CreateAndListByUser(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewLeaveRepository(suite.DB)

	userID := suite.SeedUser(t, ctx, "leave-taker")
	otherID := suite.SeedUser(t, ctx, "leave-other")

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	rec := &repository.LeaveRecord{
		UserID:    userID,
		LeaveType: "annual",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 5),
		Reason:    "family holiday",
	}
	require.NoError(t, repo.Create(ctx, rec))
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "leave-taker", rec.Username)

	require.NoError(t, repo.Create(ctx, &repository.LeaveRecord{
		UserID:    otherID,
		LeaveType: "sick",
		StartDate: start,
		EndDate:   start,
	}))

	records, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "annual", records[0].LeaveType)

	leaveTypes, err := repo.DistinctTypes(ctx)
	require.NoError(t, err)
	assert.Contains(t, leaveTypes, "annual")
	assert.Contains(t, leaveTypes, "sick")
}

func TestLeaveRepository_Create_EndBeforeStart(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewLeaveRepository(suite.DB)

	userID := suite.SeedUser(t, ctx, "leave-invalid")
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	err := repo.Create(ctx, &repository.LeaveRecord{
		UserID:    userID,
		LeaveType: "annual",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, -2),
	})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestLeaveRepository_Create_UnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewLeaveRepository(suite.DB)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	err := repo.Create(ctx, &repository.LeaveRecord{
		UserID:    "0b6f1a34-8f6e-4a9e-93f3-6b41e9a2c001",
		LeaveType: "annual",
		StartDate: start,
		EndDate:   start,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestTimesheetRepository_Create_HoursMustBePositive(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTimesheetRepository(suite.DB)

	userID := suite.SeedUser(t, ctx, "timesheet-user")

	ts := &repository.Timesheet{
		UserID:      userID,
		EntryDate:   time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		HoursWorked: 7.5,
	}
	require.NoError(t, repo.Create(ctx, ts))
	assert.Equal(t, "timesheet-user", ts.Username)

	err := repo.Create(ctx, &repository.Timesheet{
		UserID:      userID,
		EntryDate:   time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		HoursWorked: 0,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestExpenseRepository_Create_AmountMustBePositive(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewExpenseRepository(suite.DB)

	userID := suite.SeedUser(t, ctx, "expense-user")

	err := repo.Create(ctx, &repository.Expense{
		UserID:      userID,
		ExpenseDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Amount:      -12.50,
		Description: "refund gone wrong",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestHRFileRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHRFileRepository(suite.DB)

	userID := suite.SeedUser(t, ctx, "hrfile-owner")

	first := &repository.HRFile{
		UserID: userID,
		Data:   types.JSONText(`{"emergency_contact": "Sam"}`),
	}
	require.NoError(t, repo.Upsert(ctx, first))
	assert.NotEmpty(t, first.ID)

	second := &repository.HRFile{
		UserID: userID,
		Data:   types.JSONText(`{"emergency_contact": "Alex", "allergies": "none"}`),
	}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	stored, err := repo.GetByUser(ctx, userID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"emergency_contact": "Alex", "allergies": "none"}`, string(stored.Data))
}

func TestHRFileRepository_GetByUser_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHRFileRepository(suite.DB)

	_, err := repo.GetByUser(ctx, "3f9f0b22-54d8-4d77-8f89-a5b6c7d8e001")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestEmployeeRepository_List(t *testing.T) {
	ctx := context.Background()
	employees := repository.NewEmployeeRepository(suite.DB)
	hrFiles := repository.NewHRFileRepository(suite.DB)

	withFileID := suite.SeedUser(t, ctx, "employee-with-file")
	withoutFileID := suite.SeedUser(t, ctx, "employee-without-file")
	suite.SeedProfile(t, ctx, withFileID, "manager")

	require.NoError(t, hrFiles.Upsert(ctx, &repository.HRFile{
		UserID: withFileID,
		Data:   types.JSONText(`{}`),
	}))

	records, err := employees.List(ctx)
	require.NoError(t, err)

	byID := make(map[string]*repository.EmployeeRecord, len(records))
	for _, rec := range records {
		byID[rec.UserID] = rec
	}

	withFile := byID[withFileID]
	require.NotNil(t, withFile)
	assert.True(t, withFile.HasHRFile)
	require.NotNil(t, withFile.Role)
	assert.Equal(t, "manager", *withFile.Role)

	withoutFile := byID[withoutFileID]
	require.NotNil(t, withoutFile)
	assert.False(t, withoutFile.HasHRFile)
	assert.Nil(t, withoutFile.Role)
}
