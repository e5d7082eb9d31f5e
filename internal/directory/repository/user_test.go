package repository_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/internal/directory/repository"
	"github.com/teamflow/teamflow-backend/pkg/errors"
	"github.com/teamflow/teamflow-backend/pkg/testutil"
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

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(suite.DB)

	user := &repository.User{
		Username:     "mmueller",
		Email:        "m.mueller@example.com",
		PasswordHash: testutil.FixturePasswordHash,
		FirstName:    "Maria",
		LastName:     "Mueller",
		IsOrganizer:  true,
	}
	err := repo.Create(ctx, user)
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	retrieved, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "mmueller", retrieved.Username)
	assert.Equal(t, "m.mueller@example.com", retrieved.Email)
	assert.True(t, retrieved.IsOrganizer)
	assert.False(t, retrieved.IsAgent)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(suite.DB)

	first := &repository.User{
		Username:     "dupe-one",
		Email:        "dupe@example.com",
		PasswordHash: testutil.FixturePasswordHash,
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &repository.User{
		Username:     "dupe-two",
		Email:        "dupe@example.com",
		PasswordHash: testutil.FixturePasswordHash,
	}
	err := repo.Create(ctx, second)
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.StatusCode)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(suite.DB)

	_, err := repo.GetByID(ctx, "7b7e6dcc-24ac-4b70-b0d5-32c5b4f0a0aa")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestUserRepository_Delete_CascadesOwnedRecords(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(suite.DB)

	userID := suite.SeedUser(t, ctx, "cascade-target")
	suite.SeedProfile(t, ctx, userID, "customer")

	_, err := suite.RawDB.ExecContext(ctx, `
		INSERT INTO tasks (id, title, due_date, assigned_to)
		VALUES ($1, 'orphan check', NOW(), $2)
	`, uuid.New().String(), userID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, userID))

	var profiles, tasks int
	require.NoError(t, suite.RawDB.GetContext(ctx, &profiles,
		`SELECT COUNT(*) FROM profiles WHERE user_id = $1`, userID))
	require.NoError(t, suite.RawDB.GetContext(ctx, &tasks,
		`SELECT COUNT(*) FROM tasks WHERE assigned_to = $1`, userID))
	assert.Zero(t, profiles)
	assert.Zero(t, tasks)

	// Deleting again reports not found
	err = repo.Delete(ctx, userID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestProfileRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewProfileRepository(suite.DB)

	userID := suite.SeedUser(t, ctx, "profile-owner")

	profile := &repository.Profile{
		UserID:      userID,
		Bio:         "First version",
		PhoneNumber: "5551234",
		Role:        "customer",
	}
	require.NoError(t, repo.Upsert(ctx, profile))
	firstID := profile.ID

	// Second write updates in place
	updated := &repository.Profile{
		UserID: userID,
		Bio:    "Second version",
		Role:   "manager",
	}
	require.NoError(t, repo.Upsert(ctx, updated))
	assert.Equal(t, firstID, updated.ID)

	retrieved, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Second version", retrieved.Bio)
	assert.Equal(t, "manager", retrieved.Role)
}

func TestClientRepository_Create_MissingProfile(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewClientRepository(suite.DB)

	client := &repository.Client{
		Name:           "Acme GmbH",
		OrganisationID: "e7a7cbb0-63fc-4b7e-9f34-1f2ad8cfe1ba",
	}
	err := repo.Create(ctx, client)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestRoleRepository_Members(t *testing.T) {
	ctx := context.Background()
	roleRepo := repository.NewRoleRepository(suite.DB)

	deptID := suite.SeedDepartment(t, ctx, "Engineering")
	role := &repository.Role{
		Name:         "Backend Developer",
		DepartmentID: deptID,
	}
	require.NoError(t, roleRepo.Create(ctx, role))
	assert.Equal(t, "Engineering", role.DepartmentName)

	aliceID := suite.SeedUser(t, ctx, "alice-role")
	bobID := suite.SeedUser(t, ctx, "bob-role")
	require.NoError(t, roleRepo.AddMember(ctx, role.ID, aliceID))
	require.NoError(t, roleRepo.AddMember(ctx, role.ID, bobID))

	members, err := roleRepo.ListMembers(ctx, role.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "alice-role", members[0].Username)
	assert.Equal(t, "bob-role", members[1].Username)

	// Unknown user surfaces as not found via the FK
	err = roleRepo.AddMember(ctx, role.ID, "111b2f5a-a9a0-4b58-8fc9-65a3f9d2b502")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
