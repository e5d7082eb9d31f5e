package service_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/teamflow/teamflow-backend/internal/directory/repository"
	"github.com/teamflow/teamflow-backend/internal/directory/service"
	"github.com/teamflow/teamflow-backend/pkg/errors"
	"github.com/teamflow/teamflow-backend/pkg/logger"
	"github.com/teamflow/teamflow-backend/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
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

func newDirectoryService() *service.DirectoryService {
	return service.NewDirectoryService(
		repository.NewUserRepository(suite.DB),
		repository.NewProfileRepository(suite.DB),
		repository.NewClientRepository(suite.DB),
		repository.NewDepartmentRepository(suite.DB),
		repository.NewRoleRepository(suite.DB),
		nil, // events are optional in tests
		logger.New("directory-test", "test"),
	)
}

func TestDirectoryService_CreateUser(t *testing.T) {
	ctx := context.Background()
	svc := newDirectoryService()

	user, err := svc.CreateUser(ctx, &service.CreateUserRequest{
		Username:  "svc-creates",
		Email:     "svc-creates@example.com",
		Password:  "sup3rsecret",
		FirstName: "Sasha",
		LastName:  "Example",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	// Stored hash must verify against the original password
	stored, err := repository.NewUserRepository(suite.DB).GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("sup3rsecret")))
}

func TestDirectoryService_CreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newDirectoryService()

	req := &service.CreateUserRequest{
		Username:  "svc-dup-one",
		Email:     "svc-dup@example.com",
		Password:  "sup3rsecret",
		FirstName: "First",
		LastName:  "User",
	}
	_, err := svc.CreateUser(ctx, req)
	require.NoError(t, err)

	req.Username = "svc-dup-two"
	_, err = svc.CreateUser(ctx, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))
}

func TestDirectoryService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc := newDirectoryService()

	_, err := svc.CreateUser(ctx, &service.CreateUserRequest{
		Username:  "svc-login",
		Email:     "svc-login@example.com",
		Password:  "letmein99",
		FirstName: "Log",
		LastName:  "In",
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "svc-login@example.com", "letmein99")
	require.NoError(t, err)
	assert.Equal(t, "svc-login", user.Username)

	_, err = svc.Authenticate(ctx, "svc-login@example.com", "wrong-password")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))

	_, err = svc.Authenticate(ctx, "nobody@example.com", "letmein99")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestDirectoryService_CreateClient_MissingProfile(t *testing.T) {
	ctx := context.Background()
	svc := newDirectoryService()

	_, err := svc.CreateClient(ctx, &service.CreateClientRequest{
		Name:           "Acme Ltd",
		OrganisationID: "9d2b7e40-13aa-4f6e-bb1c-0ef8a7d6c001",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestDirectoryService_UpsertProfile_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc := newDirectoryService()

	_, err := svc.UpsertProfile(ctx, "77aa3e12-6b0d-4c2f-8d9e-1f2a3b4c5001", &service.UpsertProfileRequest{
		Role: "manager",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
