package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Static bcrypt-format value satisfying the NOT NULL password column.
// Fixtures never authenticate; tests that exercise login create users
// through the directory service so the hash matches a known password.
const FixturePasswordHash = "$2a$10$fixturefixturefixturefixturefixturefixturefixturefixtu"

// SeedUser inserts a user row directly and returns its ID.
func (s *IntegrationSuite) SeedUser(t *testing.T, ctx context.Context, username string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := s.RawDB.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, username, username+"@example.com", FixturePasswordHash, "Test", "User")
	require.NoError(t, err)

	return id
}

// SeedProfile inserts a profile for the given user and returns its ID.
func (s *IntegrationSuite) SeedProfile(t *testing.T, ctx context.Context, userID, role string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := s.RawDB.ExecContext(ctx, `
		INSERT INTO profiles (id, user_id, role) VALUES ($1, $2, $3)
	`, id, userID, role)
	require.NoError(t, err)

	return id
}

// SeedDepartment inserts a department and returns its ID.
func (s *IntegrationSuite) SeedDepartment(t *testing.T, ctx context.Context, name string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := s.RawDB.ExecContext(ctx, `
		INSERT INTO departments (id, name) VALUES ($1, $2)
	`, id, name)
	require.NoError(t, err)

	return id
}

// CountRows returns the number of rows in a table.
func (s *IntegrationSuite) CountRows(t *testing.T, ctx context.Context, table string) int {
	t.Helper()

	var count int
	err := s.RawDB.GetContext(ctx, &count, fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
	require.NoError(t, err)

	return count
}
