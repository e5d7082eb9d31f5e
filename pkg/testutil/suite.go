package testutil

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/teamflow/teamflow-backend/internal/database/migrations"
	"github.com/teamflow/teamflow-backend/pkg/database"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// IntegrationSuite holds shared state for integration tests backed by a
// real PostgreSQL instance with the application schema applied.
//
// Usage:
//
//	var suite *testutil.IntegrationSuite
//
//	func TestMain(m *testing.M) {
//	    ctx := context.Background()
//	    var err error
//	    suite, err = testutil.NewIntegrationSuite(ctx)
//	    if err != nil {
//	        log.Fatalf("failed to create integration suite: %v", err)
//	    }
//	    defer suite.Cleanup(ctx)
//	    os.Exit(m.Run())
//	}
type IntegrationSuite struct {
	Container *PostgresContainer
	DB        *database.DB
	RawDB     *sqlx.DB
	Logger    *logger.Logger
}

// NewIntegrationSuite starts a PostgreSQL container and applies all migrations.
func NewIntegrationSuite(ctx context.Context) (*IntegrationSuite, error) {
	container, err := NewPostgresContainer(ctx, DefaultPostgresConfig())
	if err != nil {
		return nil, err
	}

	rawDB, err := container.Connect(ctx)
	if err != nil {
		container.Terminate(ctx)
		return nil, err
	}

	if err := migrations.Up(rawDB.DB); err != nil {
		rawDB.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	log := logger.New("test", "test")

	return &IntegrationSuite{
		Container: container,
		DB:        database.FromSqlx(rawDB, log),
		RawDB:     rawDB,
		Logger:    log,
	}, nil
}

// Cleanup closes the database connection and terminates the container.
func (s *IntegrationSuite) Cleanup(ctx context.Context) {
	if s.RawDB != nil {
		s.RawDB.Close()
	}
	if s.Container != nil {
		s.Container.Terminate(ctx)
	}
}

// TruncateAll removes all rows from every application table. Tests call this
// to isolate themselves from earlier tests sharing the suite.
func (s *IntegrationSuite) TruncateAll(ctx context.Context) error {
	_, err := s.RawDB.ExecContext(ctx, `
		TRUNCATE okr_tasks, objectives, policies, private_notes, expenses,
			performance_reviews, payslips, timesheets, leave_records, hr_files,
			tasks, documents, meeting_attendees, meetings, event_attendees,
			calendar_events, role_members, roles, departments, clients,
			profiles, users
		CASCADE
	`)
	return err
}
