package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
)

// Timesheet is a single day's hours logged by a user
type Timesheet struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Username    string    `db:"username" json:"username"`
	EntryDate   time.Time `db:"entry_date" json:"entry_date"`
	HoursWorked float64   `db:"hours_worked" json:"hours_worked"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// TimesheetRepository handles timesheet persistence
type TimesheetRepository struct {
	db *database.DB
}

// NewTimesheetRepository creates a new timesheet repository
func NewTimesheetRepository(db *database.DB) *TimesheetRepository {
	return &TimesheetRepository{db: db}
}

// Create creates a new timesheet entry
func (r *TimesheetRepository) Create(ctx context.Context, ts *Timesheet) error {
	if ts.ID == "" {
		ts.ID = uuid.New().String()
	}

	query := `
		INSERT INTO timesheets (id, user_id, entry_date, hours_worked)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		ts.ID, ts.UserID, ts.EntryDate, ts.HoursWorked,
	).Scan(&ts.CreatedAt)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	if err != nil {
		return err
	}

	return r.db.GetContext(ctx, &ts.Username,
		`SELECT username FROM users WHERE id = $1`, ts.UserID)
}

// List lists all timesheet entries
func (r *TimesheetRepository) List(ctx context.Context) ([]*Timesheet, error) {
	var entries []*Timesheet
	query := `
		SELECT t.id, t.user_id, u.username, t.entry_date, t.hours_worked, t.created_at
		FROM timesheets t
		JOIN users u ON u.id = t.user_id
		ORDER BY t.entry_date DESC
	`
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, err
	}

	return entries, nil
}

// ListByUser lists the timesheet entries of one user
func (r *TimesheetRepository) ListByUser(ctx context.Context, userID string) ([]*Timesheet, error) {
	var entries []*Timesheet
	query := `
		SELECT t.id, t.user_id, u.username, t.entry_date, t.hours_worked, t.created_at
		FROM timesheets t
		JOIN users u ON u.id = t.user_id
		WHERE t.user_id = $1
		ORDER BY t.entry_date DESC
	`
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, err
	}

	return entries, nil
}
