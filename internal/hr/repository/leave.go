package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
)

// LeaveRecord is a leave request booked against a user
type LeaveRecord struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	LeaveType string    `db:"leave_type" json:"leave_type"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Reason    string    `db:"reason" json:"reason"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// LeaveRepository handles leave record persistence
type LeaveRepository struct {
	db *database.DB
}

// NewLeaveRepository creates a new leave repository
func NewLeaveRepository(db *database.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// Create creates a new leave record
func (r *LeaveRepository) Create(ctx context.Context, rec *LeaveRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	query := `
		INSERT INTO leave_records (id, user_id, leave_type, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		rec.ID, rec.UserID, rec.LeaveType, rec.StartDate, rec.EndDate, rec.Reason,
	).Scan(&rec.CreatedAt)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	if err != nil {
		return err
	}

	return r.db.GetContext(ctx, &rec.Username,
		`SELECT username FROM users WHERE id = $1`, rec.UserID)
}

// List lists all leave records
func (r *LeaveRepository) List(ctx context.Context) ([]*LeaveRecord, error) {
	var records []*LeaveRecord
	query := `
		SELECT lr.id, lr.user_id, u.username, lr.leave_type, lr.start_date,
		       lr.end_date, lr.reason, lr.created_at
		FROM leave_records lr
		JOIN users u ON u.id = lr.user_id
		ORDER BY lr.start_date DESC
	`
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, err
	}

	return records, nil
}

// ListByUser lists the leave records of one user
func (r *LeaveRepository) ListByUser(ctx context.Context, userID string) ([]*LeaveRecord, error) {
	var records []*LeaveRecord
	query := `
		SELECT lr.id, lr.user_id, u.username, lr.leave_type, lr.start_date,
		       lr.end_date, lr.reason, lr.created_at
		FROM leave_records lr
		JOIN users u ON u.id = lr.user_id
		WHERE lr.user_id = $1
		ORDER BY lr.start_date DESC
	`
	if err := r.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, err
	}

	return records, nil
}

// DistinctTypes lists the leave types in use
func (r *LeaveRepository) DistinctTypes(ctx context.Context) ([]string, error) {
	var leaveTypes []string
	query := `SELECT DISTINCT leave_type FROM leave_records ORDER BY leave_type`
	if err := r.db.SelectContext(ctx, &leaveTypes, query); err != nil {
		return nil, err
	}

	return leaveTypes, nil
}
