package repository

import (
	"context"

	"github.com/teamflow/teamflow-backend/pkg/database"
)

// EmployeeRecord is the HR view of a user: account, org role and whether
// an HR file has been opened for them
type EmployeeRecord struct {
	UserID    string  `db:"user_id" json:"user_id"`
	Username  string  `db:"username" json:"username"`
	Email     string  `db:"email" json:"email"`
	FirstName string  `db:"first_name" json:"first_name"`
	LastName  string  `db:"last_name" json:"last_name"`
	Role      *string `db:"role" json:"role"`
	HasHRFile bool    `db:"has_hr_file" json:"has_hr_file"`
}

// EmployeeRepository reads the directory tables from the HR side
type EmployeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Exists reports whether a user with the given ID exists
func (r *EmployeeRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, userID); err != nil {
		return false, err
	}
	return exists, nil
}

// List lists every user with their org role and HR file state
func (r *EmployeeRepository) List(ctx context.Context) ([]*EmployeeRecord, error) {
	var records []*EmployeeRecord
	query := `
		SELECT u.id AS user_id, u.username, u.email, u.first_name, u.last_name,
		       p.role, (hf.id IS NOT NULL) AS has_hr_file
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		LEFT JOIN hr_files hf ON hf.user_id = u.id
		ORDER BY u.username
	`
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, err
	}

	return records, nil
}
