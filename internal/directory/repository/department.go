package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
)

// Department groups roles inside the organisation
type Department struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// DepartmentRepository handles department persistence
type DepartmentRepository struct {
	db *database.DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *database.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, dept *Department) error {
	if dept.ID == "" {
		dept.ID = uuid.New().String()
	}

	query := `
		INSERT INTO departments (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query, dept.ID, dept.Name, dept.Description).
		Scan(&dept.CreatedAt)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	return err
}

// List lists all departments
func (r *DepartmentRepository) List(ctx context.Context) ([]*Department, error) {
	var departments []*Department
	query := `
		SELECT id, name, description, created_at
		FROM departments
		ORDER BY name
	`
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, err
	}

	return departments, nil
}
