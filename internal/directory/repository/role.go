package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
)

// Role is a position inside a department that users can hold
type Role struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Description    string    `db:"description" json:"description"`
	DepartmentID   string    `db:"department_id" json:"department_id"`
	DepartmentName string    `db:"department_name" json:"department_name"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// RoleMember is a user holding a role
type RoleMember struct {
	UserID    string `db:"user_id" json:"user_id"`
	Username  string `db:"username" json:"username"`
	Email     string `db:"email" json:"email"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
}

// RoleRepository handles role persistence
type RoleRepository struct {
	db *database.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *database.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create creates a new role inside a department
func (r *RoleRepository) Create(ctx context.Context, role *Role) error {
	if role.ID == "" {
		role.ID = uuid.New().String()
	}

	query := `
		INSERT INTO roles (id, name, description, department_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		role.ID, role.Name, role.Description, role.DepartmentID,
	).Scan(&role.CreatedAt)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	if err != nil {
		return err
	}

	return r.db.GetContext(ctx, &role.DepartmentName,
		`SELECT name FROM departments WHERE id = $1`, role.DepartmentID)
}

// List lists all roles with their department names
func (r *RoleRepository) List(ctx context.Context) ([]*Role, error) {
	var roles []*Role
	query := `
		SELECT r.id, r.name, r.description, r.department_id,
		       d.name AS department_name, r.created_at
		FROM roles r
		JOIN departments d ON d.id = r.department_id
		ORDER BY d.name, r.name
	`
	if err := r.db.SelectContext(ctx, &roles, query); err != nil {
		return nil, err
	}

	return roles, nil
}

// AddMember assigns a role to a user
func (r *RoleRepository) AddMember(ctx context.Context, roleID, userID string) error {
	query := `
		INSERT INTO role_members (role_id, user_id)
		VALUES ($1, $2)
	`
	_, err := r.db.ExecContext(ctx, query, roleID, userID)
	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	return err
}

// ListMembers lists the users holding a role
func (r *RoleRepository) ListMembers(ctx context.Context, roleID string) ([]*RoleMember, error) {
	var members []*RoleMember
	query := `
		SELECT u.id AS user_id, u.username, u.email, u.first_name, u.last_name
		FROM role_members rm
		JOIN users u ON u.id = rm.user_id
		WHERE rm.role_id = $1
		ORDER BY u.username
	`
	if err := r.db.SelectContext(ctx, &members, query, roleID); err != nil {
		return nil, err
	}

	return members, nil
}
