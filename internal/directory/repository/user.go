package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
	"github.com/teamflow/teamflow-backend/pkg/errors"
)

// User represents an account in the directory
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	IsOrganizer  bool      `db:"is_organizer" json:"is_organizer"`
	IsAgent      bool      `db:"is_agent" json:"is_agent"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UserRepository handles user persistence
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users (id, username, email, password_hash, first_name, last_name, is_organizer, is_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.IsOrganizer, user.IsAgent,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	return err
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	var user User
	query := `
		SELECT id, username, email, password_hash, first_name, last_name,
		       is_organizer, is_agent, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &user, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("user")
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `
		SELECT id, username, email, password_hash, first_name, last_name,
		       is_organizer, is_agent, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	err := r.db.GetContext(ctx, &user, query, email)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("user")
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// List lists all users
func (r *UserRepository) List(ctx context.Context) ([]*User, error) {
	var users []*User
	query := `
		SELECT id, username, email, password_hash, first_name, last_name,
		       is_organizer, is_agent, created_at, updated_at
		FROM users
		ORDER BY created_at
	`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, err
	}

	return users, nil
}

// Exists reports whether a user with the given ID exists
func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}

// Delete deletes a user. The schema cascades to every record the user owns.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NotFound("user")
	}

	return nil
}
