package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
	"github.com/teamflow/teamflow-backend/pkg/errors"
)

// Profile holds the organisation-level attributes of a user
type Profile struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	Bio            string    `db:"bio" json:"bio"`
	ProfilePicture string    `db:"profile_picture" json:"profile_picture"`
	PhoneNumber    string    `db:"phone_number" json:"phone_number"`
	Role           string    `db:"role" json:"role"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ProfileRepository handles profile persistence
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByUserID gets the profile attached to a user
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	var profile Profile
	query := `
		SELECT id, user_id, bio, profile_picture, phone_number, role, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("profile")
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// Exists reports whether a profile with the given ID exists
func (r *ProfileRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM profiles WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}

// Upsert writes the profile for a user, creating it on first write
func (r *ProfileRepository) Upsert(ctx context.Context, profile *Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}

	query := `
		INSERT INTO profiles (id, user_id, bio, profile_picture, phone_number, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET bio = EXCLUDED.bio, profile_picture = EXCLUDED.profile_picture,
		    phone_number = EXCLUDED.phone_number, role = EXCLUDED.role,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		profile.ID, profile.UserID, profile.Bio, profile.ProfilePicture,
		profile.PhoneNumber, profile.Role,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	return err
}
