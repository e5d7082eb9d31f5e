package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/teamflow/teamflow-backend/pkg/database"
	"github.com/teamflow/teamflow-backend/pkg/errors"
)

// HRFile is the free-form HR dossier kept per user
type HRFile struct {
	ID        string         `db:"id" json:"id"`
	UserID    string         `db:"user_id" json:"user_id"`
	Data      types.JSONText `db:"data" json:"data"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// HRFileRepository handles HR file persistence
type HRFileRepository struct {
	db *database.DB
}

// NewHRFileRepository creates a new HR file repository
func NewHRFileRepository(db *database.DB) *HRFileRepository {
	return &HRFileRepository{db: db}
}

// Upsert writes the HR file for a user, creating it on first write
func (r *HRFileRepository) Upsert(ctx context.Context, file *HRFile) error {
	if file.ID == "" {
		file.ID = uuid.New().String()
	}

	query := `
		INSERT INTO hr_files (id, user_id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET data = EXCLUDED.data, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, file.ID, file.UserID, file.Data).
		Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	return err
}

// GetByUser gets the HR file attached to a user
func (r *HRFileRepository) GetByUser(ctx context.Context, userID string) (*HRFile, error) {
	var file HRFile
	query := `
		SELECT id, user_id, data, created_at, updated_at
		FROM hr_files
		WHERE user_id = $1
	`
	err := r.db.GetContext(ctx, &file, query, userID)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("hr file")
	}
	if err != nil {
		return nil, err
	}

	return &file, nil
}
