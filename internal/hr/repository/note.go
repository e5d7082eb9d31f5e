package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
)

// PrivateNote is an HR note about a user, never shown to the user
type PrivateNote struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	NoteDate  time.Time `db:"note_date" json:"note_date"`
	Note      string    `db:"note" json:"note"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NoteRepository handles private note persistence
type NoteRepository struct {
	db *database.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *database.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create creates a new private note
func (r *NoteRepository) Create(ctx context.Context, n *PrivateNote) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}

	query := `
		INSERT INTO private_notes (id, user_id, note_date, note)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		n.ID, n.UserID, n.NoteDate, n.Note,
	).Scan(&n.CreatedAt)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	if err != nil {
		return err
	}

	return r.db.GetContext(ctx, &n.Username,
		`SELECT username FROM users WHERE id = $1`, n.UserID)
}

// ListByUser lists the private notes about one user
func (r *NoteRepository) ListByUser(ctx context.Context, userID string) ([]*PrivateNote, error) {
	var notes []*PrivateNote
	query := `
		SELECT pn.id, pn.user_id, u.username, pn.note_date, pn.note, pn.created_at
		FROM private_notes pn
		JOIN users u ON u.id = pn.user_id
		WHERE pn.user_id = $1
		ORDER BY pn.note_date DESC
	`
	if err := r.db.SelectContext(ctx, &notes, query, userID); err != nil {
		return nil, err
	}

	return notes, nil
}

// List lists all private notes
func (r *NoteRepository) List(ctx context.Context) ([]*PrivateNote, error) {
	var notes []*PrivateNote
	query := `
		SELECT pn.id, pn.user_id, u.username, pn.note_date, pn.note, pn.created_at
		FROM private_notes pn
		JOIN users u ON u.id = pn.user_id
		ORDER BY pn.note_date DESC
	`
	if err := r.db.SelectContext(ctx, &notes, query); err != nil {
		return nil, err
	}

	return notes, nil
}
