package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
)

// Document is a stored file record
type Document struct {
	ID           string    `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	FilePath     string    `db:"file_path" json:"file_path"`
	UploadedBy   string    `db:"uploaded_by" json:"uploaded_by"`
	UploaderName string    `db:"uploader_name" json:"uploader_name"`
	UploadedAt   time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// DocumentRepository handles document persistence
type DocumentRepository struct {
	db *database.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *database.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document record
func (r *DocumentRepository) Create(ctx context.Context, doc *Document) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}

	query := `
		INSERT INTO documents (id, title, description, file_path, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING uploaded_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		doc.ID, doc.Title, doc.Description, doc.FilePath, doc.UploadedBy,
	).Scan(&doc.UploadedAt)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	if err != nil {
		return err
	}

	return r.db.GetContext(ctx, &doc.UploaderName,
		`SELECT username FROM users WHERE id = $1`, doc.UploadedBy)
}

// List lists all documents with their uploader names
func (r *DocumentRepository) List(ctx context.Context) ([]*Document, error) {
	var docs []*Document
	query := `
		SELECT d.id, d.title, d.description, d.file_path, d.uploaded_by,
		       u.username AS uploader_name, d.uploaded_at
		FROM documents d
		JOIN users u ON u.id = d.uploaded_by
		ORDER BY d.uploaded_at DESC
	`
	if err := r.db.SelectContext(ctx, &docs, query); err != nil {
		return nil, err
	}

	return docs, nil
}
