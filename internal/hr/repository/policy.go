package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
)

// Policy is an org-wide HR policy document
type Policy struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PolicyRepository handles policy persistence
type PolicyRepository struct {
	db *database.DB
}

// NewPolicyRepository creates a new policy repository
func NewPolicyRepository(db *database.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

// Create creates a new policy
func (r *PolicyRepository) Create(ctx context.Context, p *Policy) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	query := `
		INSERT INTO policies (id, title, content)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query, p.ID, p.Title, p.Content).
		Scan(&p.CreatedAt)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	return err
}

// List lists all policies
func (r *PolicyRepository) List(ctx context.Context) ([]*Policy, error) {
	var policies []*Policy
	query := `
		SELECT id, title, content, created_at
		FROM policies
		ORDER BY title
	`
	if err := r.db.SelectContext(ctx, &policies, query); err != nil {
		return nil, err
	}

	return policies, nil
}

// Count returns the number of policies
func (r *PolicyRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM policies`); err != nil {
		return 0, err
	}
	return count, nil
}
