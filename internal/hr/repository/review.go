package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
)

// PerformanceReview is a dated review written for a user
type PerformanceReview struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	Username   string    `db:"username" json:"username"`
	ReviewDate time.Time `db:"review_date" json:"review_date"`
	Review     string    `db:"review" json:"review"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ReviewRepository handles performance review persistence
type ReviewRepository struct {
	db *database.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *database.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create creates a new performance review
func (r *ReviewRepository) Create(ctx context.Context, rev *PerformanceReview) error {
	if rev.ID == "" {
		rev.ID = uuid.New().String()
	}

	query := `
		INSERT INTO performance_reviews (id, user_id, review_date, review)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		rev.ID, rev.UserID, rev.ReviewDate, rev.Review,
	).Scan(&rev.CreatedAt)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	if err != nil {
		return err
	}

	return r.db.GetContext(ctx, &rev.Username,
		`SELECT username FROM users WHERE id = $1`, rev.UserID)
}

// List lists all performance reviews
func (r *ReviewRepository) List(ctx context.Context) ([]*PerformanceReview, error) {
	var reviews []*PerformanceReview
	query := `
		SELECT pr.id, pr.user_id, u.username, pr.review_date, pr.review, pr.created_at
		FROM performance_reviews pr
		JOIN users u ON u.id = pr.user_id
		ORDER BY pr.review_date DESC
	`
	if err := r.db.SelectContext(ctx, &reviews, query); err != nil {
		return nil, err
	}

	return reviews, nil
}

// ListByUser lists the performance reviews of one user
func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]*PerformanceReview, error) {
	var reviews []*PerformanceReview
	query := `
		SELECT pr.id, pr.user_id, u.username, pr.review_date, pr.review, pr.created_at
		FROM performance_reviews pr
		JOIN users u ON u.id = pr.user_id
		WHERE pr.user_id = $1
		ORDER BY pr.review_date DESC
	`
	if err := r.db.SelectContext(ctx, &reviews, query, userID); err != nil {
		return nil, err
	}

	return reviews, nil
}
