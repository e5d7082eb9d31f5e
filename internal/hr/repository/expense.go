package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
)

// Expense is an expense claim filed by a user
type Expense struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Username    string    `db:"username" json:"username"`
	ExpenseDate time.Time `db:"expense_date" json:"expense_date"`
	Amount      float64   `db:"amount" json:"amount"`
	Description string    `db:"description" json:"description"`
	FilePath    string    `db:"file_path" json:"file_path"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ExpenseRepository handles expense persistence
type ExpenseRepository struct {
	db *database.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *database.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create creates a new expense claim
func (r *ExpenseRepository) Create(ctx context.Context, e *Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	query := `
		INSERT INTO expenses (id, user_id, expense_date, amount, description, file_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		e.ID, e.UserID, e.ExpenseDate, e.Amount, e.Description, e.FilePath,
	).Scan(&e.CreatedAt)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	if err != nil {
		return err
	}

	return r.db.GetContext(ctx, &e.Username,
		`SELECT username FROM users WHERE id = $1`, e.UserID)
}

// List lists all expense claims
func (r *ExpenseRepository) List(ctx context.Context) ([]*Expense, error) {
	var expenses []*Expense
	query := `
		SELECT e.id, e.user_id, u.username, e.expense_date, e.amount,
		       e.description, e.file_path, e.created_at
		FROM expenses e
		JOIN users u ON u.id = e.user_id
		ORDER BY e.expense_date DESC
	`
	if err := r.db.SelectContext(ctx, &expenses, query); err != nil {
		return nil, err
	}

	return expenses, nil
}

// ListByUser lists the expense claims of one user
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID string) ([]*Expense, error) {
	var expenses []*Expense
	query := `
		SELECT e.id, e.user_id, u.username, e.expense_date, e.amount,
		       e.description, e.file_path, e.created_at
		FROM expenses e
		JOIN users u ON u.id = e.user_id
		WHERE e.user_id = $1
		ORDER BY e.expense_date DESC
	`
	if err := r.db.SelectContext(ctx, &expenses, query, userID); err != nil {
		return nil, err
	}

	return expenses, nil
}
