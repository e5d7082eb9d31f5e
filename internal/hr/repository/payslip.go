package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
)

// Payslip is a payroll record filed for a user
type Payslip struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	PayDate   time.Time `db:"pay_date" json:"pay_date"`
	Amount    float64   `db:"amount" json:"amount"`
	FilePath  string    `db:"file_path" json:"file_path"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PayslipRepository handles payslip persistence
type PayslipRepository struct {
	db *database.DB
}

// NewPayslipRepository creates a new payslip repository
func NewPayslipRepository(db *database.DB) *PayslipRepository {
	return &PayslipRepository{db: db}
}

// Create creates a new payslip
func (r *PayslipRepository) Create(ctx context.Context, p *Payslip) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	query := `
		INSERT INTO payslips (id, user_id, pay_date, amount, file_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		p.ID, p.UserID, p.PayDate, p.Amount, p.FilePath,
	).Scan(&p.CreatedAt)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	if err != nil {
		return err
	}

	return r.db.GetContext(ctx, &p.Username,
		`SELECT username FROM users WHERE id = $1`, p.UserID)
}

// List lists all payslips
func (r *PayslipRepository) List(ctx context.Context) ([]*Payslip, error) {
	var payslips []*Payslip
	query := `
		SELECT p.id, p.user_id, u.username, p.pay_date, p.amount, p.file_path, p.created_at
		FROM payslips p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.pay_date DESC
	`
	if err := r.db.SelectContext(ctx, &payslips, query); err != nil {
		return nil, err
	}

	return payslips, nil
}

// ListByUser lists the payslips of one user
func (r *PayslipRepository) ListByUser(ctx context.Context, userID string) ([]*Payslip, error) {
	var payslips []*Payslip
	query := `
		SELECT p.id, p.user_id, u.username, p.pay_date, p.amount, p.file_path, p.created_at
		FROM payslips p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.pay_date DESC
	`
	if err := r.db.SelectContext(ctx, &payslips, query, userID); err != nil {
		return nil, err
	}

	return payslips, nil
}
