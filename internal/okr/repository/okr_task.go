package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
)

// OKRTask is a unit of work contributing to an objective
type OKRTask struct {
	ID           string    `db:"id" json:"id"`
	ObjectiveID  string    `db:"objective_id" json:"objective_id"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	DueDate      time.Time `db:"due_date" json:"due_date"`
	AssignedTo   string    `db:"assigned_to" json:"assigned_to"`
	AssigneeName string    `db:"assignee_name" json:"assignee_name"`
	Completed    bool      `db:"completed" json:"completed"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// OKRTaskRepository handles OKR task persistence
type OKRTaskRepository struct {
	db *database.DB
}

// NewOKRTaskRepository creates a new OKR task repository
func NewOKRTaskRepository(db *database.DB) *OKRTaskRepository {
	return &OKRTaskRepository{db: db}
}

const okrTaskColumns = `
	t.id, t.objective_id, t.title, t.description, t.due_date, t.assigned_to,
	u.username AS assignee_name, t.completed, t.created_at
`

// Create creates a new OKR task
func (r *OKRTaskRepository) Create(ctx context.Context, task *OKRTask) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}

	query := `
		INSERT INTO okr_tasks (id, objective_id, title, description, due_date, assigned_to, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		task.ID, task.ObjectiveID, task.Title, task.Description,
		task.DueDate, task.AssignedTo, task.Completed,
	).Scan(&task.CreatedAt)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	if err != nil {
		return err
	}

	return r.db.GetContext(ctx, &task.AssigneeName,
		`SELECT username FROM users WHERE id = $1`, task.AssignedTo)
}

// List lists all OKR tasks
func (r *OKRTaskRepository) List(ctx context.Context) ([]*OKRTask, error) {
	var tasks []*OKRTask
	query := `
		SELECT ` + okrTaskColumns + `
		FROM okr_tasks t
		JOIN users u ON u.id = t.assigned_to
		ORDER BY t.due_date
	`
	if err := r.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, err
	}

	return tasks, nil
}

// ListByObjective lists the tasks under one objective
func (r *OKRTaskRepository) ListByObjective(ctx context.Context, objectiveID string) ([]*OKRTask, error) {
	var tasks []*OKRTask
	query := `
		SELECT ` + okrTaskColumns + `
		FROM okr_tasks t
		JOIN users u ON u.id = t.assigned_to
		WHERE t.objective_id = $1
		ORDER BY t.due_date
	`
	if err := r.db.SelectContext(ctx, &tasks, query, objectiveID); err != nil {
		return nil, err
	}

	return tasks, nil
}

// Counts returns the total and completed task counts
func (r *OKRTaskRepository) Counts(ctx context.Context) (total, completed int, err error) {
	row := struct {
		Total     int `db:"total"`
		Completed int `db:"completed"`
	}{}
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE completed) AS completed
		FROM okr_tasks
	`
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return 0, 0, err
	}

	return row.Total, row.Completed, nil
}

// CountOverdue returns the number of incomplete tasks past their due date
func (r *OKRTaskRepository) CountOverdue(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM okr_tasks WHERE NOT completed AND due_date < NOW()`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, err
	}
	return count, nil
}
