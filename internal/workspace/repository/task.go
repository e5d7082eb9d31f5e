package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
)

// Task is a unit of work assigned to a user
type Task struct {
	ID           string    `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	DueDate      time.Time `db:"due_date" json:"due_date"`
	AssignedTo   string    `db:"assigned_to" json:"assigned_to"`
	AssigneeName string    `db:"assignee_name" json:"assignee_name"`
	Completed    bool      `db:"completed" json:"completed"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// TaskRepository handles task persistence
type TaskRepository struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `
	t.id, t.title, t.description, t.due_date, t.assigned_to,
	u.username AS assignee_name, t.completed, t.created_at
`

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}

	query := `
		INSERT INTO tasks (id, title, description, due_date, assigned_to, completed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		task.ID, task.Title, task.Description,
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

// List lists all tasks
func (r *TaskRepository) List(ctx context.Context) ([]*Task, error) {
	var tasks []*Task
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN users u ON u.id = t.assigned_to
		ORDER BY t.due_date
	`
	if err := r.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, err
	}

	return tasks, nil
}

// ListByAssignee lists the tasks assigned to one user
func (r *TaskRepository) ListByAssignee(ctx context.Context, userID string) ([]*Task, error) {
	var tasks []*Task
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN users u ON u.id = t.assigned_to
		WHERE t.assigned_to = $1
		ORDER BY t.due_date
	`
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, err
	}

	return tasks, nil
}

// ListTeamTasks lists the tasks assigned to anyone holding a role in a
// department where the given user also holds a role
func (r *TaskRepository) ListTeamTasks(ctx context.Context, userID string) ([]*Task, error) {
	var tasks []*Task
	query := `
		SELECT DISTINCT ` + taskColumns + `
		FROM tasks t
		JOIN users u ON u.id = t.assigned_to
		JOIN role_members rm ON rm.user_id = t.assigned_to
		JOIN roles r ON r.id = rm.role_id
		WHERE r.department_id IN (
			SELECT r2.department_id
			FROM roles r2
			JOIN role_members rm2 ON rm2.role_id = r2.id
			WHERE rm2.user_id = $1
		)
		ORDER BY t.due_date
	`
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, err
	}

	return tasks, nil
}

// CountTeamTasks counts the team's open and completed tasks
func (r *TaskRepository) CountTeamTasks(ctx context.Context, userID string) (open, completed int, err error) {
	row := struct {
		Open      int `db:"open"`
		Completed int `db:"completed"`
	}{}
	query := `
		SELECT COUNT(DISTINCT t.id) FILTER (WHERE NOT t.completed) AS open,
		       COUNT(DISTINCT t.id) FILTER (WHERE t.completed) AS completed
		FROM tasks t
		JOIN role_members rm ON rm.user_id = t.assigned_to
		JOIN roles r ON r.id = rm.role_id
		WHERE r.department_id IN (
			SELECT r2.department_id
			FROM roles r2
			JOIN role_members rm2 ON rm2.role_id = r2.id
			WHERE rm2.user_id = $1
		)
	`
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		return 0, 0, err
	}

	return row.Open, row.Completed, nil
}

// CountAll returns the number of tasks
func (r *TaskRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM tasks`); err != nil {
		return 0, err
	}
	return count, nil
}
