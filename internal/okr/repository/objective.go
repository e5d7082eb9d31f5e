package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/teamflow-backend/pkg/database"
	"github.com/teamflow/teamflow-backend/pkg/errors"
)

// Objective is a goal owned by a user, broken down into OKR tasks
type Objective struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	OwnerID     string     `db:"owner_id" json:"owner_id"`
	OwnerName   string     `db:"owner_name" json:"owner_name"`
	DueDate     time.Time  `db:"due_date" json:"due_date"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	Tasks       []*OKRTask `db:"-" json:"tasks"`
}

// ObjectiveRepository handles objective persistence
type ObjectiveRepository struct {
	db *database.DB
}

// NewObjectiveRepository creates a new objective repository
func NewObjectiveRepository(db *database.DB) *ObjectiveRepository {
	return &ObjectiveRepository{db: db}
}

// Create creates a new objective
func (r *ObjectiveRepository) Create(ctx context.Context, obj *Objective) error {
	if obj.ID == "" {
		obj.ID = uuid.New().String()
	}

	query := `
		INSERT INTO objectives (id, title, description, owner_id, due_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		obj.ID, obj.Title, obj.Description, obj.OwnerID, obj.DueDate,
	).Scan(&obj.CreatedAt)

	if dbErr := database.MapPQError(err); dbErr != nil {
		return dbErr
	}
	if err != nil {
		return err
	}

	return r.db.GetContext(ctx, &obj.OwnerName,
		`SELECT username FROM users WHERE id = $1`, obj.OwnerID)
}

// Exists reports whether an objective with the given ID exists
func (r *ObjectiveRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM objectives WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}

// GetByID gets an objective with its tasks
func (r *ObjectiveRepository) GetByID(ctx context.Context, id string) (*Objective, error) {
	var obj Objective
	query := `
		SELECT o.id, o.title, o.description, o.owner_id,
		       u.username AS owner_name, o.due_date, o.created_at
		FROM objectives o
		JOIN users u ON u.id = o.owner_id
		WHERE o.id = $1
	`
	err := r.db.GetContext(ctx, &obj, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("objective")
	}
	if err != nil {
		return nil, err
	}

	tasks, err := NewOKRTaskRepository(r.db).ListByObjective(ctx, id)
	if err != nil {
		return nil, err
	}
	obj.Tasks = tasks

	return &obj, nil
}

// List lists all objectives with their tasks
func (r *ObjectiveRepository) List(ctx context.Context) ([]*Objective, error) {
	var objectives []*Objective
	query := `
		SELECT o.id, o.title, o.description, o.owner_id,
		       u.username AS owner_name, o.due_date, o.created_at
		FROM objectives o
		JOIN users u ON u.id = o.owner_id
		ORDER BY o.due_date
	`
	if err := r.db.SelectContext(ctx, &objectives, query); err != nil {
		return nil, err
	}
	if len(objectives) == 0 {
		return objectives, nil
	}

	taskRepo := NewOKRTaskRepository(r.db)
	tasks, err := taskRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*OKRTask, len(objectives))
	for _, t := range tasks {
		grouped[t.ObjectiveID] = append(grouped[t.ObjectiveID], t)
	}
	for _, o := range objectives {
		o.Tasks = grouped[o.ID]
	}

	return objectives, nil
}

// CountAll returns the number of objectives
func (r *ObjectiveRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM objectives`); err != nil {
		return 0, err
	}
	return count, nil
}
