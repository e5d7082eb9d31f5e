package service

import (
	"context"
	"time"

	"github.com/teamflow/teamflow-backend/internal/okr/repository"
	"github.com/teamflow/teamflow-backend/pkg/database"
	"github.com/teamflow/teamflow-backend/pkg/errors"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// OKRService handles objectives and their tasks
type OKRService struct {
	db            *database.DB
	objectiveRepo *repository.ObjectiveRepository
	taskRepo      *repository.OKRTaskRepository
	logger        *logger.Logger
}

// NewOKRService creates a new OKR service
func NewOKRService(
	db *database.DB,
	objectiveRepo *repository.ObjectiveRepository,
	taskRepo *repository.OKRTaskRepository,
	log *logger.Logger,
) *OKRService {
	return &OKRService{
		db:            db,
		objectiveRepo: objectiveRepo,
		taskRepo:      taskRepo,
		logger:        log,
	}
}

// CreateObjectiveRequest represents a create objective request
type CreateObjectiveRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id" validate:"required,uuid4"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}

// CreateOKRTaskRequest represents a create OKR task request
type CreateOKRTaskRequest struct {
	ObjectiveID string    `json:"objective_id" validate:"required,uuid4"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	AssignedTo  string    `json:"assigned_to" validate:"required,uuid4"`
	Completed   bool      `json:"completed"`
}

// Dashboard aggregates the OKR state across the org
type Dashboard struct {
	TotalObjectives int     `json:"total_objectives"`
	TotalTasks      int     `json:"total_tasks"`
	CompletedTasks  int     `json:"completed_tasks"`
	OverdueTasks    int     `json:"overdue_tasks"`
	CompletionRate  float64 `json:"completion_rate"`
}

func (s *OKRService) userExists(ctx context.Context, userID string) error {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	if err := s.db.GetContext(ctx, &exists, query, userID); err != nil {
		return err
	}
	if !exists {
		return errors.NotFound("user")
	}
	return nil
}

// CreateObjective creates an objective
func (s *OKRService) CreateObjective(ctx context.Context, req *CreateObjectiveRequest) (*repository.Objective, error) {
	if err := s.userExists(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	obj := &repository.Objective{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		DueDate:     req.DueDate,
	}
	if err := s.objectiveRepo.Create(ctx, obj); err != nil {
		return nil, err
	}

	return obj, nil
}

// ListObjectives lists all objectives with their tasks
func (s *OKRService) ListObjectives(ctx context.Context) ([]*repository.Objective, error) {
	return s.objectiveRepo.List(ctx)
}

// CreateTask creates an OKR task under an objective
func (s *OKRService) CreateTask(ctx context.Context, req *CreateOKRTaskRequest) (*repository.OKRTask, error) {
	exists, err := s.objectiveRepo.Exists(ctx, req.ObjectiveID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.NotFound("objective")
	}

	if err := s.userExists(ctx, req.AssignedTo); err != nil {
		return nil, err
	}

	task := &repository.OKRTask{
		ObjectiveID: req.ObjectiveID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
		Completed:   req.Completed,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// ListTasks lists all OKR tasks
func (s *OKRService) ListTasks(ctx context.Context) ([]*repository.OKRTask, error) {
	return s.taskRepo.List(ctx)
}

// GetDashboard aggregates the OKR state across the org
func (s *OKRService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	objectives, err := s.objectiveRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	total, completed, err := s.taskRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	overdue, err := s.taskRepo.CountOverdue(ctx)
	if err != nil {
		return nil, err
	}

	rate := 0.0
	if total > 0 {
		rate = float64(completed) / float64(total)
	}

	return &Dashboard{
		TotalObjectives: objectives,
		TotalTasks:      total,
		CompletedTasks:  completed,
		OverdueTasks:    overdue,
		CompletionRate:  rate,
	}, nil
}
