package handler

import (
	"net/http"

	"github.com/teamflow/teamflow-backend/internal/workspace/service"
	"github.com/teamflow/teamflow-backend/pkg/errors"
	"github.com/teamflow/teamflow-backend/pkg/httputil"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// TaskHandler handles task endpoints
type TaskHandler struct {
	workspaceService *service.WorkspaceService
	logger           *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(svc *service.WorkspaceService, log *logger.Logger) *TaskHandler {
	return &TaskHandler{
		workspaceService: svc,
		logger:           log,
	}
}

// List lists all tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.workspaceService.ListTasks(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, tasks)
}

// Create creates a task
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTaskRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	task, err := h.workspaceService.CreateTask(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, task)
}

// ListPersonal lists the tasks assigned to the caller
func (h *TaskHandler) ListPersonal(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r.Context())
	if userID == "" {
		httputil.Error(w, errors.Unauthorized("identity required"))
		return
	}

	tasks, err := h.workspaceService.ListPersonalTasks(r.Context(), userID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, tasks)
}
