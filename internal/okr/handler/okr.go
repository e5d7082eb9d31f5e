package handler

import (
	"net/http"

	"github.com/teamflow/teamflow-backend/internal/okr/service"
	"github.com/teamflow/teamflow-backend/pkg/httputil"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// OKRHandler handles objective and OKR task endpoints
type OKRHandler struct {
	okrService *service.OKRService
	logger     *logger.Logger
}

// NewOKRHandler creates a new OKR handler
func NewOKRHandler(svc *service.OKRService, log *logger.Logger) *OKRHandler {
	return &OKRHandler{
		okrService: svc,
		logger:     log,
	}
}

// ListObjectives lists all objectives with their tasks
func (h *OKRHandler) ListObjectives(w http.ResponseWriter, r *http.Request) {
	objectives, err := h.okrService.ListObjectives(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, objectives)
}

// CreateObjective creates an objective
func (h *OKRHandler) CreateObjective(w http.ResponseWriter, r *http.Request) {
	var req service.CreateObjectiveRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	obj, err := h.okrService.CreateObjective(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, obj)
}

// ListTasks lists all OKR tasks
func (h *OKRHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.okrService.ListTasks(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, tasks)
}

// CreateTask creates an OKR task under an objective
func (h *OKRHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req service.CreateOKRTaskRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	task, err := h.okrService.CreateTask(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, task)
}

// Dashboard aggregates the OKR state across the org
func (h *OKRHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.okrService.GetDashboard(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, dashboard)
}
