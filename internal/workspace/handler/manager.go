package handler

import (
	"net/http"

	"github.com/teamflow/teamflow-backend/internal/workspace/service"
	"github.com/teamflow/teamflow-backend/pkg/errors"
	"github.com/teamflow/teamflow-backend/pkg/httputil"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// ManagerHandler serves the manager views over the caller's departments
type ManagerHandler struct {
	workspaceService *service.WorkspaceService
	logger           *logger.Logger
}

// NewManagerHandler creates a new manager handler
func NewManagerHandler(svc *service.WorkspaceService, log *logger.Logger) *ManagerHandler {
	return &ManagerHandler{
		workspaceService: svc,
		logger:           log,
	}
}

func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httputil.GetUserID(r.Context())
	if userID == "" {
		httputil.Error(w, errors.Unauthorized("identity required"))
		return "", false
	}
	return userID, true
}

// Dashboard aggregates the caller's team state
func (h *ManagerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	dashboard, err := h.workspaceService.Dashboard(r.Context(), userID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, dashboard)
}

// TeamMembers lists the users sharing a department with the caller
func (h *ManagerHandler) TeamMembers(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	members, err := h.workspaceService.TeamMembers(r.Context(), userID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, members)
}

// TeamTasks lists the tasks assigned across the caller's departments
func (h *ManagerHandler) TeamTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	tasks, err := h.workspaceService.TeamTasks(r.Context(), userID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, tasks)
}
