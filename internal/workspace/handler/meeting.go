package handler

import (
	"net/http"

	"github.com/teamflow/teamflow-backend/internal/workspace/service"
	"github.com/teamflow/teamflow-backend/pkg/httputil"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// MeetingHandler handles meeting endpoints
type MeetingHandler struct {
	workspaceService *service.WorkspaceService
	logger           *logger.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(svc *service.WorkspaceService, log *logger.Logger) *MeetingHandler {
	return &MeetingHandler{
		workspaceService: svc,
		logger:           log,
	}
}

// List lists all meetings
func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.workspaceService.ListMeetings(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, meetings)
}

// Create creates a meeting with its attendee set
func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateMeetingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	meeting, err := h.workspaceService.CreateMeeting(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, meeting)
}
