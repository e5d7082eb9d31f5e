package handler

import (
	"net/http"

	"github.com/teamflow/teamflow-backend/internal/workspace/service"
	"github.com/teamflow/teamflow-backend/pkg/httputil"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// EventHandler handles calendar event endpoints
type EventHandler struct {
	workspaceService *service.WorkspaceService
	logger           *logger.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(svc *service.WorkspaceService, log *logger.Logger) *EventHandler {
	return &EventHandler{
		workspaceService: svc,
		logger:           log,
	}
}

// List lists all calendar events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.workspaceService.ListEvents(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, events)
}

// Create creates a calendar event with its attendee set
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateEventRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	event, err := h.workspaceService.CreateEvent(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, event)
}
