package handler

import (
	"net/http"

	"github.com/teamflow/teamflow-backend/internal/directory/service"
	"github.com/teamflow/teamflow-backend/pkg/httputil"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// ClientHandler handles client endpoints
type ClientHandler struct {
	directoryService *service.DirectoryService
	logger           *logger.Logger
}

// NewClientHandler creates a new client handler
func NewClientHandler(svc *service.DirectoryService, log *logger.Logger) *ClientHandler {
	return &ClientHandler{
		directoryService: svc,
		logger:           log,
	}
}

// List lists all clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.directoryService.ListClients(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, clients)
}

// Create creates a new client
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateClientRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	client, err := h.directoryService.CreateClient(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, client)
}
