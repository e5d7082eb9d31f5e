package handler

import (
	"net/http"

	"github.com/teamflow/teamflow-backend/internal/workspace/service"
	"github.com/teamflow/teamflow-backend/pkg/httputil"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// DocumentHandler handles document endpoints
type DocumentHandler struct {
	workspaceService *service.WorkspaceService
	logger           *logger.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(svc *service.WorkspaceService, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		workspaceService: svc,
		logger:           log,
	}
}

// List lists all documents
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.workspaceService.ListDocuments(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, docs)
}

// Create creates a document record
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateDocumentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	doc, err := h.workspaceService.CreateDocument(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, doc)
}
