package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/teamflow/teamflow-backend/internal/directory/service"
	"github.com/teamflow/teamflow-backend/pkg/httputil"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// UserHandler handles user and profile endpoints
type UserHandler struct {
	directoryService *service.DirectoryService
	logger           *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc *service.DirectoryService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		directoryService: svc,
		logger:           log,
	}
}

// List lists all users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.directoryService.ListUsers(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, users)
}

// Create creates a new user
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateUserRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	user, err := h.directoryService.CreateUser(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, user)
}

// Get gets a user by ID
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.directoryService.GetUser(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, user)
}

// Delete deletes a user and everything the user owns
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.directoryService.DeleteUser(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// GetProfile gets the profile attached to a user
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	profile, err := h.directoryService.GetProfile(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, profile)
}

// UpsertProfile writes the profile attached to a user
func (h *UserHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req service.UpsertProfileRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	profile, err := h.directoryService.UpsertProfile(r.Context(), id, &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, profile)
}
