package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/teamflow/teamflow-backend/internal/directory/service"
	"github.com/teamflow/teamflow-backend/pkg/httputil"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// DepartmentHandler handles department and role endpoints
type DepartmentHandler struct {
	directoryService *service.DirectoryService
	logger           *logger.Logger
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(svc *service.DirectoryService, log *logger.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		directoryService: svc,
		logger:           log,
	}
}

// List lists all departments
func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	departments, err := h.directoryService.ListDepartments(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, departments)
}

// Create creates a new department
func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateDepartmentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	dept, err := h.directoryService.CreateDepartment(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, dept)
}

// ListRoles lists all roles
func (h *DepartmentHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.directoryService.ListRoles(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, roles)
}

// CreateRole creates a role inside a department
func (h *DepartmentHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req service.CreateRoleRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	role, err := h.directoryService.CreateRole(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, role)
}

// ListRoleMembers lists the users holding a role
func (h *DepartmentHandler) ListRoleMembers(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "id")

	members, err := h.directoryService.ListRoleMembers(r.Context(), roleID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, members)
}

// AddRoleMember assigns a role to a user
func (h *DepartmentHandler) AddRoleMember(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "id")

	var req service.AddRoleMemberRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.directoryService.AddRoleMember(r.Context(), roleID, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, map[string]string{
		"role_id": roleID,
		"user_id": req.UserID,
	})
}
