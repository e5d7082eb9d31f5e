package handler

import (
	"net/http"

	"github.com/teamflow/teamflow-backend/internal/auth/token"
	"github.com/teamflow/teamflow-backend/internal/directory/repository"
	"github.com/teamflow/teamflow-backend/internal/directory/service"
	"github.com/teamflow/teamflow-backend/pkg/httputil"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// AuthHandler handles login
type AuthHandler struct {
	directoryService *service.DirectoryService
	tokens           *token.Manager
	logger           *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc *service.DirectoryService, tokens *token.Manager, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		directoryService: svc,
		tokens:           tokens,
		logger:           log,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the token pair and the authenticated user
type LoginResponse struct {
	*token.TokenPair
	User *repository.User `json:"user"`
}

// Login checks credentials and issues a token pair
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	user, err := h.directoryService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	// The profile carries the org-level role; users without one get member tokens.
	role := "member"
	if profile, err := h.directoryService.GetProfile(r.Context(), user.ID); err == nil {
		role = profile.Role
	}

	pair, err := h.tokens.GenerateTokenPair(&token.UserInfo{
		ID:    user.ID,
		Email: user.Email,
		Role:  role,
	})
	if err != nil {
		httputil.Error(w, err)
		return
	}

	h.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	httputil.JSON(w, http.StatusOK, &LoginResponse{
		TokenPair: pair,
		User:      user,
	})
}
