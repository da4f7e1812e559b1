package me

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/VamsiGavva/Qa-monitor/internal/auth"
	"github.com/VamsiGavva/Qa-monitor/internal/http/middleware"
	"github.com/VamsiGavva/Qa-monitor/internal/httputil"
)

// Handler handles the authenticated profile endpoint.
type Handler struct {
	logger      *slog.Logger
	authService *auth.Service
}

// NewHandler creates a new profile handler.
func NewHandler(logger *slog.Logger, authService *auth.Service) *Handler {
	return &Handler{logger: logger, authService: authService}
}

// ProfileResponse is the authenticated account profile.
type ProfileResponse struct {
	Success bool        `json:"success"`
	Data    ProfileData `json:"data"`
}

type ProfileData struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	IsFirstLogin bool       `json:"isFirstLogin"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

// GetMe returns the authenticated account.
// GET /me
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get user", "error", err, "user_id", userID)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	httputil.JSON(w, http.StatusOK, ProfileResponse{
		Success: true,
		Data: ProfileData{
			ID:           user.ID.String(),
			Email:        user.Email,
			Name:         user.Name,
			IsFirstLogin: user.IsFirstLogin,
			LastLoginAt:  user.LastLoginAt,
		},
	})
}
