package password

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/VamsiGavva/Qa-monitor/internal/auth"
	"github.com/VamsiGavva/Qa-monitor/internal/domain"
	"github.com/VamsiGavva/Qa-monitor/internal/httputil"
	"github.com/VamsiGavva/Qa-monitor/internal/notification"
)

// Handler handles login and password reset endpoints.
type Handler struct {
	logger           *slog.Logger
	authService      *auth.Service
	emailService     *notification.EmailService
	appBaseURL       string
	exposeResetToken bool
}

// NewHandler creates a new password handler. exposeResetToken enables the
// non-production diagnostic mode that echoes reset tokens in
// forgot-password responses.
func NewHandler(
	logger *slog.Logger,
	authService *auth.Service,
	emailService *notification.EmailService,
	appBaseURL string,
	exposeResetToken bool,
) *Handler {
	return &Handler{
		logger:           logger,
		authService:      authService,
		emailService:     emailService,
		appBaseURL:       appBaseURL,
		exposeResetToken: exposeResetToken,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a login response. Data is set on full
// authentication; RequiresPasswordReset and ResetToken are set on the
// first-login path.
type LoginResponse struct {
	Success               bool       `json:"success"`
	Data                  *TokenData `json:"data,omitempty"`
	RequiresPasswordReset bool       `json:"requiresPasswordReset,omitempty"`
	ResetToken            string     `json:"resetToken,omitempty"`
}

// TokenData carries the issued bearer token.
type TokenData struct {
	Token string `json:"token"`
}

// Login handles user login.
// POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.authService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if result.RequiresPasswordReset {
		httputil.JSON(w, http.StatusOK, LoginResponse{
			Success:               true,
			RequiresPasswordReset: true,
			ResetToken:            result.ResetToken,
		})
		return
	}

	httputil.JSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Data:    &TokenData{Token: result.Token},
	})
}

// ForgotPasswordRequest represents a password reset request.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordResponse always carries the same message regardless of
// whether the account exists. ResetToken is set only in diagnostic mode.
type ForgotPasswordResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ResetToken string `json:"resetToken,omitempty"`
}

const resetRequestedMessage = "If an account exists with that email, a password reset link has been sent"

// RequestPasswordReset handles password reset requests.
// POST /forgot-password
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" {
		httputil.Error(w, http.StatusBadRequest, "email is required")
		return
	}

	token, err := h.authService.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if token != "" && h.emailService != nil {
		resetURL := fmt.Sprintf("%s/reset-password?token=%s", h.appBaseURL, token)
		// A delivery failure must not change the response, or the generic
		// message would leak which accounts exist.
		if err := h.emailService.SendPasswordResetEmail(auth.NormalizeEmail(req.Email), resetURL); err != nil {
			h.logger.Error("failed to send password reset email", "error", err)
		}
	}

	resp := ForgotPasswordResponse{Success: true, Message: resetRequestedMessage}
	if h.exposeResetToken {
		resp.ResetToken = token
	}
	httputil.JSON(w, http.StatusOK, resp)
}

// ResetPasswordRequest represents a password reset completion.
type ResetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// SuccessResponse is the minimal success envelope.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ResetPassword handles password reset completion.
// POST /reset-password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.CompletePasswordReset(r.Context(), req.Token, req.Password, req.ConfirmPassword); err != nil {
		h.writeError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// writeError maps domain error kinds to HTTP responses. Anything outside
// the closed taxonomy is a persistence-class failure, logged server-side
// and reported opaquely.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		httputil.Error(w, http.StatusBadRequest, err.Error())
	case domain.KindAuthenticationFailed:
		httputil.Error(w, http.StatusUnauthorized, err.Error())
	case domain.KindTokenInvalidOrExpired:
		httputil.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
