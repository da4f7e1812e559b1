package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/VamsiGavva/Qa-monitor/internal/auth"
	"github.com/VamsiGavva/Qa-monitor/internal/config"
	"github.com/VamsiGavva/Qa-monitor/internal/http/features/me"
	"github.com/VamsiGavva/Qa-monitor/internal/http/features/password"
	"github.com/VamsiGavva/Qa-monitor/internal/http/middleware"
	"github.com/VamsiGavva/Qa-monitor/internal/httputil"
	"github.com/VamsiGavva/Qa-monitor/internal/notification"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	EmailService       *notification.EmailService
	AppBaseURL         string
	ExposeResetToken   bool
	MaxRequestBodySize int64
	RateLimit          config.RateLimitConfig
}

// NewRouter creates the HTTP router with all routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.RequestSizeLimit(cfg.MaxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	rateLimiters := middleware.CreateRateLimiters(cfg.RateLimit, cfg.Logger)

	passwordHandler := password.NewHandler(
		cfg.Logger,
		cfg.AuthService,
		cfg.EmailService,
		cfg.AppBaseURL,
		cfg.ExposeResetToken,
	)
	r.Group(func(r chi.Router) {
		r.Use(rateLimiters["auth"])
		r.Post("/login", passwordHandler.Login)
	})
	r.Group(func(r chi.Router) {
		r.Use(rateLimiters["reset"])
		r.Post("/forgot-password", passwordHandler.RequestPasswordReset)
		r.Post("/reset-password", passwordHandler.ResetPassword)
	})

	meHandler := me.NewHandler(cfg.Logger, cfg.AuthService)
	r.With(middleware.Auth(cfg.AuthService.Tokens())).Get("/me", meHandler.GetMe)

	return r
}
