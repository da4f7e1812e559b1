package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/VamsiGavva/Qa-monitor/internal/auth"
	"github.com/VamsiGavva/Qa-monitor/internal/config"
	httpserver "github.com/VamsiGavva/Qa-monitor/internal/http"
	"github.com/VamsiGavva/Qa-monitor/internal/notification"
	"github.com/VamsiGavva/Qa-monitor/internal/repository"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var store auth.UserStore
	switch cfg.Store {
	case "memory":
		store = repository.NewMemoryStore()
		logger.Warn("using in-memory store, all data is lost on restart")
	default:
		db, err := repository.NewDB(repository.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := repository.RunMigrations(context.Background(), db); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("connected to database")

		store = repository.NewUsersRepository(db)
	}

	tokens := auth.NewTokenIssuer(auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenTTL,
	})
	authService := auth.NewService(store, tokens)

	if email := os.Getenv("SEED_EMAIL"); email != "" {
		seedAccount(logger, authService, email)
	}

	var emailService *notification.EmailService
	if cfg.HasSMTP() {
		emailService = notification.NewEmailService(notification.EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			FromName: cfg.SMTPFromName,
		})
		logger.Info("email service enabled")
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Logger:             logger,
		AuthService:        authService,
		EmailService:       emailService,
		AppBaseURL:         cfg.AppBaseURL,
		ExposeResetToken:   !cfg.IsProduction(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		RateLimit:          cfg.RateLimit,
	})

	addr := fmt.Sprintf("%s:%d", cfg.ServerAddr, cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "addr", addr, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}

// seedAccount provisions a first-login account from SEED_EMAIL,
// SEED_PASSWORD, and SEED_NAME. Already-existing accounts are left alone.
func seedAccount(logger *slog.Logger, authService *auth.Service, email string) {
	password := os.Getenv("SEED_PASSWORD")
	name := os.Getenv("SEED_NAME")
	if name == "" {
		name = "Administrator"
	}

	user, err := authService.Provision(context.Background(), email, name, password)
	if err != nil {
		logger.Warn("seed account not created", "email", email, "error", err)
		return
	}
	logger.Info("seed account provisioned, first login will require a password reset",
		"email", user.Email, "user_id", user.ID)
}
