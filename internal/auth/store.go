package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/VamsiGavva/Qa-monitor/internal/domain"
)

// UserStore is the credential store consumed by the Service.
// internal/repository provides the Postgres implementation and an in-memory
// one for tests and development.
type UserStore interface {
	// Create persists a new account. Returns domain.ErrUserAlreadyExists
	// when the email is taken (case-insensitive).
	Create(ctx context.Context, user *domain.UserAccount) error

	// GetByID looks up an account by ID.
	// Returns domain.ErrUserNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserAccount, error)

	// GetByEmail looks up an account by case-insensitive email.
	// Returns domain.ErrUserNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error)

	// GetByResetTokenHash looks up the account holding the given reset
	// token hash. Returns domain.ErrUserNotFound when no account matches.
	GetByResetTokenHash(ctx context.Context, tokenHash string) (*domain.UserAccount, error)

	// SetResetToken stores a reset token hash and expiry on the account,
	// overwriting any outstanding token.
	SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error

	// CompletePasswordReset replaces the secret hash, clears the reset
	// token, flips off first-login, and records the login time as one
	// atomic state transition.
	CompletePasswordReset(ctx context.Context, userID uuid.UUID, passwordHash string, loginAt time.Time) error

	// RecordLogin updates the account's last login timestamp.
	RecordLogin(ctx context.Context, userID uuid.UUID, loginAt time.Time) error
}
