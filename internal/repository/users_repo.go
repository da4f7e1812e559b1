package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/VamsiGavva/Qa-monitor/internal/domain"
)

const uniqueViolation = "23505"

// UsersRepository handles user account persistence in Postgres.
type UsersRepository struct {
	db *sql.DB
}

// NewUsersRepository creates a new users repository.
func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

const userColumns = `id, email, name, password_hash, is_active, is_first_login,
       reset_token_hash, reset_token_expires_at, last_login_at, created_at, updated_at`

func scanUser(row *sql.Row) (*domain.UserAccount, error) {
	user := &domain.UserAccount{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&user.IsActive, &user.IsFirstLogin,
		&user.ResetTokenHash, &user.ResetTokenExpiresAt, &user.LastLoginAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create creates a new user account.
func (r *UsersRepository) Create(ctx context.Context, user *domain.UserAccount) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, is_active, is_first_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash,
		user.IsActive, user.IsFirstLogin, user.CreatedAt, user.UpdatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrUserAlreadyExists
	}
	return err
}

// GetByID retrieves a user by ID.
func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserAccount, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by case-insensitive email.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByResetTokenHash retrieves the user holding the given reset token hash.
func (r *UsersRepository) GetByResetTokenHash(ctx context.Context, tokenHash string) (*domain.UserAccount, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token_hash = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, tokenHash))
}

// SetResetToken stores a reset token hash and expiry, overwriting any
// outstanding token.
func (r *UsersRepository) SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET reset_token_hash = $2, reset_token_expires_at = $3, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, userID, tokenHash, expiresAt)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// CompletePasswordReset replaces the secret hash, clears the reset token,
// flips off first-login, and records the login time in a single update so a
// crash cannot leave a valid token pointing at an unchanged secret.
func (r *UsersRepository) CompletePasswordReset(ctx context.Context, userID uuid.UUID, passwordHash string, loginAt time.Time) error {
	query := `
		UPDATE users
		SET password_hash = $2,
		    is_first_login = FALSE,
		    reset_token_hash = NULL,
		    reset_token_expires_at = NULL,
		    last_login_at = $3,
		    updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, userID, passwordHash, loginAt)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// RecordLogin updates the last login timestamp.
func (r *UsersRepository) RecordLogin(ctx context.Context, userID uuid.UUID, loginAt time.Time) error {
	query := `UPDATE users SET last_login_at = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, userID, loginAt)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
