package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VamsiGavva/Qa-monitor/internal/domain"
)

// Service implements the credential lifecycle: login, first-login
// enforcement, reset token issuance and consumption.
type Service struct {
	store  UserStore
	tokens *TokenIssuer
	now    func() time.Time
}

// NewService creates an authentication service.
func NewService(store UserStore, tokens *TokenIssuer) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		now:    time.Now,
	}
}

// LoginResult is the outcome of a successful Authenticate call. Exactly one
// of Token or ResetToken is set: a first-login account never receives a
// bearer token, it receives a reset requirement instead.
type LoginResult struct {
	Token                 string
	RequiresPasswordReset bool
	ResetToken            string
	User                  *domain.UserAccount
}

// NormalizeEmail lowercases and trims an email for case-insensitive matching.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Provision creates an account with a provisioned initial secret. The
// account starts in the first-login state and must reset the secret before
// it can receive a bearer token.
func (s *Service) Provision(ctx context.Context, email, name, secret string) (*domain.UserAccount, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email is required")
	}
	if len(secret) < MinSecretLen {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", MinSecretLen))
	}

	hash, err := HashSecret(secret)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &domain.UserAccount{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		IsActive:     true,
		IsFirstLogin: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and either issues a bearer token or,
// for first-login accounts, a reset token. Unknown accounts, inactive
// accounts, and wrong secrets all fail with the same domain.ErrLoginFailed
// so callers cannot enumerate accounts.
func (s *Service) Authenticate(ctx context.Context, email, secret string) (*LoginResult, error) {
	user, err := s.store.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrLoginFailed
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrLoginFailed
	}

	if !VerifySecret(secret, user.PasswordHash) {
		return nil, domain.ErrLoginFailed
	}

	if user.IsFirstLogin {
		resetToken, err := s.issueResetToken(ctx, user)
		if err != nil {
			return nil, err
		}
		return &LoginResult{
			RequiresPasswordReset: true,
			ResetToken:            resetToken,
			User:                  user,
		}, nil
	}

	if err := s.store.RecordLogin(ctx, user.ID, s.now()); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

// RequestPasswordReset issues a reset token for an existing active account.
// For unknown or inactive accounts it returns an empty token and no error;
// the caller responds with the same generic message either way.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.store.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil
		}
		return "", err
	}

	if !user.IsActive {
		return "", nil
	}

	return s.issueResetToken(ctx, user)
}

// issueResetToken generates a token, stores its hash and expiry on the
// account, and returns the plaintext. Any outstanding token is overwritten
// and becomes permanently invalid.
func (s *Service) issueResetToken(ctx context.Context, user *domain.UserAccount) (string, error) {
	raw, err := GenerateResetToken()
	if err != nil {
		return "", err
	}
	if err := s.store.SetResetToken(ctx, user.ID, HashResetToken(raw), s.now().Add(ResetTokenTTL)); err != nil {
		return "", err
	}
	return raw, nil
}

// CompletePasswordReset consumes a reset token and replaces the account
// secret. The secret replacement, token clearing, and first-login flip
// happen as one atomic state transition in the store.
func (s *Service) CompletePasswordReset(ctx context.Context, token, secret, confirm string) error {
	if token == "" {
		return domain.NewValidationError("reset token is required")
	}
	if secret == "" || confirm == "" {
		return domain.NewValidationError("password and confirmation are required")
	}
	if secret != confirm {
		return domain.NewValidationError("passwords do not match")
	}
	if len(secret) < MinSecretLen {
		return domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", MinSecretLen))
	}

	tokenHash := HashResetToken(token)
	user, err := s.store.GetByResetTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return err
	}

	if !user.IsActive || !user.ResetTokenValid(tokenHash, s.now()) {
		return domain.ErrResetTokenInvalid
	}

	hash, err := HashSecret(secret)
	if err != nil {
		return err
	}

	return s.store.CompletePasswordReset(ctx, user.ID, hash, s.now())
}

// Tokens exposes the token issuer for the HTTP auth middleware.
func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

// GetUserByID retrieves an account by ID.
func (s *Service) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.UserAccount, error) {
	return s.store.GetByID(ctx, userID)
}
