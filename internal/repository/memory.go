package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/VamsiGavva/Qa-monitor/internal/domain"
)

// MemoryStore is an in-memory credential store used in development mode and
// in tests. Operations are last-write-wins, matching the storage semantics
// of the Postgres implementation.
type MemoryStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.UserAccount
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[uuid.UUID]*domain.UserAccount)}
}

func cloneUser(u *domain.UserAccount) *domain.UserAccount {
	c := *u
	return &c
}

// Create persists a new account, enforcing case-insensitive email uniqueness.
func (s *MemoryStore) Create(_ context.Context, user *domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return domain.ErrUserAlreadyExists
		}
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

// GetByID retrieves an account by ID.
func (s *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*domain.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

// GetByEmail retrieves an account by case-insensitive email.
func (s *MemoryStore) GetByEmail(_ context.Context, email string) (*domain.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return cloneUser(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetByResetTokenHash retrieves the account holding the given token hash.
func (s *MemoryStore) GetByResetTokenHash(_ context.Context, tokenHash string) (*domain.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ResetTokenHash != nil && *user.ResetTokenHash == tokenHash {
			return cloneUser(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// SetResetToken stores a reset token hash and expiry, overwriting any
// outstanding token.
func (s *MemoryStore) SetResetToken(_ context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.ResetTokenHash = &tokenHash
	user.ResetTokenExpiresAt = &expiresAt
	user.UpdatedAt = time.Now()
	return nil
}

// CompletePasswordReset applies the reset state transition atomically under
// the store lock.
func (s *MemoryStore) CompletePasswordReset(_ context.Context, userID uuid.UUID, passwordHash string, loginAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.IsFirstLogin = false
	user.ResetTokenHash = nil
	user.ResetTokenExpiresAt = nil
	user.LastLoginAt = &loginAt
	user.UpdatedAt = time.Now()
	return nil
}

// RecordLogin updates the last login timestamp.
func (s *MemoryStore) RecordLogin(_ context.Context, userID uuid.UUID, loginAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.LastLoginAt = &loginAt
	user.UpdatedAt = time.Now()
	return nil
}

// Replace swaps a stored account record wholesale. Used by tests and dev
// seeding to adjust fields the credential lifecycle never touches.
func (s *MemoryStore) Replace(user *domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}
