package domain

import (
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
)

// UserAccount is the persisted account record. The secret is only ever held
// as a bcrypt hash; reset token hash and expiry are set and cleared together.
type UserAccount struct {
	ID                  uuid.UUID
	Email               string
	Name                string
	PasswordHash        string
	IsActive            bool
	IsFirstLogin        bool
	ResetTokenHash      *string
	ResetTokenExpiresAt *time.Time
	LastLoginAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasResetToken reports whether a reset is outstanding on the account.
func (u *UserAccount) HasResetToken() bool {
	return u.ResetTokenHash != nil && u.ResetTokenExpiresAt != nil
}

// ResetTokenValid checks a presented token hash against the stored one and
// requires the expiry to be strictly in the future. An expired-but-matching
// token is rejected.
func (u *UserAccount) ResetTokenValid(presentedHash string, now time.Time) bool {
	if !u.HasResetToken() {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(*u.ResetTokenHash), []byte(presentedHash)) != 1 {
		return false
	}
	return now.Before(*u.ResetTokenExpiresAt)
}
