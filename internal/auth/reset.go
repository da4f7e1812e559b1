package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// resetTokenLen is the raw token length in bytes (256 bits of entropy).
	resetTokenLen = 32

	// ResetTokenTTL is the validity window of an issued reset token,
	// checked lazily on use.
	ResetTokenTTL = 10 * time.Minute
)

// GenerateResetToken returns a new cryptographically random reset token.
// The plaintext is handed to the requester exactly once and never persisted.
func GenerateResetToken() (string, error) {
	buf := make([]byte, resetTokenLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashResetToken computes the stored form of a reset token. SHA-256 is
// sufficient here because the token itself carries the entropy.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
