package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SecretCost is the bcrypt work factor for login secrets. Reset tokens use a
// fast hash instead (see reset.go) since they are high-entropy and single-use.
const SecretCost = 12

// MinSecretLen is the minimum accepted secret length.
const MinSecretLen = 6

// HashSecret hashes a plaintext secret with bcrypt. The salt is generated
// per call, so hashing the same secret twice yields different stored values.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), SecretCost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}

// VerifySecret recomputes and compares, never decrypting the stored hash.
func VerifySecret(secret, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(secret)) == nil
}
