package auth

import (
	"encoding/base64"
	"testing"
)

func TestGenerateResetToken_Entropy(t *testing.T) {
	token, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken failed: %v", err)
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("token is not base64url: %v", err)
	}
	if len(raw) != resetTokenLen {
		t.Errorf("token carries %d bytes, want %d", len(raw), resetTokenLen)
	}

	other, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken failed: %v", err)
	}
	if token == other {
		t.Error("two generated tokens should not collide")
	}
}

func TestHashResetToken_Deterministic(t *testing.T) {
	token := "some-reset-token"

	first := HashResetToken(token)
	second := HashResetToken(token)
	if first != second {
		t.Error("hashing the same token twice should yield the same value")
	}
	if first == token {
		t.Error("stored form must not equal the plaintext token")
	}
	if len(first) != 64 {
		t.Errorf("stored form is %d chars, want 64 hex chars", len(first))
	}

	if HashResetToken("different-token") == first {
		t.Error("different tokens should hash differently")
	}
}
