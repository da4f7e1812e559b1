package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"validation error", NewValidationError("bad input"), KindValidation},
		{"login failed", ErrLoginFailed, KindAuthenticationFailed},
		{"reset token invalid", ErrResetTokenInvalid, KindTokenInvalidOrExpired},
		{"wrapped domain error", fmt.Errorf("handler: %w", ErrLoginFailed), KindAuthenticationFailed},
		{"plain error", errors.New("boom"), 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := NewValidationError("passwords do not match")
	if err.Error() != "passwords do not match" {
		t.Errorf("Error() = %q, want the validation message", err.Error())
	}
}
