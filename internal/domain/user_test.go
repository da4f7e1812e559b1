package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func accountWithToken(hash string, expiresAt time.Time) *UserAccount {
	return &UserAccount{
		ID:                  uuid.New(),
		Email:               "user@x.com",
		ResetTokenHash:      &hash,
		ResetTokenExpiresAt: &expiresAt,
	}
}

func TestResetTokenValid(t *testing.T) {
	issued := time.Now()
	expiry := issued.Add(10 * time.Minute)

	tests := []struct {
		name      string
		account   *UserAccount
		presented string
		now       time.Time
		want      bool
	}{
		{
			name:      "matching token inside window",
			account:   accountWithToken("tokenhash", expiry),
			presented: "tokenhash",
			now:       issued.Add(9 * time.Minute),
			want:      true,
		},
		{
			name:      "matching token past expiry",
			account:   accountWithToken("tokenhash", expiry),
			presented: "tokenhash",
			now:       issued.Add(10*time.Minute + time.Second),
			want:      false,
		},
		{
			name:      "matching token exactly at expiry",
			account:   accountWithToken("tokenhash", expiry),
			presented: "tokenhash",
			now:       expiry,
			want:      false,
		},
		{
			name:      "wrong token inside window",
			account:   accountWithToken("tokenhash", expiry),
			presented: "otherhash",
			now:       issued,
			want:      false,
		},
		{
			name:      "no outstanding token",
			account:   &UserAccount{ID: uuid.New()},
			presented: "tokenhash",
			now:       issued,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.account.ResetTokenValid(tt.presented, tt.now); got != tt.want {
				t.Errorf("ResetTokenValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasResetToken(t *testing.T) {
	if (&UserAccount{}).HasResetToken() {
		t.Error("account without token fields should not report an outstanding reset")
	}

	hash := "h"
	if (&UserAccount{ResetTokenHash: &hash}).HasResetToken() {
		t.Error("hash without expiry must not count as an outstanding reset")
	}

	expiry := time.Now()
	if !accountWithToken("h", expiry).HasResetToken() {
		t.Error("hash with expiry should count as an outstanding reset")
	}
}
