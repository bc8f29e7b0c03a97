package models

import (
	"testing"
	"time"
)

func TestResetTokenValidAt(t *testing.T) {
	now := time.Date(2024, 2, 5, 12, 0, 0, 0, time.UTC)
	token := "abc123"
	future := now.Add(15 * time.Minute)
	past := now.Add(-time.Minute)

	tests := []struct {
		name string
		user User
		want bool
	}{
		{"valid token with future expiry", User{ResetPasswordToken: &token, ResetPasswordTokenExpiresAt: &future}, true},
		{"expired token", User{ResetPasswordToken: &token, ResetPasswordTokenExpiresAt: &past}, false},
		{"token without expiry on record", User{ResetPasswordToken: &token}, false},
		{"no token at all", User{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.ResetTokenValidAt(now); got != tc.want {
				t.Errorf("ResetTokenValidAt = %v, want %v", got, tc.want)
			}
		})
	}
}
