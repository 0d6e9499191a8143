package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartwallet/smartwallet/internal/common"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "correct1horse", wantErr: false},
		{name: "exactly eight chars", password: "abcdefg1", wantErr: false},
		{name: "too short", password: "abc1", wantErr: true},
		{name: "letters only", password: "abcdefghij", wantErr: true},
		{name: "digits only", password: "1234567890", wantErr: true},
		{name: "empty", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrWeakPassword)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct1horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct1horse", hash)

	require.NoError(t, VerifyPassword(hash, "correct1horse"))

	err = VerifyPassword(hash, "wrong1password")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	err = VerifyPassword("not-a-bcrypt-hash", "correct1horse")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestHashPasswordRejectsWeak(t *testing.T) {
	_, err := HashPassword("short1")
	assert.ErrorIs(t, err, common.ErrWeakPassword)
}
