package accounts_test

import (
	"testing"

	accounts "github.com/example/go-accounts"
	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "securePassword123!",
			wantErr:  false,
		},
		{
			name:     "Empty password",
			password: "",
			wantErr:  true, // bcrypt can hash empty strings!
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := accounts.HashPassword(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)

			err = accounts.ComparePasswordAndHash(tt.password, hash)
			assert.NoError(t, err)
		})
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	h1, err := accounts.HashPassword("same input")
	assert.NoError(t, err)

	h2, err := accounts.HashPassword("same input")
	assert.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, accounts.VerifyPassword("same input", h1))
	assert.True(t, accounts.VerifyPassword("same input", h2))
}

func TestComparePasswordAndHash(t *testing.T) {
	password := "testPassword123!"
	hash, err := accounts.HashPassword(password)
	assert.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  bool
	}{
		{
			name:     "Matching password",
			password: password,
			hash:     hash,
			wantErr:  false,
		},
		{
			name:     "Wrong password",
			password: "not the password",
			hash:     hash,
			wantErr:  true,
		},
		{
			name:     "Malformed hash",
			password: password,
			hash:     "$2a$garbage",
			wantErr:  true,
		},
		{
			name:     "Empty hash",
			password: password,
			hash:     "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounts.ComparePasswordAndHash(tt.password, tt.hash)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVerifyPasswordFailsClosed(t *testing.T) {
	hash, err := accounts.HashPassword("p")
	assert.NoError(t, err)

	assert.True(t, accounts.VerifyPassword("p", hash))
	assert.False(t, accounts.VerifyPassword("q", hash))
	assert.False(t, accounts.VerifyPassword("p", "not a bcrypt hash"))
	assert.False(t, accounts.VerifyPassword("p", ""))
}
