package accounts_test

import (
	"testing"
	"time"

	accounts "github.com/example/go-accounts"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("test-signing-key")

func TestTokenServiceRoundTrip(t *testing.T) {
	ts := accounts.NewTokenService(testSigningKey, 30*time.Minute, "go-accounts", nil)

	token, err := ts.Generate("johndoe", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := ts.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "johndoe", subject)
}

func TestTokenServiceDefaultTTL(t *testing.T) {
	ts := accounts.NewTokenService(testSigningKey, 0, "", nil)
	assert.Equal(t, accounts.DefaultTokenTTL, ts.TTL())

	// Zero caller TTL falls back to the service default; the token is
	// immediately usable.
	token, err := ts.Generate("johndoe", 0)
	require.NoError(t, err)

	subject, err := ts.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "johndoe", subject)
}

func TestTokenServiceRejectsEmptySubject(t *testing.T) {
	ts := accounts.NewTokenService(testSigningKey, time.Minute, "", nil)

	_, err := ts.Generate("", time.Minute)
	assert.Error(t, err)
}

func TestTokenServiceValidateFailures(t *testing.T) {
	ts := accounts.NewTokenService(testSigningKey, time.Minute, "go-accounts", nil)
	other := accounts.NewTokenService([]byte("a different key"), time.Minute, "go-accounts", nil)

	expired, err := ts.SignClaims(&accounts.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "go-accounts",
			Subject:   "johndoe",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	require.NoError(t, err)

	noSubject, err := ts.SignClaims(&accounts.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "go-accounts",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)

	foreign, err := other.Generate("johndoe", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "Expired token", token: expired},
		{name: "Tampered signature", token: foreign},
		{name: "Missing subject", token: noSubject},
		{name: "Malformed token", token: "not.a.jwt"},
		{name: "Empty token", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.Validate(tt.token)
			// Every failure mode surfaces as the same opaque error.
			assert.ErrorIs(t, err, accounts.ErrCredentialsUnverifiable)
		})
	}
}

func TestTokenServiceRejectsWrongIssuer(t *testing.T) {
	issuerA := accounts.NewTokenService(testSigningKey, time.Minute, "issuer-a", nil)
	issuerB := accounts.NewTokenService(testSigningKey, time.Minute, "issuer-b", nil)

	token, err := issuerA.Generate("johndoe", time.Minute)
	require.NoError(t, err)

	_, err = issuerB.Validate(token)
	assert.Error(t, err)
}

func TestTokenServiceRejectsNoneAlgorithm(t *testing.T) {
	ts := accounts.NewTokenService(testSigningKey, time.Minute, "", nil)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &accounts.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "johndoe",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ts.Validate(token)
	assert.ErrorIs(t, err, accounts.ErrCredentialsUnverifiable)
}
