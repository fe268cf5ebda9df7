package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		SigningKey:       "test-signing-key",
		AccessTokenHours: 1,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	j := NewJWTToken(testConfig())

	token, err := j.CreateToken(TokenObject{UserID: 42, Email: "jane@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verified, err := j.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), verified.UserID)
	assert.Equal(t, "jane@example.com", verified.Email)
}

func TestVerifyTokenRejectsWrongKey(t *testing.T) {
	j := NewJWTToken(testConfig())
	token, err := j.CreateToken(TokenObject{UserID: 42, Email: "jane@example.com"})
	require.NoError(t, err)

	other := NewJWTToken(&Config{SigningKey: "different-key", AccessTokenHours: 1})
	_, err = other.VerifyToken(token)
	require.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	expired := NewJWTToken(&Config{SigningKey: "test-signing-key", AccessTokenHours: -1})
	token, err := expired.CreateToken(TokenObject{UserID: 1, Email: "old@example.com"})
	require.NoError(t, err)

	_, err = expired.VerifyToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	j := NewJWTToken(testConfig())
	_, err := j.VerifyToken("not-a-token")
	require.Error(t, err)
}
