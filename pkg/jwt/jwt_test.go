package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 72*time.Hour)

	token, err := m.GenerateAccessToken("4b8c0d7e-5a7f-4f4e-9d8a-111122223333", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "4b8c0d7e-5a7f-4f4e-9d8a-111122223333", claims.AccountID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "access", claims.Type)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 72*time.Hour)

	token, err := m.GenerateRefreshToken("4b8c0d7e-5a7f-4f4e-9d8a-111122223333")
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "4b8c0d7e-5a7f-4f4e-9d8a-111122223333", claims.AccountID)
	assert.Equal(t, "refresh", claims.Type)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := NewManager("secret-a", 15*time.Minute, 72*time.Hour)
	other := NewManager("secret-b", 15*time.Minute, 72*time.Hour)

	token, err := m.GenerateAccessToken("id", "a@b.com")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateAccessRejectsRefreshToken(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 72*time.Hour)

	token, err := m.GenerateRefreshToken("id")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.ErrorContains(t, err, "expected access")
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 72*time.Hour)

	token, err := m.GenerateAccessToken("id", "a@b.com")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}
