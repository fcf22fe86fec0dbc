package utils

import (
	"testing"
	"time"

	"vidtube-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager(&config.JWTConfig{
		Issuer:              "vidtube-test",
		AccessSecret:        "access-secret",
		AccessExpireMinutes: 15,
		RefreshSecret:       "refresh-secret",
		RefreshExpireHours:  24,
	})
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, VerifyPassword("s3cret", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken(TokenIdentity{UserID: 7, Username: "alice", Email: "a@x.io", FullName: "Alice"})
	require.NoError(t, err)

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "vidtube-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := newTestManager()

	refresh, err := m.GenerateRefreshToken(7)
	require.NoError(t, err)
	_, err = m.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, err := m.GenerateAccessToken(TokenIdentity{UserID: 7})
	require.NoError(t, err)
	_, err = m.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	m := newTestManager()
	a, err := m.GenerateRefreshToken(1)
	require.NoError(t, err)
	b, err := m.GenerateRefreshToken(1)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestExpiredToken(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := m.GenerateAccessToken(TokenIdentity{UserID: 1})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestGarbageToken(t *testing.T) {
	_, err := newTestManager().ParseAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
