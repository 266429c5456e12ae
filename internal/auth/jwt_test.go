package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestManager(t *testing.T, ttl time.Duration) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("access-secret", "refresh-secret", ttl)
	assert.NoError(t, err)
	return m
}

func TestNewTokenManager_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("", "refresh", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenManager("access", "", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenManager("same", "same", time.Hour)
	assert.Error(t, err)

	m, err := NewTokenManager("access", "refresh", 0)
	assert.NoError(t, err)
	assert.Equal(t, 24*time.Hour, m.AccessTTL())
}

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()
	m := newTestManager(t, time.Hour)

	token, err := m.GenerateAccessToken("user-1", "user@test.com", "trainer")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.ParseAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@test.com", claims.Email)
	assert.Equal(t, "trainer", claims.Role)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	t.Parallel()
	m := newTestManager(t, time.Hour)

	token, err := m.GenerateRefreshToken("user-1", "user@test.com")
	assert.NoError(t, err)

	claims, err := m.ParseRefreshToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@test.com", claims.Email)
}

func TestRefreshToken_EachIssuanceIsUnique(t *testing.T) {
	t.Parallel()
	m := newTestManager(t, time.Hour)

	first, err := m.GenerateRefreshToken("user-1", "user@test.com")
	assert.NoError(t, err)
	second, err := m.GenerateRefreshToken("user-1", "user@test.com")
	assert.NoError(t, err)

	// Identical user and issue time still yield distinct tokens via the jti.
	assert.NotEqual(t, first, second)

	claims, err := m.ParseRefreshToken(first)
	assert.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestAccessToken_Expired(t *testing.T) {
	t.Parallel()
	m := newTestManager(t, -time.Minute)

	token, err := m.GenerateAccessToken("user-1", "user@test.com", "client")
	assert.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenKinds_DoNotCrossVerify(t *testing.T) {
	t.Parallel()
	m := newTestManager(t, time.Hour)

	access, err := m.GenerateAccessToken("user-1", "user@test.com", "client")
	assert.NoError(t, err)
	refresh, err := m.GenerateRefreshToken("user-1", "user@test.com")
	assert.NoError(t, err)

	_, err = m.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccessToken_Garbage(t *testing.T) {
	t.Parallel()
	m := newTestManager(t, time.Hour)

	_, err := m.ParseAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	other, err := NewTokenManager("different-access", "different-refresh", time.Hour)
	assert.NoError(t, err)
	token, err := other.GenerateAccessToken("user-1", "user@test.com", "client")
	assert.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
