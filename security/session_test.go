package security

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-signing-secret")

func TestSessionExpiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewSession("u1", "Ann Lee", "Manager", now)

	assert.Equal(t, now.Add(15*24*time.Hour), s.ExpiresAt)

	tests := []struct {
		name    string
		at      time.Time
		expired bool
	}{
		{name: "Just issued", at: now, expired: false},
		{name: "One nanosecond before expiry", at: s.ExpiresAt.Add(-time.Nanosecond), expired: false},
		{name: "At expiry", at: s.ExpiresAt, expired: true},
		{name: "After expiry", at: s.ExpiresAt.Add(time.Hour), expired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, IsExpired(s, tt.at))
		})
	}
}

func TestRefresh(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewSession("u1", "Ann Lee", "Manager", now)

	later := now.Add(10 * 24 * time.Hour)
	refreshed := Refresh(s, later)

	assert.Equal(t, later.Add(SessionTTL), refreshed.ExpiresAt)
	assert.Equal(t, now, refreshed.IssuedAt)
	assert.Equal(t, now.Add(SessionTTL), s.ExpiresAt)
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewSession("u1", "Ann Lee", "Manager", now)

	token, err := IssueToken(s, secret)
	require.NoError(t, err)

	parsed, err := ParseToken(token, secret, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "u1", parsed.Subject)
	assert.Equal(t, "Ann Lee", parsed.Name)
	assert.Equal(t, "Manager", parsed.Role)
	assert.True(t, s.ExpiresAt.Equal(parsed.ExpiresAt))
	assert.True(t, s.IssuedAt.Equal(parsed.IssuedAt))
}

func TestParseTokenRejects(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewSession("u1", "Ann Lee", "Manager", now)
	token, err := IssueToken(s, secret)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other-secret"), now)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("garbage", secret, now)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(token, secret, s.ExpiresAt)
	assert.ErrorIs(t, err, ErrSessionExpired)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	foreignToken, err := foreign.SignedString(secret)
	require.NoError(t, err)
	_, err = ParseToken(foreignToken, secret, now)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := NewSession("u1", "Ann Lee", "Manager", time.Now())
	got, ok := FromContext(WithSession(context.Background(), s))
	require.True(t, ok)
	assert.Equal(t, s, got)
}
