package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long a signed-in staff session stays valid.
const SessionTTL = 15 * 24 * time.Hour

const issuer = "gymdesk"

var (
	ErrSessionExpired = errors.New("session expired")
	ErrInvalidToken   = errors.New("invalid token")
)

type Session struct {
	Subject   string    `json:"subject"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func NewSession(subject, name, role string, now time.Time) Session {
	return Session{
		Subject:   subject,
		Name:      name,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(SessionTTL),
	}
}

// IsExpired reports whether s is no longer valid at now. The expiry instant itself is expired.
func IsExpired(s Session, now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Refresh re-stamps the expiry from now.
func Refresh(s Session, now time.Time) Session {
	s.ExpiresAt = now.Add(SessionTTL)
	return s
}

type SessionClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs s with HS256.
func IssueToken(s Session, secret []byte) (string, error) {
	claims := SessionClaims{
		Name: s.Name,
		Role: s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.Subject,
			IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies the signature and returns the session. Expiry is checked against now
// rather than the wall clock so callers and tests agree on one instant.
func ParseToken(tokenStr string, secret []byte, now time.Time) (Session, error) {
	var claims SessionClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !token.Valid {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Issuer != issuer {
		return Session{}, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return Session{}, fmt.Errorf("%w: missing subject or expiry", ErrInvalidToken)
	}

	s := Session{
		Subject:   claims.Subject,
		Name:      claims.Name,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}

	if IsExpired(s, now) {
		return s, ErrSessionExpired
	}
	return s, nil
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
