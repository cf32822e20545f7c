package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// SessionTokens issues and verifies the signed cookie handed out after a
// successful passphrase check. With one shared passphrase there is no user
// record to key a server-side session on, so the session is a stateless
// HMAC-signed token carrying only an ID and an expiry.
type SessionTokens struct {
	secret   []byte
	duration time.Duration
}

// NewSessionTokens creates a token issuer/verifier
func NewSessionTokens(secret string, duration time.Duration) *SessionTokens {
	return &SessionTokens{secret: []byte(secret), duration: duration}
}

// Issue creates a fresh session token and returns it with its ID
func (s *SessionTokens) Issue(now time.Time) (token string, id string, err error) {
	id = uuid.New().String()
	claims := jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, id, nil
}

// Verify checks signature and expiry, returning the token's session ID
func (s *SessionTokens) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}

// Duration returns the configured session lifetime
func (s *SessionTokens) Duration() time.Duration {
	return s.duration
}
