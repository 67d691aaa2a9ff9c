// Package utils provides helpers for issuing and reading session tokens.
package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionToken is a signed HS256 JWT naming the roster user selected at
// login. It grants nothing: the server only reads it to label logs and rate
// limit keys.
type SessionToken struct {
	Token string    `json:"token"`
	Exp   time.Time `json:"expires_at"`
}

// SessionClaims are the claims carried by a SessionToken.
type SessionClaims struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// NewSessionToken signs a token for userID with the given role, valid for
// ttl from now.
func NewSessionToken(secret, userID, role, name string, ttl time.Duration, now time.Time) (SessionToken, error) {
	if secret == "" {
		return SessionToken{}, errors.New("empty signing secret")
	}
	now = now.UTC()
	exp := now.Add(ttl)
	claims := SessionClaims{
		Role: role,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, fmt.Errorf("sign session token: %w", err)
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies raw against secret and returns its claims.
// Only HMAC-signed tokens are accepted.
func ParseSessionToken(secret, raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}
