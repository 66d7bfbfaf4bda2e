// Package jwt issues and validates the access tokens of the reference
// document server.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Service provides JWT token generation and validation
type Service struct {
	secret []byte
	ttl    time.Duration
}

// Claims carries the token payload: the subject is the client ID.
type Claims struct {
	jwt.RegisteredClaims
}

// NewService creates a new JWT service.
// secret should be a cryptographically secure random string.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// GenerateAccessToken creates a signed access token for a client.
// Returns the token and its lifetime in seconds.
func (s *Service) GenerateAccessToken(clientID string) (string, int64, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}

	return token, int64(s.ttl.Seconds()), nil
}

// ValidateAccessToken verifies the signature and expiry of an access
// token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	return claims, nil
}

// ClientID returns the subject of the claims.
func (c *Claims) ClientID() string {
	return c.Subject
}
