package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the readable part of a bearer token.
type TokenClaims struct {
	Subject   string
	ExpiresAt *time.Time
}

// Expired reports whether the token carries an expiry before now.
func (c *TokenClaims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// InspectToken decodes a JWT's claims without verifying its signature.
//
// The client never holds the signing key; the server remains the authority on validity.
func InspectToken(raw string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("token is not a JWT: %w", err)
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("invalid sub claim: %w", err)
	}

	result := &TokenClaims{Subject: subject}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp != nil {
		t := exp.Time
		result.ExpiresAt = &t
	}

	return result, nil
}
