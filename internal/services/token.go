package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer mints and checks HS256 bearer tokens bound to a username.
// There is no revocation list: a token stays valid for its whole TTL.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer signing with secret.
func NewTokenIssuer(secret []byte) *TokenIssuer {
	return &TokenIssuer{secret: secret, now: time.Now}
}

// WithClock replaces the clock used for issuing and validation.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	t.now = now
	return t
}

// Issue returns a signed token for username expiring ttl from now.
func (t *TokenIssuer) Issue(username string, ttl time.Duration) (string, time.Time, error) {
	now := t.now()
	// exp is carried in whole seconds; report the instant the token really dies.
	exp := jwt.NewNumericDate(now.Add(ttl))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: exp,
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, exp.Time, nil
}

// Parse verifies signature and expiry and returns the token's subject.
// Every failure is reported as ErrUnauthorized.
func (t *TokenIssuer) Parse(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	// exp is exclusive: a token expiring "now" is already dead, so ttl 0 never works.
	if !t.now().Before(claims.ExpiresAt.Time) {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, jwt.ErrTokenExpired)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, errors.New("token has no subject"))
	}
	return claims.Subject, nil
}
