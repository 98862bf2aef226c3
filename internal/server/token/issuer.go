// Package token mints the two credentials handed out by the auth service:
// signed, time-bounded JWT access tokens and opaque random refresh tokens.
package token

import (
	"errors"
	"time"
)

// ErrInvalidToken is returned when an access token fails validation.
var ErrInvalidToken = errors.New("invalid token")

// Issuer mints access and refresh tokens. Implementations are stateless and
// never touch storage.
type Issuer interface {
	// GenerateAccessToken returns a signed token bound to the given email,
	// expiring after the configured validity.
	GenerateAccessToken(email string) (string, error)

	// GenerateRefreshToken returns an opaque high-entropy random string with
	// no embedded structure.
	GenerateRefreshToken() (string, error)
}

// Config carries the signing parameters for access tokens. It is passed
// explicitly to the issuer constructor rather than read from ambient state.
type Config struct {
	SecretKey           []byte
	Issuer              string
	Audience            string
	AccessTokenValidity time.Duration
}
