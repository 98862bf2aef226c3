package token

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// refreshTokenBytes is the entropy drawn for each refresh token before
// base64 encoding.
const refreshTokenBytes = 64

// Claims are the access-token claims: the registered set plus the account
// email. The jti claim carries a unique id per token so that a future
// revocation list can reference individual tokens.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// JWTIssuer implements Issuer with HS256-signed JWTs.
type JWTIssuer struct {
	cfg Config
}

func NewJWTIssuer(cfg Config) *JWTIssuer {
	return &JWTIssuer{cfg: cfg}
}

func (i *JWTIssuer) GenerateAccessToken(email string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.AccessTokenValidity)),
		},
		Email: email,
	})

	return token.SignedString(i.cfg.SecretKey)
}

func (i *JWTIssuer) GenerateRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// GetEmailFromToken validates an access token signature and expiry and
// returns the embedded email claim.
func GetEmailFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", ErrInvalidToken
	}

	return claims.Email, nil
}
