// Package services contains the server-side business logic. AuthService owns
// every token-lifecycle decision: duplicate detection on registration,
// credential verification, refresh-token rotation and expiry checks. Storage
// and crypto outcomes reach it as result.Result values and leave it the same
// way; the transport layer only translates status codes.
package services

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/daterapp/auth/internal/logging"
	"github.com/daterapp/auth/internal/result"
	"github.com/daterapp/auth/internal/server/hasher"
	"github.com/daterapp/auth/internal/server/models"
	"github.com/daterapp/auth/internal/server/repositories/accounts"
	"github.com/daterapp/auth/internal/server/token"
)

// AccountRequest is the registration/login request DTO.
type AccountRequest struct {
	Email    string
	Password string
}

// AccountResponse is returned on every successful auth operation. The
// refresh token is always the freshly rotated value, never a pre-rotation one.
type AccountResponse struct {
	Email        string
	AccessToken  string
	RefreshToken string
}

// AuthService implements Register, Login and RefreshTokens over the account
// store, the password hasher and the token issuer. It is stateless between
// calls; all shared state lives in the store.
type AuthService struct {
	accounts             accounts.Repository
	hasher               hasher.Hasher
	issuer               token.Issuer
	logger               logging.Logger
	refreshTokenValidity time.Duration
}

func NewAuthService(repo accounts.Repository, h hasher.Hasher, issuer token.Issuer, logger logging.Logger, refreshTokenValidity time.Duration) *AuthService {
	return &AuthService{
		accounts:             repo,
		hasher:               h,
		issuer:               issuer,
		logger:               logger.With("module", "auth_service"),
		refreshTokenValidity: refreshTokenValidity,
	}
}

// Register creates a new account and returns its first token pair with
// status 201. Duplicate emails are rejected with 409 before any mutation.
func (s *AuthService) Register(ctx context.Context, req *AccountRequest) result.Result[*AccountResponse] {
	if req == nil {
		return result.Error[*AccountResponse](http.StatusBadRequest, "invalid registration request")
	}
	if req.Email == "" || req.Password == "" {
		return result.Error[*AccountResponse](http.StatusBadRequest, "email and password cannot be empty")
	}

	existing := s.accounts.GetByEmail(ctx, req.Email)
	if existing.IsSuccess() {
		s.logger.Warn(ctx, "registration rejected, email taken", "email", req.Email)
		return result.Error[*AccountResponse](http.StatusConflict, "account already exists")
	}
	if existing.StatusCode != http.StatusNotFound {
		return result.Error[*AccountResponse](existing.StatusCode, existing.ErrorMessage)
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return result.Error[*AccountResponse](http.StatusInternalServerError, "internal error")
	}

	refreshToken, err := s.issuer.GenerateRefreshToken()
	if err != nil {
		s.logger.Error(ctx, "refresh token generation failed", "error", err)
		return result.Error[*AccountResponse](http.StatusInternalServerError, "internal error")
	}

	account := &models.Account{
		Email:              req.Email,
		HashedPassword:     digest,
		RefreshToken:       refreshToken,
		RefreshTokenExpiry: time.Now().Add(s.refreshTokenValidity),
	}

	added := s.accounts.Add(ctx, account)
	if !added.IsSuccess() {
		s.logger.Error(ctx, "account persist failed", "email", req.Email, "status", added.StatusCode)
		return result.Error[*AccountResponse](added.StatusCode, added.ErrorMessage)
	}

	accessToken, err := s.issuer.GenerateAccessToken(account.Email)
	if err != nil {
		s.logger.Error(ctx, "access token generation failed", "error", err)
		return result.Error[*AccountResponse](http.StatusInternalServerError, "internal error")
	}

	s.logger.Info(ctx, "account registered", "email", account.Email, "id", account.ID)

	return result.SuccessWithStatus(&AccountResponse{
		Email:        account.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, http.StatusCreated)
}

// Login verifies the credentials, rotates the refresh token and returns the
// new pair. Success is only reported after the rotation is durably stored.
func (s *AuthService) Login(ctx context.Context, req *AccountRequest) result.Result[*AccountResponse] {
	if req == nil {
		return result.Error[*AccountResponse](http.StatusBadRequest, "invalid login request")
	}
	if req.Email == "" || req.Password == "" {
		return result.Error[*AccountResponse](http.StatusBadRequest, "email and password cannot be empty")
	}

	found := s.accounts.GetByEmail(ctx, req.Email)
	if !found.IsSuccess() {
		return result.Error[*AccountResponse](found.StatusCode, found.ErrorMessage)
	}
	account := found.Value

	if !s.hasher.Verify(req.Password, account.HashedPassword) {
		s.logger.Warn(ctx, "login rejected, wrong password", "email", req.Email)
		return result.Error[*AccountResponse](http.StatusUnauthorized, "incorrect password")
	}

	res := s.rotate(ctx, account)
	if res.IsSuccess() {
		s.logger.Info(ctx, "login succeeded", "email", account.Email)
	}
	return res
}

// RefreshTokens exchanges a valid refresh token for a fresh pair. Tokens are
// single-use: the rotation replaces the stored value before success is
// reported, so presenting the same token twice fails the second time.
func (s *AuthService) RefreshTokens(ctx context.Context, email string, refreshToken string) result.Result[*AccountResponse] {
	if email == "" || refreshToken == "" {
		return result.Error[*AccountResponse](http.StatusBadRequest, "email and refresh token cannot be empty")
	}

	found := s.accounts.GetByEmail(ctx, email)
	if !found.IsSuccess() {
		return result.Error[*AccountResponse](found.StatusCode, found.ErrorMessage)
	}
	account := found.Value

	if subtle.ConstantTimeCompare([]byte(account.RefreshToken), []byte(refreshToken)) != 1 {
		s.logger.Warn(ctx, "refresh rejected, token mismatch", "email", email)
		return result.Error[*AccountResponse](http.StatusUnauthorized, "invalid refresh token")
	}

	if account.RefreshTokenExpiry.Before(time.Now()) {
		s.logger.Warn(ctx, "refresh rejected, token expired", "email", email)
		return result.Error[*AccountResponse](http.StatusUnauthorized, "refresh token has expired")
	}

	res := s.rotate(ctx, account)
	if res.IsSuccess() {
		s.logger.Info(ctx, "tokens refreshed", "email", email)
	}
	return res
}

// rotate replaces the account's refresh token and expiry, mints a new access
// token and persists the account. Store failures propagate verbatim; no
// token pair leaves this function unless the rotation is durable.
func (s *AuthService) rotate(ctx context.Context, account *models.Account) result.Result[*AccountResponse] {
	refreshToken, err := s.issuer.GenerateRefreshToken()
	if err != nil {
		s.logger.Error(ctx, "refresh token generation failed", "error", err)
		return result.Error[*AccountResponse](http.StatusInternalServerError, "internal error")
	}

	accessToken, err := s.issuer.GenerateAccessToken(account.Email)
	if err != nil {
		s.logger.Error(ctx, "access token generation failed", "error", err)
		return result.Error[*AccountResponse](http.StatusInternalServerError, "internal error")
	}

	account.RefreshToken = refreshToken
	account.RefreshTokenExpiry = time.Now().Add(s.refreshTokenValidity)

	updated := s.accounts.Update(ctx, account)
	if !updated.IsSuccess() {
		s.logger.Error(ctx, "token rotation persist failed", "email", account.Email, "status", updated.StatusCode)
		return result.Error[*AccountResponse](updated.StatusCode, updated.ErrorMessage)
	}

	return result.Success(&AccountResponse{
		Email:        account.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}
