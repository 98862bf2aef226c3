package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/daterapp/auth/internal/logging"
	"github.com/daterapp/auth/internal/server/hasher"
	"github.com/daterapp/auth/internal/server/repositories/accounts"
	"github.com/daterapp/auth/internal/server/services"
	"github.com/daterapp/auth/internal/server/token"
)

const testSecret = "test-secret"

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestServer(t *testing.T) (*httptest.Server, *accounts.InMemoryRepository) {
	t.Helper()

	repo := accounts.NewInMemoryRepository()
	issuer := token.NewJWTIssuer(token.Config{
		SecretKey:           []byte(testSecret),
		Issuer:              "auth-service",
		Audience:            "dater-api",
		AccessTokenValidity: time.Hour,
	})
	svc := services.NewAuthService(repo, hasher.NewBcryptHasher(bcrypt.MinCost), issuer, discardLogger(), 7*24*time.Hour)
	srv := NewServer(":0", discardLogger(), svc, repo, testSecret, nil)

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, repo
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeAuthResponse(t *testing.T, resp *http.Response) authResponse {
	t.Helper()
	var out authResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRegisterEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/auth/register", accountRequest{Email: "a@x.com", Password: "secret123"})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decodeAuthResponse(t, resp)
	assert.Equal(t, "a@x.com", out.Email)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
}

func TestRegisterEndpoint_BadBody(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/auth/register", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterEndpoint_Duplicate(t *testing.T) {
	ts, _ := newTestServer(t)

	first := postJSON(t, ts.URL+"/api/auth/register", accountRequest{Email: "a@x.com", Password: "secret123"})
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second := postJSON(t, ts.URL+"/api/auth/register", accountRequest{Email: "a@x.com", Password: "secret123"})
	assert.Equal(t, http.StatusConflict, second.StatusCode)
}

func TestLoginEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	reg := decodeAuthResponse(t, postJSON(t, ts.URL+"/api/auth/register", accountRequest{Email: "a@x.com", Password: "secret123"}))

	resp := postJSON(t, ts.URL+"/api/auth/login", accountRequest{Email: "a@x.com", Password: "secret123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeAuthResponse(t, resp)
	assert.Equal(t, "a@x.com", out.Email)
	assert.NotEqual(t, reg.RefreshToken, out.RefreshToken)
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	ts, _ := newTestServer(t)

	postJSON(t, ts.URL+"/api/auth/register", accountRequest{Email: "a@x.com", Password: "secret123"})

	resp := postJSON(t, ts.URL+"/api/auth/login", accountRequest{Email: "a@x.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginEndpoint_UnknownEmail(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/auth/login", accountRequest{Email: "nobody@x.com", Password: "p"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRefreshEndpoint_RotationIsSingleUse(t *testing.T) {
	ts, _ := newTestServer(t)

	reg := decodeAuthResponse(t, postJSON(t, ts.URL+"/api/auth/register", accountRequest{Email: "a@x.com", Password: "secret123"}))

	first := postJSON(t, ts.URL+"/api/auth/refresh", refreshRequest{Email: "a@x.com", RefreshToken: reg.RefreshToken})
	require.Equal(t, http.StatusOK, first.StatusCode)
	rotated := decodeAuthResponse(t, first)
	assert.NotEqual(t, reg.RefreshToken, rotated.RefreshToken)

	replay := postJSON(t, ts.URL+"/api/auth/refresh", refreshRequest{Email: "a@x.com", RefreshToken: reg.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, replay.StatusCode)
}

func TestDeleteAccountEndpoint(t *testing.T) {
	ts, repo := newTestServer(t)

	reg := decodeAuthResponse(t, postJSON(t, ts.URL+"/api/auth/register", accountRequest{Email: "a@x.com", Password: "secret123"}))

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/auth/account", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+reg.AccessToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, repo.Len())
}

func TestDeleteAccountEndpoint_Unauthorized(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/auth/account", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req.Header.Set("Authorization", "Bearer not-a-token")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/auth/register")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
