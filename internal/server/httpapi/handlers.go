package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/daterapp/auth/internal/result"
	"github.com/daterapp/auth/internal/server/services"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res := s.auth.Register(r.Context(), &services.AccountRequest{Email: req.Email, Password: req.Password})
	s.respond(w, res)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res := s.auth.Login(r.Context(), &services.AccountRequest{Email: req.Email, Password: req.Password})
	s.respond(w, res)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res := s.auth.RefreshTokens(r.Context(), req.Email, req.RefreshToken)
	s.respond(w, res)
}

// handleDeleteAccount removes the authenticated account. The account store
// exposes delete; the auth flows themselves never drive it.
func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	email, ok := emailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	found := s.accounts.GetByEmail(r.Context(), email)
	if !found.IsSuccess() {
		writeError(w, found.StatusCode, found.ErrorMessage)
		return
	}

	deleted := s.accounts.Delete(r.Context(), found.Value.ID)
	if !deleted.IsSuccess() {
		writeError(w, deleted.StatusCode, deleted.ErrorMessage)
		return
	}

	s.logger.Info(r.Context(), "account deleted", "email", email)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) respond(w http.ResponseWriter, res result.Result[*services.AccountResponse]) {
	if !res.IsSuccess() {
		writeError(w, res.StatusCode, res.ErrorMessage)
		return
	}

	writeJSON(w, res.StatusCode, authResponse{
		Email:        res.Value.Email,
		AccessToken:  res.Value.AccessToken,
		RefreshToken: res.Value.RefreshToken,
	})
}
