package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/daterapp/auth/internal/server/token"
)

type ctxKey string

const emailKey ctxKey = "accountEmail"

// requireAuth validates the Authorization bearer token and stores the
// account email in the request context before invoking the handler.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken, err := bearerToken(r.Header.Get("Authorization"))
		if err != nil {
			s.logger.Warn(r.Context(), "authorization header invalid", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		email, err := token.GetEmailFromToken(accessToken, s.jwtSecret)
		if err != nil {
			s.logger.Warn(r.Context(), "access token rejected", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "invalid access token")
			return
		}

		ctx := context.WithValue(r.Context(), emailKey, email)
		next(w, r.WithContext(ctx))
	}
}

// rateLimited caps auth attempts per client address before invoking the
// handler. With no limiter configured every request passes.
func (s *Server) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(r.Context(), clientKey(r)) {
			s.logger.Warn(r.Context(), "rate limit exceeded", "path", r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next(w, r)
	}
}

func emailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
