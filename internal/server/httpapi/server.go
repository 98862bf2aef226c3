// Package httpapi exposes the auth service over HTTP/JSON. Handlers decode
// request bodies, invoke the service, and translate the returned Result
// status codes directly into HTTP responses.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/daterapp/auth/internal/logging"
	"github.com/daterapp/auth/internal/server/repositories/accounts"
	"github.com/daterapp/auth/internal/server/services"
)

// Server serves the public auth endpoints.
type Server struct {
	address   string
	logger    logging.Logger
	auth      *services.AuthService
	accounts  accounts.Repository
	jwtSecret []byte
	limiter   RateLimiter
}

func NewServer(address string, logger logging.Logger, auth *services.AuthService, repo accounts.Repository, secretKey string, limiter RateLimiter) *Server {
	if limiter == nil {
		limiter = NoopLimiter{}
	}
	return &Server{
		address:   address,
		logger:    logger.With("module", "http_server"),
		auth:      auth,
		accounts:  repo,
		jwtSecret: []byte(secretKey),
		limiter:   limiter,
	}
}

// Routes builds the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.rateLimited(s.handleRegister))
	mux.HandleFunc("POST /api/auth/login", s.rateLimited(s.handleLogin))
	mux.HandleFunc("POST /api/auth/refresh", s.rateLimited(s.handleRefresh))
	mux.HandleFunc("DELETE /api/auth/account", s.requireAuth(s.handleDeleteAccount))

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
