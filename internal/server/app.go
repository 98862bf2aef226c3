// Package server initializes and runs the auth application: it wires the
// account store, password hasher, token issuer and auth service together,
// starts the HTTP endpoint, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/crypto/bcrypt"

	"github.com/daterapp/auth/internal/logging"
	"github.com/daterapp/auth/internal/server/config"
	"github.com/daterapp/auth/internal/server/hasher"
	"github.com/daterapp/auth/internal/server/httpapi"
	"github.com/daterapp/auth/internal/server/services"
	"github.com/daterapp/auth/internal/server/shared/db"
	"github.com/daterapp/auth/internal/server/token"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	authService *services.AuthService
	repoManager db.RepositoryManager
	limiter     httpapi.RateLimiter
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	rm, err := db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	issuer := token.NewJWTIssuer(token.Config{
		SecretKey:           []byte(cfg.SecretKey),
		Issuer:              cfg.JWTIssuer,
		Audience:            cfg.JWTAudience,
		AccessTokenValidity: cfg.AccessTokenValidityDuration,
	})

	as := services.NewAuthService(rm.Accounts(), hasher.NewBcryptHasher(bcrypt.DefaultCost), issuer, logger, cfg.RefreshTokenValidityDuration)

	var limiter httpapi.RateLimiter
	if cfg.RedisAddr != "" {
		limiter, err = httpapi.NewRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.AuthRateLimitPerMinute, logger)
		if err != nil {
			return nil, fmt.Errorf("rate limiter init error: %w", err)
		}
	}

	return &App{config: cfg, logger: logger, authService: as, repoManager: rm, limiter: limiter}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.authService, app.repoManager.Accounts(), app.config.SecretKey, app.limiter)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.limiter != nil {
		app.limiter.Close()
	}
	if conn := app.repoManager.Conn(); conn != nil {
		if err := conn.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
}
