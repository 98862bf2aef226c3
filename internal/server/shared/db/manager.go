// Package db wires a concrete account store behind a single constructor.
package db

import (
	"context"
	"database/sql"

	"github.com/daterapp/auth/internal/server/repositories/accounts"
)

// RepositoryManager owns the storage backend and hands out repositories.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Accounts() accounts.Repository
}
