package db

import (
	"context"
	"database/sql"

	"github.com/daterapp/auth/internal/server/repositories/accounts"
)

// InMemoryRepositoryManager keeps accounts in process memory. Used by tests
// and local development runs without a database.
type InMemoryRepositoryManager struct {
	accounts accounts.Repository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{accounts: accounts.NewInMemoryRepository()}
}
