// Package accounts declares the account store contract consumed by the auth
// service, and its PostgreSQL and in-memory implementations.
//
// Every operation returns a result.Result instead of an error: not-found,
// invalid-input, and conflict outcomes are values tagged with a status code,
// so the caller never has to map error types back to protocol decisions.
package accounts

import (
	"context"

	"github.com/daterapp/auth/internal/result"
	"github.com/daterapp/auth/internal/server/models"
)

// Repository is the durable account store keyed by identity.
type Repository interface {
	// Add persists a new account and returns the assigned id with status 201.
	// A nil account yields 400; a duplicate email 409; storage failure 5xx.
	Add(ctx context.Context, account *models.Account) result.Result[string]

	// Update persists the account state under its id. A nil account or empty
	// id yields 400; a missing record 404 (the record may have vanished
	// between a lookup and this call — that is a clean failure, not a fault).
	Update(ctx context.Context, account *models.Account) result.Result[bool]

	// GetByEmail returns the account with the given email. An empty email
	// yields 400; no match 404.
	GetByEmail(ctx context.Context, email string) result.Result[*models.Account]

	// Delete removes the account with the given id. An empty id yields 400;
	// a missing record 404.
	Delete(ctx context.Context, id string) result.Result[bool]
}
