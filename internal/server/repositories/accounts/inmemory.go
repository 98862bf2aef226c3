package accounts

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/daterapp/auth/internal/result"
	"github.com/daterapp/auth/internal/server/models"
)

// InMemoryRepository implements Repository with a mutex-guarded map. It backs
// tests and local development; semantics match the PostgreSQL implementation.
type InMemoryRepository struct {
	mu       sync.RWMutex
	byID     map[string]*models.Account
	idByMail map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:     make(map[string]*models.Account),
		idByMail: make(map[string]string),
	}
}

func (r *InMemoryRepository) Add(_ context.Context, account *models.Account) result.Result[string] {
	if account == nil {
		return result.Error[string](http.StatusBadRequest, "account cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.idByMail[account.Email]; ok {
		return result.Error[string](http.StatusConflict, "account already exists")
	}

	account.ID = uuid.NewString()
	stored := *account
	r.byID[stored.ID] = &stored
	r.idByMail[stored.Email] = stored.ID

	return result.SuccessWithStatus(account.ID, http.StatusCreated)
}

func (r *InMemoryRepository) Update(_ context.Context, account *models.Account) result.Result[bool] {
	if account == nil {
		return result.Error[bool](http.StatusBadRequest, "account cannot be nil")
	}
	if account.ID == "" {
		return result.Error[bool](http.StatusBadRequest, "account id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[account.ID]
	if !ok {
		return result.Error[bool](http.StatusNotFound, "account not found")
	}

	delete(r.idByMail, existing.Email)
	stored := *account
	r.byID[stored.ID] = &stored
	r.idByMail[stored.Email] = stored.ID

	return result.Success(true)
}

func (r *InMemoryRepository) GetByEmail(_ context.Context, email string) result.Result[*models.Account] {
	if email == "" {
		return result.Error[*models.Account](http.StatusBadRequest, "email cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idByMail[email]
	if !ok {
		return result.Error[*models.Account](http.StatusNotFound, "account not found")
	}

	clone := *r.byID[id]
	return result.Success(&clone)
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) result.Result[bool] {
	if id == "" {
		return result.Error[bool](http.StatusBadRequest, "account id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[id]
	if !ok {
		return result.Error[bool](http.StatusNotFound, "account not found")
	}

	delete(r.idByMail, account.Email)
	delete(r.byID, id)

	return result.Success(true)
}

// Len reports the number of stored accounts. Test helper.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
