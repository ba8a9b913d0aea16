package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/connectin/connectin/internal/domain/account"
)

// AccountsRepo keeps accounts in a map guarded by one mutex. The email index
// makes Create an atomic insert-if-absent, so two concurrent signups with the
// same email cannot both succeed.
type AccountsRepo struct {
	mu      sync.RWMutex
	items   map[string]account.Account // id -> account
	byEmail map[string]string          // lowercased email -> id
}

func NewAccountsRepo() *AccountsRepo {
	return &AccountsRepo{
		items:   make(map[string]account.Account),
		byEmail: make(map[string]string),
	}
}

func (r *AccountsRepo) Create(_ context.Context, acc account.Account) error {
	key := strings.ToLower(acc.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[key]; taken {
		return account.ErrEmailTaken
	}

	r.items[acc.ID] = acc
	r.byEmail[key] = acc.ID

	return nil
}

func (r *AccountsRepo) GetByEmail(_ context.Context, email string) (account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]

	if !ok {
		return account.Account{}, account.ErrNotFound
	}

	return r.items[id], nil
}

func (r *AccountsRepo) GetByID(_ context.Context, id string) (account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.items[id]

	if !ok {
		return account.Account{}, account.ErrNotFound
	}

	return acc, nil
}
