package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/SscSPs/money_managemet_app/internal/apperrors"
	"github.com/SscSPs/money_managemet_app/internal/core/domain"
	portssvc "github.com/SscSPs/money_managemet_app/internal/core/ports/services"
)

// AccountRegistry is an in-memory chart of accounts. Lookups accept either
// the account name or its short code, case-insensitively.
type AccountRegistry struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account // keyed by AccountID
	byName   map[string]string
	byCode   map[string]string
}

var _ portssvc.AccountRegistrySvc = (*AccountRegistry)(nil)

// NewAccountRegistry creates a registry preloaded with the given accounts.
func NewAccountRegistry(seed ...domain.Account) *AccountRegistry {
	r := &AccountRegistry{
		accounts: make(map[string]domain.Account),
		byName:   make(map[string]string),
		byCode:   make(map[string]string),
	}
	for _, account := range seed {
		if account.AccountID == "" {
			account.AccountID = uuid.NewString()
		}
		r.indexLocked(account)
	}
	return r
}

// AddAccount registers an account, assigning an id when the caller left it
// empty. A name or code collision returns ErrValidation.
func (r *AccountRegistry) AddAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	if strings.TrimSpace(account.Name) == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[normalizeRef(account.Name)]; exists {
		return nil, fmt.Errorf("%w: account name %q already registered", apperrors.ErrValidation, account.Name)
	}
	if account.Code != "" {
		if _, exists := r.byCode[normalizeRef(account.Code)]; exists {
			return nil, fmt.Errorf("%w: account code %q already registered", apperrors.ErrValidation, account.Code)
		}
	}

	if account.AccountID == "" {
		account.AccountID = uuid.NewString()
	}
	r.indexLocked(account)
	return &account, nil
}

// ResolveAccount resolves a name or code to its account record.
func (r *AccountRegistry) ResolveAccount(ctx context.Context, nameOrCode string) (*domain.Account, error) {
	key := normalizeRef(nameOrCode)
	if key == "" {
		return nil, fmt.Errorf("%w: empty account reference", apperrors.ErrNotFound)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if id, ok := r.byName[key]; ok {
		account := r.accounts[id]
		return &account, nil
	}
	if id, ok := r.byCode[key]; ok {
		account := r.accounts[id]
		return &account, nil
	}
	return nil, fmt.Errorf("%w: account %q", apperrors.ErrNotFound, nameOrCode)
}

// ListAccounts returns all registered accounts sorted by name.
func (r *AccountRegistry) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	out := make([]domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		out = append(out, account)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *AccountRegistry) indexLocked(account domain.Account) {
	r.accounts[account.AccountID] = account
	r.byName[normalizeRef(account.Name)] = account.AccountID
	if account.Code != "" {
		r.byCode[normalizeRef(account.Code)] = account.AccountID
	}
}

func normalizeRef(ref string) string {
	return strings.ToLower(strings.TrimSpace(ref))
}
