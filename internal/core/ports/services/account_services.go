package services

import (
	"context"

	"github.com/SscSPs/money_managemet_app/internal/core/domain"
)

// AccountResolver is the chart-of-accounts lookup capability consumed by the
// line item service. Resolution failures surface as apperrors.ErrNotFound.
type AccountResolver interface {
	// ResolveAccount resolves an account name or code to its account record.
	ResolveAccount(ctx context.Context, nameOrCode string) (*domain.Account, error)
}

// AccountRegistrySvc is the fuller registry surface used by the HTTP layer
// and by seeding at bootstrap.
type AccountRegistrySvc interface {
	AccountResolver

	// AddAccount registers an account in the chart of accounts.
	AddAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// ListAccounts returns all registered accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}
