package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/money_managemet_app/internal/apperrors"
	"github.com/SscSPs/money_managemet_app/internal/core/domain"
	"github.com/SscSPs/money_managemet_app/internal/core/services"
)

func TestAccountRegistryResolve(t *testing.T) {
	ctx := context.Background()
	registry := services.NewAccountRegistry(
		domain.Account{Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true},
		domain.Account{Code: "4000", Name: "Revenue", AccountType: domain.Revenue, IsActive: true},
	)

	t.Run("by name", func(t *testing.T) {
		account, err := registry.ResolveAccount(ctx, "Cash")
		require.NoError(t, err)
		assert.Equal(t, "1000", account.Code)
	})

	t.Run("by code", func(t *testing.T) {
		account, err := registry.ResolveAccount(ctx, "4000")
		require.NoError(t, err)
		assert.Equal(t, "Revenue", account.Name)
	})

	t.Run("case insensitive", func(t *testing.T) {
		account, err := registry.ResolveAccount(ctx, "  cAsH ")
		require.NoError(t, err)
		assert.Equal(t, "Cash", account.Name)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := registry.ResolveAccount(ctx, "Goodwill")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := registry.ResolveAccount(ctx, "   ")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestAccountRegistryAdd(t *testing.T) {
	ctx := context.Background()
	registry := services.NewAccountRegistry(
		domain.Account{Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true},
	)

	t.Run("assigns id", func(t *testing.T) {
		account, err := registry.AddAccount(ctx, domain.Account{
			Code: "2000", Name: "Accounts Payable", AccountType: domain.Liability, IsActive: true,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, account.AccountID)

		resolved, err := registry.ResolveAccount(ctx, "2000")
		require.NoError(t, err)
		assert.Equal(t, account.AccountID, resolved.AccountID)
	})

	t.Run("name required", func(t *testing.T) {
		_, err := registry.AddAccount(ctx, domain.Account{Code: "3000"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("name collision", func(t *testing.T) {
		_, err := registry.AddAccount(ctx, domain.Account{Code: "9999", Name: "cash"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("code collision", func(t *testing.T) {
		_, err := registry.AddAccount(ctx, domain.Account{Code: "1000", Name: "Petty Cash"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestAccountRegistryList(t *testing.T) {
	ctx := context.Background()
	registry := services.NewAccountRegistry(
		domain.Account{Code: "4000", Name: "Revenue", AccountType: domain.Revenue, IsActive: true},
		domain.Account{Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true},
	)

	accounts, err := registry.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Cash", accounts[0].Name)
	assert.Equal(t, "Revenue", accounts[1].Name)
}
