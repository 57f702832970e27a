package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/money_managemet_app/internal/apperrors"
	"github.com/SscSPs/money_managemet_app/internal/core/domain"
	portssvc "github.com/SscSPs/money_managemet_app/internal/core/ports/services"
	"github.com/SscSPs/money_managemet_app/internal/dto"
)

// LineItemService validates and constructs single debit/credit line items.
// Account references are resolved through the chart-of-accounts collaborator.
type LineItemService struct {
	accounts portssvc.AccountResolver
}

// NewLineItemService creates a new LineItemService.
func NewLineItemService(accounts portssvc.AccountResolver) *LineItemService {
	return &LineItemService{accounts: accounts}
}

// CreateLineItem validates a draft and returns an immutable line item.
func (s *LineItemService) CreateLineItem(ctx context.Context, draft dto.LineItemDraft) (domain.LineItem, error) {
	if !draft.Side.Valid() {
		return domain.LineItem{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidEntryType, draft.Side)
	}

	if draft.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.LineItem{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidAmount, draft.Amount.String())
	}

	account, err := s.accounts.ResolveAccount(ctx, draft.AccountRef)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidAccount, draft.AccountRef)
	}
	if !account.IsActive {
		return domain.LineItem{}, fmt.Errorf("%w: %q", apperrors.ErrInactiveAccount, draft.AccountRef)
	}

	return domain.LineItem{
		LineItemID: uuid.NewString(),
		AccountID:  account.AccountID,
		Amount:     draft.Amount,
		Side:       draft.Side,
	}, nil
}

// Balance sums amounts per side using exact decimal arithmetic. It is the
// single source of truth for the double-entry balance check.
func (s *LineItemService) Balance(items []domain.LineItem) (debitTotal, creditTotal decimal.Decimal) {
	debitTotal = decimal.Zero
	creditTotal = decimal.Zero
	for _, item := range items {
		if item.Side == domain.Debit {
			debitTotal = debitTotal.Add(item.Amount)
		} else {
			creditTotal = creditTotal.Add(item.Amount)
		}
	}
	return debitTotal, creditTotal
}
