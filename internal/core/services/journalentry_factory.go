package services

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/money_managemet_app/internal/apperrors"
	"github.com/SscSPs/money_managemet_app/internal/core/domain"
	"github.com/SscSPs/money_managemet_app/internal/dto"
	"github.com/SscSPs/money_managemet_app/internal/middleware"
)

// EntryFactory is the only way a JournalEntry comes into existence or changes.
// It owns the balance invariant and the posted-is-terminal rule.
type EntryFactory struct {
	lineItems *LineItemService
}

// NewEntryFactory creates a new EntryFactory.
func NewEntryFactory(lineItems *LineItemService) *EntryFactory {
	return &EntryFactory{lineItems: lineItems}
}

// buildLineItems constructs every draft, collecting all per-item failures so
// the caller can report every offending item in one pass.
func (f *EntryFactory) buildLineItems(ctx context.Context, drafts []dto.LineItemDraft) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(drafts))
	var errs apperrors.ValidationErrors
	for i, draft := range drafts {
		item, err := f.lineItems.CreateLineItem(ctx, draft)
		if err != nil {
			errs = append(errs, fmt.Errorf("line item %d: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}
	return items, nil
}

// validateAssembled runs the checks shared by create and update on a fully
// assembled entry: two-sided line items, exact balance, scalar fields.
func (f *EntryFactory) validateAssembled(entry domain.JournalEntry) error {
	var debits, credits int
	for _, item := range entry.LineItems {
		if item.Side == domain.Debit {
			debits++
		} else {
			credits++
		}
	}
	if debits == 0 || credits == 0 {
		return fmt.Errorf("%w: %d debit(s), %d credit(s)", apperrors.ErrInvalidLineItems, debits, credits)
	}

	debitTotal, creditTotal := f.lineItems.Balance(entry.LineItems)
	if !debitTotal.Equal(creditTotal) {
		return fmt.Errorf("%w: debits %s, credits %s",
			apperrors.ErrUnbalancedLineItems, debitTotal.String(), creditTotal.String())
	}

	if entry.TransactionDate.IsZero() {
		return fmt.Errorf("%w: transaction date is required", apperrors.ErrInvalidJournalEntry)
	}
	if strings.TrimSpace(entry.ReferenceNumber) == "" {
		return fmt.Errorf("%w: reference number is required", apperrors.ErrInvalidJournalEntry)
	}
	return nil
}

// CreateEntry validates the request and assembles a new unposted entry with
// a CREATE audit record.
func (f *EntryFactory) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actor string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var hasDebit, hasCredit bool
	for _, draft := range req.LineItems {
		switch draft.Side {
		case domain.Debit:
			hasDebit = true
		case domain.Credit:
			hasCredit = true
		}
	}
	if !hasDebit || !hasCredit {
		return nil, fmt.Errorf("%w: both a debit and a credit line are required", apperrors.ErrInvalidLineItems)
	}

	items, err := f.buildLineItems(ctx, req.LineItems)
	if err != nil {
		logger.Warn("Line item validation failed", "reference_number", req.ReferenceNumber, "error", err.Error())
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		TransactionDate: req.TransactionDate.UTC(),
		ReferenceNumber: strings.TrimSpace(req.ReferenceNumber),
		Description:     req.Description,
		Details:         maps.Clone(req.Details),
		LineItems:       items,
		AuditTrail: []domain.AuditRecord{{
			AuditID:    uuid.NewString(),
			Action:     domain.AuditCreate,
			Actor:      actor,
			RecordedAt: now,
			Details:    maps.Clone(req.AuditDetails),
		}},
		Posted: false,
	}

	if err := f.validateAssembled(entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

// UpdateEntry merges the patch onto a copy of the entry and re-validates it.
// The input entry is never mutated; posted entries are terminal.
func (f *EntryFactory) UpdateEntry(ctx context.Context, entry domain.JournalEntry, patch dto.JournalEntryPatch, actor string) (*domain.JournalEntry, error) {
	if entry.Posted {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAlreadyPosted, entry.EntryID)
	}

	updated := entry.Clone()

	if patch.TransactionDate != nil {
		updated.TransactionDate = patch.TransactionDate.UTC()
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Details != nil {
		updated.Details = maps.Clone(*patch.Details)
	}
	if patch.LineItems != nil {
		items, err := f.buildLineItems(ctx, *patch.LineItems)
		if err != nil {
			return nil, err
		}
		updated.LineItems = items
	}
	if patch.Posted != nil {
		updated.Posted = *patch.Posted
	}

	if err := f.validateAssembled(updated); err != nil {
		return nil, err
	}

	updated.AuditTrail = append(updated.AuditTrail, domain.AuditRecord{
		AuditID:    uuid.NewString(),
		Action:     domain.AuditUpdate,
		Actor:      actor,
		RecordedAt: time.Now().UTC(),
		Details:    maps.Clone(patch.AuditDetails),
	})

	return &updated, nil
}
