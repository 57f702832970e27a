package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/money_managemet_app/internal/apperrors"
	"github.com/SscSPs/money_managemet_app/internal/core/domain"
	portssvc "github.com/SscSPs/money_managemet_app/internal/core/ports/services"
	"github.com/SscSPs/money_managemet_app/internal/dto"
	"github.com/SscSPs/money_managemet_app/internal/middleware"
)

// Column names expected in import rows. These are fixed by the file format.
const (
	colReferenceNumber = "Reference Number"
	colTransactionDate = "Transaction Date"
	colAccountName     = "Account Name"
	colDebit           = "Debit"
	colCredit          = "Credit"
	colDescription     = "Description"
	colPosted          = "Posted"
	colEntryDetails    = "Journal Entry Details"
	colAuditDetails    = "Audit Details"
)

// importDateLayout is the fixed MM-DD-YYYY layout of the Transaction Date column.
const importDateLayout = "01-02-2006"

// descriptionSeparator joins description fragments from rows sharing a
// reference number.
const descriptionSeparator = " | "

// ImporterService turns flat rows into journal entries. Rows sharing a
// reference number merge into one draft; failures stay isolated to their
// reference number and never abort the whole import.
type ImporterService struct {
	journal portssvc.JournalSvcFacade
}

// Ensure ImporterService implements the importer facade.
var _ portssvc.JournalImporterSvc = (*ImporterService)(nil)

// NewImporterService creates a new ImporterService.
func NewImporterService(journal portssvc.JournalSvcFacade) *ImporterService {
	return &ImporterService{journal: journal}
}

// entryDraft accumulates the rows of one reference number.
type entryDraft struct {
	referenceNumber string
	transactionDate time.Time
	descriptions    []string
	details         map[string]any
	auditDetails    map[string]any
	lineItems       []dto.LineItemDraft
	posted          bool
}

// Import validates, groups and submits rows. It returns ErrInvalidFile when
// there are no rows at all or when not a single draft makes it into the store.
func (s *ImporterService) Import(ctx context.Context, rows []dto.ImportRow, actor string) (*dto.ImportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows to import", apperrors.ErrInvalidFile)
	}

	result := &dto.ImportResult{
		OK:     []domain.JournalEntry{},
		Errors: []dto.ImportRowError{},
	}

	// Group pass: one draft per reference number, in first-seen order. A row
	// failing validation is recorded against its reference number (or its
	// position when the reference itself is missing) and excluded; the
	// reference stays importable through its remaining valid rows.
	drafts := make(map[string]*entryDraft)
	order := make([]string, 0, len(rows))
	failedRefs := make(map[string]bool)

	for i, row := range rows {
		ref := strings.TrimSpace(row[colReferenceNumber])
		if ref == "" {
			result.Errors = append(result.Errors, dto.ImportRowError{
				ReferenceNumber: fmt.Sprintf("row %d", i+1),
				Error:           fmt.Sprintf("%s: missing %s", apperrors.ErrInvalidCSVItem.Error(), colReferenceNumber),
			})
			continue
		}

		draft, exists := drafts[ref]
		if !exists {
			draft = &entryDraft{referenceNumber: ref, details: map[string]any{}, auditDetails: map[string]any{}}
			drafts[ref] = draft
			order = append(order, ref)
		}

		if err := s.mergeRow(draft, row); err != nil {
			result.Errors = append(result.Errors, dto.ImportRowError{
				ReferenceNumber: ref,
				Error:           err.Error(),
			})
			failedRefs[ref] = true
		}
	}

	// Submit pass: every draft goes through the store's create path; the
	// outcome is recorded per reference number.
	for _, ref := range order {
		if failedRefs[ref] {
			continue
		}
		draft := drafts[ref]

		entry, err := s.submitDraft(ctx, draft, actor)
		if err != nil {
			result.Errors = append(result.Errors, dto.ImportRowError{
				ReferenceNumber: ref,
				Error:           err.Error(),
			})
			continue
		}
		result.OK = append(result.OK, *entry)
	}

	if len(result.OK) == 0 {
		logger.Warn("Bulk import produced no entries", "rows", len(rows), "errors", len(result.Errors))
		return result, fmt.Errorf("%w: no entries could be imported", apperrors.ErrInvalidFile)
	}

	logger.Info("Bulk import finished", "ok", len(result.OK), "errors", len(result.Errors))
	return result, nil
}

// mergeRow validates one row and folds it into the draft: the Debit/Credit
// columns append line items, non-empty descriptions concatenate, and the JSON
// detail blobs merge key-wise.
func (s *ImporterService) mergeRow(draft *entryDraft, row dto.ImportRow) error {
	dateText := strings.TrimSpace(row[colTransactionDate])
	if dateText == "" {
		return fmt.Errorf("%w: missing %s", apperrors.ErrInvalidCSVItem, colTransactionDate)
	}
	date, err := time.Parse(importDateLayout, dateText)
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid MM-DD-YYYY date", apperrors.ErrInvalidDate, dateText)
	}

	accountName := strings.TrimSpace(row[colAccountName])
	if accountName == "" {
		return fmt.Errorf("%w: missing %s", apperrors.ErrInvalidCSVItem, colAccountName)
	}

	debitText := strings.TrimSpace(row[colDebit])
	creditText := strings.TrimSpace(row[colCredit])
	if debitText == "" && creditText == "" {
		return fmt.Errorf("%w: row carries neither a %s nor a %s amount", apperrors.ErrInvalidCSVItem, colDebit, colCredit)
	}

	var items []dto.LineItemDraft
	if debitText != "" {
		amount, err := decimal.NewFromString(debitText)
		if err != nil {
			return fmt.Errorf("%w: %s %q is not a decimal", apperrors.ErrInvalidCSVItem, colDebit, debitText)
		}
		items = append(items, dto.LineItemDraft{AccountRef: accountName, Amount: amount, Side: domain.Debit})
	}
	if creditText != "" {
		amount, err := decimal.NewFromString(creditText)
		if err != nil {
			return fmt.Errorf("%w: %s %q is not a decimal", apperrors.ErrInvalidCSVItem, colCredit, creditText)
		}
		items = append(items, dto.LineItemDraft{AccountRef: accountName, Amount: amount, Side: domain.Credit})
	}

	entryDetails, err := parseDetailBlob(row[colEntryDetails])
	if err != nil {
		return fmt.Errorf("%w: %s is not a JSON object", apperrors.ErrInvalidCSVItem, colEntryDetails)
	}
	auditDetails, err := parseDetailBlob(row[colAuditDetails])
	if err != nil {
		return fmt.Errorf("%w: %s is not a JSON object", apperrors.ErrInvalidCSVItem, colAuditDetails)
	}

	// Row is valid, fold it in.
	draft.transactionDate = date
	draft.lineItems = append(draft.lineItems, items...)
	if desc := strings.TrimSpace(row[colDescription]); desc != "" {
		draft.descriptions = append(draft.descriptions, desc)
	}
	for k, v := range entryDetails {
		draft.details[k] = v
	}
	for k, v := range auditDetails {
		draft.auditDetails[k] = v
	}
	if strings.EqualFold(strings.TrimSpace(row[colPosted]), "Yes") {
		draft.posted = true
	}
	return nil
}

// submitDraft runs one draft through the store's create path, then posts it
// when the source rows asked for it. Posting happens as a separate update so
// the posted-is-terminal rule stays with the factory.
func (s *ImporterService) submitDraft(ctx context.Context, draft *entryDraft, actor string) (*domain.JournalEntry, error) {
	req := dto.CreateJournalEntryRequest{
		TransactionDate: draft.transactionDate,
		ReferenceNumber: draft.referenceNumber,
		Description:     strings.Join(draft.descriptions, descriptionSeparator),
		Details:         draft.details,
		LineItems:       draft.lineItems,
		AuditDetails:    draft.auditDetails,
	}

	entry, err := s.journal.CreateJournalEntry(ctx, req, actor)
	if err != nil {
		return nil, err
	}

	if draft.posted {
		posted := true
		entry, err = s.journal.UpdateJournalEntry(ctx, entry.EntryID, dto.JournalEntryPatch{
			Posted:       &posted,
			AuditDetails: draft.auditDetails,
		}, actor)
		if err != nil {
			return nil, err
		}
	}
	return entry, nil
}

func parseDetailBlob(text string) (map[string]any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, err
	}
	return out, nil
}
