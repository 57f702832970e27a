package dto

import (
	"time"

	"github.com/SscSPs/money_managemet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemDraft is the caller-supplied input for one line item. Account
// resolution and amount/side validation happen in the line item service.
type LineItemDraft struct {
	AccountRef string           `json:"accountRef" binding:"required"`
	Amount     decimal.Decimal  `json:"amount" binding:"required"`
	Side       domain.EntrySide `json:"side" binding:"required,entryside"`
}

// CreateJournalEntryRequest carries everything needed to assemble an entry.
type CreateJournalEntryRequest struct {
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
	ReferenceNumber string          `json:"referenceNumber" binding:"required"`
	Description     string          `json:"description"`
	Details         map[string]any  `json:"details"`
	LineItems       []LineItemDraft `json:"lineItems" binding:"required,dive"`
	AuditDetails    map[string]any  `json:"auditDetails"`
}

// JournalEntryPatch holds the editable fields of an update. A nil field means
// "not supplied"; a non-nil pointer to a zero value means "explicitly set to
// zero". This keeps clearing a field distinguishable from omitting it.
type JournalEntryPatch struct {
	TransactionDate *time.Time       `json:"transactionDate"`
	Description     *string          `json:"description"`
	Details         *map[string]any  `json:"details"`
	Posted          *bool            `json:"posted"`
	LineItems       *[]LineItemDraft `json:"lineItems"`
	AuditDetails    map[string]any   `json:"auditDetails"`
}

// Empty reports whether the patch supplies no editable field at all.
func (p JournalEntryPatch) Empty() bool {
	return p.TransactionDate == nil && p.Description == nil && p.Details == nil &&
		p.Posted == nil && p.LineItems == nil
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	LineItemID string          `json:"lineItemID"`
	AccountID  string          `json:"accountID"`
	Amount     decimal.Decimal `json:"amount"`
	Side       string          `json:"side"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID         string               `json:"entryID"`
	TransactionDate time.Time            `json:"transactionDate"`
	ReferenceNumber string               `json:"referenceNumber"`
	Description     string               `json:"description"`
	Details         map[string]any       `json:"details,omitempty"`
	LineItems       []LineItemResponse   `json:"lineItems"`
	AuditTrail      []domain.AuditRecord `json:"auditTrail"`
	Posted          bool                 `json:"posted"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	items := make([]LineItemResponse, len(e.LineItems))
	for i, li := range e.LineItems {
		items[i] = LineItemResponse{
			LineItemID: li.LineItemID,
			AccountID:  li.AccountID,
			Amount:     li.Amount,
			Side:       string(li.Side),
		}
	}
	return JournalEntryResponse{
		EntryID:         e.EntryID,
		TransactionDate: e.TransactionDate,
		ReferenceNumber: e.ReferenceNumber,
		Description:     e.Description,
		Details:         e.Details,
		LineItems:       items,
		AuditTrail:      e.AuditTrail,
		Posted:          e.Posted,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}
