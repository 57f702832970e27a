package domain

import (
	"maps"
	"slices"
	"time"
)

// AuditAction names the lifecycle event an audit record captures.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
)

// AuditRecord is one append-only row in a journal entry's audit trail.
type AuditRecord struct {
	AuditID    string         `json:"auditID"`
	Action     AuditAction    `json:"action"`
	Actor      string         `json:"actor"`
	RecordedAt time.Time      `json:"recordedAt"`
	Details    map[string]any `json:"details,omitempty"`
}

// JournalEntry represents a single, balanced financial event composed of
// debit and credit line items recorded against a transaction date.
//
// Entries are value types: the store and factory always hand out copies, so a
// caller holding an entry never observes later mutations. Once Posted is
// true the entry is terminal and no update succeeds.
type JournalEntry struct {
	EntryID         string         `json:"entryID"` // Primary key (UUID)
	TransactionDate time.Time      `json:"transactionDate"`
	ReferenceNumber string         `json:"referenceNumber"` // Caller-supplied, unique store-wide
	Description     string         `json:"description"`     // Nullable user description
	Details         map[string]any `json:"details,omitempty"`
	LineItems       []LineItem     `json:"lineItems"`
	AuditTrail      []AuditRecord  `json:"auditTrail"`
	Posted          bool           `json:"posted"`
}

// Clone returns a deep copy so shared state never leaks across the store
// boundary. Line items are immutable values, so a slice copy is enough there.
func (e JournalEntry) Clone() JournalEntry {
	out := e
	out.Details = maps.Clone(e.Details)
	out.LineItems = slices.Clone(e.LineItems)
	out.AuditTrail = make([]AuditRecord, len(e.AuditTrail))
	for i, rec := range e.AuditTrail {
		rec.Details = maps.Clone(rec.Details)
		out.AuditTrail[i] = rec
	}
	return out
}

// DateKey returns the date bucket key for the entry's transaction date.
func (e JournalEntry) DateKey() DateKey {
	return DateKeyOf(e.TransactionDate)
}
