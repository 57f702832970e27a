package dto

import "github.com/SscSPs/money_managemet_app/internal/core/domain"

// ImportRow is one flat row from the external row producer, keyed by the
// source column name.
type ImportRow map[string]string

// ImportRowError records the failure outcome for one reference number.
type ImportRowError struct {
	ReferenceNumber string `json:"referenceNumber"`
	Error           string `json:"error"`
}

// ImportResult partitions a bulk import into the entries that were created
// and the reference numbers that failed, so a caller can see exactly which
// entries made it in.
type ImportResult struct {
	OK     []domain.JournalEntry `json:"ok"`
	Errors []ImportRowError      `json:"errors"`
}

// ImportFailure is the structured payload returned when no drafted entry
// succeeded at all.
type ImportFailure struct {
	Message string           `json:"message"`
	Errors  []ImportRowError `json:"errors"`
}
