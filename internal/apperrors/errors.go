package apperrors

import (
	"errors"
	"strings"
)

// ErrValidation is the umbrella for all input validation failures.
// More specific sentinels below wrap it so callers can match either level.
var ErrValidation = errors.New("validation error")

// Line item validation.
var (
	ErrInvalidAccount   = wrap("invalid account reference")
	ErrInactiveAccount  = wrap("account is inactive")
	ErrInvalidAmount    = wrap("amount must be a positive decimal")
	ErrInvalidEntryType = wrap("entry type must be DEBIT or CREDIT")
)

// Journal entry validation.
var (
	ErrInvalidLineItems    = wrap("journal entry requires line items on both sides")
	ErrUnbalancedLineItems = wrap("debit and credit totals do not balance")
	ErrInvalidJournalEntry = wrap("invalid journal entry fields")
)

// Query input validation.
var (
	ErrInvalidDate            = wrap("invalid date")
	ErrInvalidID              = wrap("invalid id")
	ErrInvalidReferenceNumber = wrap("invalid reference number")
)

// State machine and store level.
var (
	ErrAlreadyPosted            = errors.New("journal entry is already posted")
	ErrDuplicateReferenceNumber = errors.New("reference number already exists")
	ErrNotFound                 = errors.New("resource not found")
)

// Import level.
var (
	ErrInvalidCSVItem = wrap("invalid csv item")
	ErrInvalidFile    = errors.New("invalid file")
)

func wrap(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

// Unwrap lets errors.Is match both the specific sentinel and ErrValidation.
func (e *validationError) Unwrap() error { return ErrValidation }

// ValidationErrors collects every per-item failure from a multi-item
// validation pass so the caller can fix all of them at once instead of
// round-tripping one error at a time.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the collected errors to errors.Is/errors.As.
func (v ValidationErrors) Unwrap() []error { return v }

// ErrOrNil returns nil when no errors were collected.
func (v ValidationErrors) ErrOrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
