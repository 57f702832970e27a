package domain

import "github.com/shopspring/decimal"

// EntrySide indicates whether a line item is a Debit or a Credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// Valid reports whether the side is one of the two known values.
func (s EntrySide) Valid() bool {
	return s == Debit || s == Credit
}

// LineItem is one account/amount/side triple within a journal entry.
// It is constructed only by the line item service and never modified after;
// replacement line items are built fresh on update.
type LineItem struct {
	LineItemID string          `json:"lineItemID"`
	AccountID  string          `json:"accountID"`
	Amount     decimal.Decimal `json:"amount"` // Positive value; precise decimal type
	Side       EntrySide       `json:"side"`   // DEBIT or CREDIT (Not Null)
}
