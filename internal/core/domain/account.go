package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the chart-of-accounts record a line item posts against.
// The registry resolving names/codes to accounts is a collaborator; the
// journal subsystem only cares that the reference resolves and is active.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary key (UUID)
	Code        string      `json:"code"`      // Short lookup code, e.g. "1000"
	Name        string      `json:"name"`      // User-defined name, e.g. "Cash"
	AccountType AccountType `json:"accountType"`
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`    // Inactive accounts reject new line items
}
