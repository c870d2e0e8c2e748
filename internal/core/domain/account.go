package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies where the money in an account lives.
type AccountType string

const (
	AccountBank       AccountType = "bank"
	AccountWallet     AccountType = "wallet"
	AccountInvestment AccountType = "investment"
	AccountCash       AccountType = "cash"
)

// Account is a monetary account owned by exactly one user. Its balance is
// mutated only through the combined repository operations that pair the
// balance delta with the dependent ledger write; after every committed
// operation the balance is >= 0.
type Account struct {
	AccountID    string          `json:"accountID"`
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	AccountType  AccountType     `json:"accountType"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
	Icon         string          `json:"icon"`
	Color        string          `json:"color"`
	AuditFields
}
