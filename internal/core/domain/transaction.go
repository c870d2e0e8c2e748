package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a transaction's balance effect.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Transaction is a committed monetary movement against an account. Every
// persisted transaction has already been reflected in its account's balance;
// deleting one reverses that effect in the same database transaction.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	AccountID     string          `json:"accountID"`
	CategoryID    string          `json:"categoryID"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Note          string          `json:"note"`
	AuditFields
}
