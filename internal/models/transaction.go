package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the DB representation of a transaction row.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	AccountID     string          `db:"account_id"`
	CategoryID    string          `db:"category_id"`
	Type          string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	Date          time.Time       `db:"date"`
	Note          string          `db:"note"`
	AuditFields
}
