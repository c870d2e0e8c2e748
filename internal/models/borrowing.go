package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Borrowing is the DB representation of a borrowing row.
type Borrowing struct {
	BorrowingID      string          `db:"borrowing_id"`
	UserID           string          `db:"user_id"`
	Type             string          `db:"type"`
	PersonName       string          `db:"person_name"`
	PersonEmail      string          `db:"person_email"`
	PersonPhone      string          `db:"person_phone"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	PaidAmount       decimal.Decimal `db:"paid_amount"`
	RemainingAmount  decimal.Decimal `db:"remaining_amount"`
	Status           string          `db:"status"`
	InitialAccountID string          `db:"initial_account_id"`
	Date             time.Time       `db:"date"`
	Note             string          `db:"note"`
	AuditFields
}

// BorrowingTransaction is the DB representation of one payment ledger row.
type BorrowingTransaction struct {
	BorrowingTransactionID string          `db:"borrowing_transaction_id"`
	UserID                 string          `db:"user_id"`
	BorrowingID            string          `db:"borrowing_id"`
	AccountID              string          `db:"account_id"`
	Type                   string          `db:"type"`
	Amount                 decimal.Decimal `db:"amount"`
	Date                   time.Time       `db:"date"`
	Note                   string          `db:"note"`
	AuditFields
}
