package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BorrowingType says which way the debt points.
type BorrowingType string

const (
	Borrow BorrowingType = "borrow" // money the user owes a friend
	Lend   BorrowingType = "lend"   // money a friend owes the user
)

// BorrowingStatus is derived from the remaining amount; it is never set
// directly.
type BorrowingStatus string

const (
	BorrowingActive    BorrowingStatus = "active"
	BorrowingCompleted BorrowingStatus = "completed"
)

// BorrowingTransactionType labels entries in a borrowing's payment ledger.
type BorrowingTransactionType string

const (
	BorrowingPayment BorrowingTransactionType = "payment" // repaying a borrow
	BorrowingReturn  BorrowingTransactionType = "return"  // receiving back a lend
)

// Borrowing is a peer-to-peer debt record. RemainingAmount and Status are
// denormalized; Recalculate must run before every persist so the stored
// values are never trusted across calls.
type Borrowing struct {
	BorrowingID      string          `json:"borrowingID"`
	UserID           string          `json:"userID"`
	Type             BorrowingType   `json:"type"`
	PersonName       string          `json:"personName"`
	PersonEmail      string          `json:"personEmail"`
	PersonPhone      string          `json:"personPhone"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	PaidAmount       decimal.Decimal `json:"paidAmount"`
	RemainingAmount  decimal.Decimal `json:"remainingAmount"`
	Status           BorrowingStatus `json:"status"`
	InitialAccountID string          `json:"initialAccountID"` // account credited/debited at creation, empty if none
	Date             time.Time       `json:"date"`
	Note             string          `json:"note"`
	AuditFields
}

// Recalculate recomputes the derived fields from TotalAmount and PaidAmount:
// remaining = total - paid, clamped to zero, and status = completed iff
// remaining is zero. Call it unconditionally before any persistence.
func (b *Borrowing) Recalculate() {
	remaining := b.TotalAmount.Sub(b.PaidAmount)
	if remaining.LessThanOrEqual(decimal.Zero) {
		b.RemainingAmount = decimal.Zero
		b.Status = BorrowingCompleted
		return
	}
	b.RemainingAmount = remaining
	b.Status = BorrowingActive
}

// BorrowingTransaction is an append-only ledger entry recording one payment
// against a borrowing. Entries are never mutated and are deleted only when
// their parent borrowing is deleted.
type BorrowingTransaction struct {
	BorrowingTransactionID string                   `json:"borrowingTransactionID"`
	UserID                 string                   `json:"userID"`
	BorrowingID            string                   `json:"borrowingID"`
	AccountID              string                   `json:"accountID"`
	Type                   BorrowingTransactionType `json:"type"`
	Amount                 decimal.Decimal          `json:"amount"`
	Date                   time.Time                `json:"date"`
	Note                   string                   `json:"note"`
	AuditFields
}
