package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Allocation is the DB representation of an allocation row.
type Allocation struct {
	AllocationID string          `db:"allocation_id"`
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	Type         string          `db:"type"`
	Amount       decimal.Decimal `db:"amount"`
	Active       bool            `db:"active"`
	AuditFields
}

// AllocationPayment is the DB representation of one monthly payment entry.
// The position column preserves insertion order; an upsert for an existing
// month overwrites the row without changing its position.
type AllocationPayment struct {
	AllocationID string    `db:"allocation_id"`
	Month        string    `db:"month"`
	AccountID    string    `db:"account_id"`
	Paid         bool      `db:"paid"`
	PaidDate     time.Time `db:"paid_date"`
	Position     int64     `db:"position"`
}
