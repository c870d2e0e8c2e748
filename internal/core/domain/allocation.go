package domain

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// AllocationType classifies a recurring commitment.
type AllocationType string

const (
	AllocationExpense AllocationType = "expense"
	AllocationIncome  AllocationType = "income"
	AllocationSavings AllocationType = "savings"
)

var monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ValidMonthKey reports whether s is a well-formed "YYYY-MM" month key.
func ValidMonthKey(s string) bool {
	return monthKeyPattern.MatchString(s)
}

// MonthlyPayment records one mark-paid event for a calendar month.
// Within an allocation there is at most one entry per month.
type MonthlyPayment struct {
	Month     string    `json:"month"` // "YYYY-MM"
	AccountID string    `json:"accountID"`
	Paid      bool      `json:"paid"`
	PaidDate  time.Time `json:"paidDate"`
}

// Allocation is a recurring planned expense/income/savings commitment.
// The allocation itself is not month-scoped; its payment history is kept
// as an insertion-ordered set keyed by month.
type Allocation struct {
	AllocationID    string           `json:"allocationID"`
	UserID          string           `json:"userID"`
	Name            string           `json:"name"`
	Type            AllocationType   `json:"type"`
	Amount          decimal.Decimal  `json:"amount"`
	Active          bool             `json:"active"`
	MonthlyPayments []MonthlyPayment `json:"monthlyPayments"`
	AuditFields
}

// UpsertMonthlyPayment inserts or overwrites the payment entry for p.Month.
// An existing entry is replaced in place so the set keeps insertion order;
// a new month is appended.
func (a *Allocation) UpsertMonthlyPayment(p MonthlyPayment) {
	for i := range a.MonthlyPayments {
		if a.MonthlyPayments[i].Month == p.Month {
			a.MonthlyPayments[i] = p
			return
		}
	}
	a.MonthlyPayments = append(a.MonthlyPayments, p)
}

// PaymentForMonth returns the payment entry for the given month, if any.
func (a *Allocation) PaymentForMonth(month string) (MonthlyPayment, bool) {
	for _, p := range a.MonthlyPayments {
		if p.Month == month {
			return p, true
		}
	}
	return MonthlyPayment{}, false
}
