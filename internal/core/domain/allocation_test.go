package domain_test

import (
	"testing"
	"time"

	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidMonthKey(t *testing.T) {
	assert.True(t, domain.ValidMonthKey("2025-01"))
	assert.True(t, domain.ValidMonthKey("1999-12"))

	assert.False(t, domain.ValidMonthKey("2025-1"))
	assert.False(t, domain.ValidMonthKey("2025/01"))
	assert.False(t, domain.ValidMonthKey("2025-011"))
	assert.False(t, domain.ValidMonthKey("202501"))
	assert.False(t, domain.ValidMonthKey(""))
}

func TestUpsertMonthlyPaymentKeepsInsertionOrder(t *testing.T) {
	a := domain.Allocation{}

	jan := domain.MonthlyPayment{Month: "2025-01", AccountID: "acc-1", Paid: true, PaidDate: time.Now()}
	feb := domain.MonthlyPayment{Month: "2025-02", AccountID: "acc-1", Paid: true, PaidDate: time.Now()}
	a.UpsertMonthlyPayment(jan)
	a.UpsertMonthlyPayment(feb)

	// Re-marking January from another account overwrites in place.
	janAgain := domain.MonthlyPayment{Month: "2025-01", AccountID: "acc-2", Paid: true, PaidDate: time.Now()}
	a.UpsertMonthlyPayment(janAgain)

	assert.Len(t, a.MonthlyPayments, 2)
	assert.Equal(t, "2025-01", a.MonthlyPayments[0].Month)
	assert.Equal(t, "acc-2", a.MonthlyPayments[0].AccountID)
	assert.Equal(t, "2025-02", a.MonthlyPayments[1].Month)
}

func TestPaymentForMonth(t *testing.T) {
	a := domain.Allocation{}
	a.UpsertMonthlyPayment(domain.MonthlyPayment{Month: "2025-03", AccountID: "acc-1", Paid: true})

	p, ok := a.PaymentForMonth("2025-03")
	assert.True(t, ok)
	assert.Equal(t, "acc-1", p.AccountID)

	_, ok = a.PaymentForMonth("2025-04")
	assert.False(t, ok)
}
