package accounting

import (
	"fmt"

	"github.com/fintrack/fintrack_app/internal/apperrors"
	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Delta is a computed account-balance mutation. EnforceFloor says whether
// the persistence layer must reject the mutation when it would take the
// balance below zero. Reversals never enforce the floor.
type Delta struct {
	Amount       decimal.Decimal
	EnforceFloor bool
}

// TransactionDelta computes the balance effect of creating a transaction:
// income adds, expense subtracts and must not overdraw the account.
func TransactionDelta(txnType domain.TransactionType, amount decimal.Decimal) (Delta, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Delta{}, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	switch txnType {
	case domain.Income:
		return Delta{Amount: amount}, nil
	case domain.Expense:
		return Delta{Amount: amount.Neg(), EnforceFloor: true}, nil
	default:
		return Delta{}, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txnType)
	}
}

// TransactionReversalDelta computes the inverse effect applied when a
// transaction is deleted. Reversal is always allowed.
func TransactionReversalDelta(txnType domain.TransactionType, amount decimal.Decimal) (Delta, error) {
	d, err := TransactionDelta(txnType, amount)
	if err != nil {
		return Delta{}, err
	}
	return Delta{Amount: d.Amount.Neg()}, nil
}

// AllocationPaymentDelta computes the balance effect of marking an
// allocation month as paid. Income allocations credit the account; expense
// and savings allocations debit it and must not overdraw.
func AllocationPaymentDelta(allocType domain.AllocationType, amount decimal.Decimal) (Delta, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Delta{}, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	switch allocType {
	case domain.AllocationIncome:
		return Delta{Amount: amount}, nil
	case domain.AllocationExpense, domain.AllocationSavings:
		return Delta{Amount: amount.Neg(), EnforceFloor: true}, nil
	default:
		return Delta{}, fmt.Errorf("%w: unknown allocation type %q", apperrors.ErrValidation, allocType)
	}
}

// BorrowingCreateDelta computes the initial balance effect of recording a
// borrowing: borrowing money credits the account, lending debits it and
// requires sufficient balance.
func BorrowingCreateDelta(bType domain.BorrowingType, total decimal.Decimal) (Delta, error) {
	if total.LessThanOrEqual(decimal.Zero) {
		return Delta{}, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}
	switch bType {
	case domain.Borrow:
		return Delta{Amount: total}, nil
	case domain.Lend:
		return Delta{Amount: total.Neg(), EnforceFloor: true}, nil
	default:
		return Delta{}, fmt.Errorf("%w: unknown borrowing type %q", apperrors.ErrValidation, bType)
	}
}

// BorrowingPaymentDelta computes the balance effect of a payment event:
// repaying a borrow debits the account (with floor check), receiving back a
// lend credits it.
func BorrowingPaymentDelta(bType domain.BorrowingType, amount decimal.Decimal) (Delta, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Delta{}, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	switch bType {
	case domain.Borrow:
		return Delta{Amount: amount.Neg(), EnforceFloor: true}, nil
	case domain.Lend:
		return Delta{Amount: amount}, nil
	default:
		return Delta{}, fmt.Errorf("%w: unknown borrowing type %q", apperrors.ErrValidation, bType)
	}
}

// BorrowingReversalDelta computes the exact inverse of the creation effect,
// applied once on deletion regardless of intervening payments.
func BorrowingReversalDelta(bType domain.BorrowingType, total decimal.Decimal) (Delta, error) {
	d, err := BorrowingCreateDelta(bType, total)
	if err != nil {
		return Delta{}, err
	}
	return Delta{Amount: d.Amount.Neg()}, nil
}
