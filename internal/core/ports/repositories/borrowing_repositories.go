package repositories

import (
	"context"

	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/fintrack/fintrack_app/internal/utils/accounting"
)

// ListBorrowingsFilter narrows a borrowing listing.
type ListBorrowingsFilter struct {
	Type   *domain.BorrowingType
	Status *domain.BorrowingStatus
}

// BorrowingRepository defines persistence operations for borrowings and
// their append-only payment ledgers.
type BorrowingRepository interface {
	// SaveBorrowing inserts the borrowing; when initial is non-nil the
	// creation balance effect is applied to b.InitialAccountID in the same
	// database transaction.
	SaveBorrowing(ctx context.Context, b domain.Borrowing, initial *accounting.Delta) error

	FindBorrowingByID(ctx context.Context, userID string, borrowingID string) (*domain.Borrowing, error)
	ListBorrowings(ctx context.Context, userID string, filter ListBorrowingsFilter) ([]domain.Borrowing, error)
	ListBorrowingTransactions(ctx context.Context, userID string, borrowingID string) ([]domain.BorrowingTransaction, error)
	UpdateBorrowing(ctx context.Context, b domain.Borrowing) error

	// RecordPayment persists the updated borrowing aggregates, appends the
	// ledger row, and applies the balance delta atomically.
	RecordPayment(ctx context.Context, b domain.Borrowing, ledger domain.BorrowingTransaction, delta accounting.Delta) error

	// DeleteBorrowing removes the borrowing and its ledger rows; when
	// reversal is non-nil the creation effect is undone on
	// b.InitialAccountID in the same database transaction.
	DeleteBorrowing(ctx context.Context, b domain.Borrowing, reversal *accounting.Delta) error
}
