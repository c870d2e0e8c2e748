package repositories

import (
	"context"
	"time"

	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/fintrack/fintrack_app/internal/utils/accounting"
)

// ListTransactionsFilter narrows and pages a transaction listing. The
// cursor fields come from a decoded pagination token and select rows
// strictly older than the cursor position.
type ListTransactionsFilter struct {
	AccountID       *string
	CategoryID      *string
	Type            *domain.TransactionType
	DateFrom        *time.Time
	DateTo          *time.Time
	Limit           int
	CursorDate      *time.Time
	CursorCreatedAt *time.Time
}

// TransactionRepository defines persistence operations for transactions.
// Save and Delete pair the row write with the account balance delta inside
// one database transaction so the two can never diverge.
type TransactionRepository interface {
	// SaveTransaction inserts the transaction and applies delta to its
	// account atomically. When the delta enforces the balance floor and the
	// account would go negative, nothing is persisted and
	// apperrors.ErrInsufficientBalance is returned.
	SaveTransaction(ctx context.Context, txn domain.Transaction, delta accounting.Delta) error

	FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter ListTransactionsFilter) ([]domain.Transaction, error)

	// DeleteTransaction removes the transaction and applies the reversal
	// delta to its account atomically.
	DeleteTransaction(ctx context.Context, txn domain.Transaction, reversal accounting.Delta) error
}
