package services

import (
	"context"

	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/fintrack/fintrack_app/internal/dto"
)

// BorrowingSvcFacade exposes the borrowing/lending lifecycle.
type BorrowingSvcFacade interface {
	CreateBorrowing(ctx context.Context, userID string, req dto.CreateBorrowingRequest) (*domain.Borrowing, error)
	GetBorrowingByID(ctx context.Context, userID string, borrowingID string) (*domain.Borrowing, []domain.BorrowingTransaction, error)
	ListBorrowings(ctx context.Context, userID string, params dto.ListBorrowingsParams) ([]domain.Borrowing, error)
	UpdateBorrowing(ctx context.Context, userID string, borrowingID string, req dto.UpdateBorrowingRequest) (*domain.Borrowing, error)

	// Pay records a payment event: rejects completed borrowings and
	// amounts exceeding the remaining amount, otherwise adjusts the paid
	// amount, the account balance, and the payment ledger atomically.
	Pay(ctx context.Context, userID string, borrowingID string, req dto.PayBorrowingRequest) (*domain.Borrowing, error)

	// DeleteBorrowing reverses the original creation balance effect (never
	// the payments) and cascades deletion of the payment ledger.
	DeleteBorrowing(ctx context.Context, userID string, borrowingID string) error
}
