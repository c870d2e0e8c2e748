package services

import (
	"context"

	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/fintrack/fintrack_app/internal/dto"
)

// TransactionSvcFacade exposes the transaction ledger operations.
type TransactionSvcFacade interface {
	// CreateTransaction validates the request, applies the balance delta to
	// the account, and persists the transaction as one atomic unit.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// ListTransactions returns a page of transactions ordered by date
	// descending, with an opaque cursor for the next page.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)

	// DeleteTransaction reverses the transaction's balance effect and
	// removes it atomically.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}
