package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack/fintrack_app/internal/apperrors"
	"github.com/fintrack/fintrack_app/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/fintrack/fintrack_app/internal/core/ports/services"
	"github.com/fintrack/fintrack_app/internal/dto"
	"github.com/fintrack/fintrack_app/internal/middleware"
	"github.com/fintrack/fintrack_app/internal/utils/accounting"
	"github.com/fintrack/fintrack_app/internal/utils/pagination"
	"github.com/google/uuid"
)

const dateOnlyFormat = "2006-01-02"

// transactionService routes every transaction-driven balance change through
// the accounting deltas and the repository's atomic save/delete operations.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepository
	accountRepo     portsrepo.AccountRepository
	categoryRepo    portsrepo.CategoryRepository
}

// NewTransactionService creates the transaction ledger service.
func NewTransactionService(transactionRepo portsrepo.TransactionRepository, accountRepo portsrepo.AccountRepository, categoryRepo portsrepo.CategoryRepository) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	delta, err := accounting.TransactionDelta(req.Type, req.Amount)
	if err != nil {
		return nil, err
	}

	// Ownership-scoped lookups: a foreign account or category reads as
	// not found.
	if _, err := s.accountRepo.FindAccountByID(ctx, userID, req.AccountID); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if string(category.Type) != string(req.Type) {
		return nil, fmt.Errorf("%w: category type %q does not match transaction type %q", apperrors.ErrValidation, category.Type, req.Type)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		AccountID:     req.AccountID,
		CategoryID:    req.CategoryID,
		Type:          req.Type,
		Amount:        req.Amount,
		Date:          req.Date,
		Note:          req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, delta); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			logger.Warn("Transaction rejected: insufficient balance", slog.String("account_id", req.AccountID))
		} else {
			logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", txn.AccountID))
	return &txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	filter := portsrepo.ListTransactionsFilter{Limit: params.Limit}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	if params.AccountID != "" {
		filter.AccountID = &params.AccountID
	}
	if params.CategoryID != "" {
		filter.CategoryID = &params.CategoryID
	}
	if params.Type != "" {
		t := domain.TransactionType(params.Type)
		filter.Type = &t
	}
	if params.DateFrom != "" {
		from, err := time.Parse(dateOnlyFormat, params.DateFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid from date", apperrors.ErrValidation)
		}
		filter.DateFrom = &from
	}
	if params.DateTo != "" {
		to, err := time.Parse(dateOnlyFormat, params.DateTo)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid to date", apperrors.ErrValidation)
		}
		filter.DateTo = &to
	}
	if params.NextToken != "" {
		date, createdAt, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		filter.CursorDate = &date
		filter.CursorCreatedAt = &createdAt
	}

	// Fetch one extra row to learn whether another page exists.
	pageSize := filter.Limit
	filter.Limit = pageSize + 1

	txns, err := s.transactionRepo.ListTransactions(ctx, userID, filter)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, nil, err
	}

	var nextToken *string
	if len(txns) > pageSize {
		txns = txns[:pageSize]
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextToken = &token
	}
	return txns, nextToken, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	reversal, err := accounting.TransactionReversalDelta(txn.Type, txn.Amount)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, *txn, reversal); err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return err
	}

	logger.Info("Transaction deleted and balance restored", slog.String("transaction_id", transactionID))
	return nil
}
