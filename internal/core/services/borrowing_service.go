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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type borrowingService struct {
	borrowingRepo portsrepo.BorrowingRepository
	accountRepo   portsrepo.AccountRepository
}

// NewBorrowingService creates the borrowing lifecycle service.
func NewBorrowingService(borrowingRepo portsrepo.BorrowingRepository, accountRepo portsrepo.AccountRepository) portssvc.BorrowingSvcFacade {
	return &borrowingService{
		borrowingRepo: borrowingRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.BorrowingSvcFacade = (*borrowingService)(nil)

func (s *borrowingService) CreateBorrowing(ctx context.Context, userID string, req dto.CreateBorrowingRequest) (*domain.Borrowing, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var initial *accounting.Delta
	initialAccountID := ""
	if req.AccountID != nil && *req.AccountID != "" {
		if _, err := s.accountRepo.FindAccountByID(ctx, userID, *req.AccountID); err != nil {
			return nil, err
		}
		delta, err := accounting.BorrowingCreateDelta(req.Type, req.TotalAmount)
		if err != nil {
			return nil, err
		}
		initial = &delta
		initialAccountID = *req.AccountID
	} else if req.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	now := time.Now()
	b := domain.Borrowing{
		BorrowingID:      uuid.NewString(),
		UserID:           userID,
		Type:             req.Type,
		PersonName:       req.PersonName,
		PersonEmail:      req.PersonEmail,
		PersonPhone:      req.PersonPhone,
		TotalAmount:      req.TotalAmount,
		PaidAmount:       decimal.Zero,
		InitialAccountID: initialAccountID,
		Date:             date,
		Note:             req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	b.Recalculate()

	if err := s.borrowingRepo.SaveBorrowing(ctx, b, initial); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			logger.Warn("Borrowing rejected: insufficient balance to lend", slog.String("account_id", initialAccountID))
		} else {
			logger.Error("Failed to save borrowing", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Borrowing created", slog.String("borrowing_id", b.BorrowingID), slog.String("type", string(b.Type)))
	return &b, nil
}

func (s *borrowingService) GetBorrowingByID(ctx context.Context, userID string, borrowingID string) (*domain.Borrowing, []domain.BorrowingTransaction, error) {
	b, err := s.borrowingRepo.FindBorrowingByID(ctx, userID, borrowingID)
	if err != nil {
		return nil, nil, err
	}
	txns, err := s.borrowingRepo.ListBorrowingTransactions(ctx, userID, borrowingID)
	if err != nil {
		return nil, nil, err
	}
	return b, txns, nil
}

func (s *borrowingService) ListBorrowings(ctx context.Context, userID string, params dto.ListBorrowingsParams) ([]domain.Borrowing, error) {
	filter := portsrepo.ListBorrowingsFilter{}
	if params.Type != "" {
		t := domain.BorrowingType(params.Type)
		filter.Type = &t
	}
	if params.Status != "" {
		st := domain.BorrowingStatus(params.Status)
		filter.Status = &st
	}

	borrowings, err := s.borrowingRepo.ListBorrowings(ctx, userID, filter)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list borrowings", slog.String("error", err.Error()))
		return nil, err
	}
	if borrowings == nil {
		return []domain.Borrowing{}, nil
	}
	return borrowings, nil
}

// UpdateBorrowing edits counterparty details and the total amount. Raising
// the total of a completed borrowing reopens it via the recompute; account
// balances are never touched here.
func (s *borrowingService) UpdateBorrowing(ctx context.Context, userID string, borrowingID string, req dto.UpdateBorrowingRequest) (*domain.Borrowing, error) {
	b, err := s.borrowingRepo.FindBorrowingByID(ctx, userID, borrowingID)
	if err != nil {
		return nil, err
	}

	if req.PersonName != nil {
		b.PersonName = *req.PersonName
	}
	if req.PersonEmail != nil {
		b.PersonEmail = *req.PersonEmail
	}
	if req.PersonPhone != nil {
		b.PersonPhone = *req.PersonPhone
	}
	if req.Note != nil {
		b.Note = *req.Note
	}
	if req.TotalAmount != nil {
		if req.TotalAmount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
		}
		b.TotalAmount = *req.TotalAmount
	}
	b.Recalculate()
	b.LastUpdatedAt = time.Now()

	if err := s.borrowingRepo.UpdateBorrowing(ctx, *b); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to update borrowing", slog.String("error", err.Error()), slog.String("borrowing_id", borrowingID))
		return nil, err
	}
	return b, nil
}

func (s *borrowingService) Pay(ctx context.Context, userID string, borrowingID string, req dto.PayBorrowingRequest) (*domain.Borrowing, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	b, err := s.borrowingRepo.FindBorrowingByID(ctx, userID, borrowingID)
	if err != nil {
		return nil, err
	}
	if b.Status == domain.BorrowingCompleted {
		return nil, fmt.Errorf("%w: borrowing is already completed", apperrors.ErrInvalidState)
	}

	delta, err := accounting.BorrowingPaymentDelta(b.Type, req.Amount)
	if err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(b.RemainingAmount) {
		return nil, fmt.Errorf("%w: payment of %s exceeds remaining amount %s", apperrors.ErrInvalidState, req.Amount.String(), b.RemainingAmount.String())
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, userID, req.AccountID); err != nil {
		return nil, err
	}

	ledgerType := domain.BorrowingPayment
	if b.Type == domain.Lend {
		ledgerType = domain.BorrowingReturn
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	now := time.Now()
	ledger := domain.BorrowingTransaction{
		BorrowingTransactionID: uuid.NewString(),
		UserID:                 userID,
		BorrowingID:            b.BorrowingID,
		AccountID:              req.AccountID,
		Type:                   ledgerType,
		Amount:                 req.Amount,
		Date:                   date,
		Note:                   req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	b.PaidAmount = b.PaidAmount.Add(req.Amount)
	b.Recalculate()
	b.LastUpdatedAt = now

	if err := s.borrowingRepo.RecordPayment(ctx, *b, ledger, delta); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			logger.Warn("Borrowing payment rejected: insufficient balance", slog.String("borrowing_id", borrowingID), slog.String("account_id", req.AccountID))
		} else {
			logger.Error("Failed to record borrowing payment", slog.String("error", err.Error()), slog.String("borrowing_id", borrowingID))
		}
		return nil, err
	}

	logger.Info("Borrowing payment recorded",
		slog.String("borrowing_id", borrowingID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(b.Status)),
	)
	return b, nil
}

// DeleteBorrowing undoes the creation-time balance effect on the initial
// account (payments made since are not individually reversed) and removes
// the borrowing with its ledger.
func (s *borrowingService) DeleteBorrowing(ctx context.Context, userID string, borrowingID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	b, err := s.borrowingRepo.FindBorrowingByID(ctx, userID, borrowingID)
	if err != nil {
		return err
	}

	var reversal *accounting.Delta
	if b.InitialAccountID != "" {
		delta, err := accounting.BorrowingReversalDelta(b.Type, b.TotalAmount)
		if err != nil {
			return err
		}
		reversal = &delta
	}

	if err := s.borrowingRepo.DeleteBorrowing(ctx, *b, reversal); err != nil {
		logger.Error("Failed to delete borrowing", slog.String("error", err.Error()), slog.String("borrowing_id", borrowingID))
		return err
	}

	logger.Info("Borrowing deleted", slog.String("borrowing_id", borrowingID))
	return nil
}
