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

type allocationService struct {
	allocationRepo portsrepo.AllocationRepository
	accountRepo    portsrepo.AccountRepository
	categorySvc    portssvc.CategorySvcFacade
}

// NewAllocationService creates the allocation service.
func NewAllocationService(allocationRepo portsrepo.AllocationRepository, accountRepo portsrepo.AccountRepository, categorySvc portssvc.CategorySvcFacade) portssvc.AllocationSvcFacade {
	return &allocationService{
		allocationRepo: allocationRepo,
		accountRepo:    accountRepo,
		categorySvc:    categorySvc,
	}
}

var _ portssvc.AllocationSvcFacade = (*allocationService)(nil)

func (s *allocationService) CreateAllocation(ctx context.Context, userID string, req dto.CreateAllocationRequest) (*domain.Allocation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now()
	allocation := domain.Allocation{
		AllocationID:    uuid.NewString(),
		UserID:          userID,
		Name:            req.Name,
		Type:            req.Type,
		Amount:          req.Amount,
		Active:          active,
		MonthlyPayments: []domain.MonthlyPayment{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.allocationRepo.SaveAllocation(ctx, allocation); err != nil {
		logger.Error("Failed to save allocation", slog.String("error", err.Error()))
		return nil, err
	}
	return &allocation, nil
}

func (s *allocationService) GetAllocationByID(ctx context.Context, userID string, allocationID string) (*domain.Allocation, error) {
	allocation, err := s.allocationRepo.FindAllocationByID(ctx, userID, allocationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find allocation", slog.String("error", err.Error()), slog.String("allocation_id", allocationID))
		}
		return nil, err
	}
	return allocation, nil
}

func (s *allocationService) ListAllocations(ctx context.Context, userID string) ([]domain.Allocation, error) {
	allocations, err := s.allocationRepo.ListAllocations(ctx, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list allocations", slog.String("error", err.Error()))
		return nil, err
	}
	if allocations == nil {
		return []domain.Allocation{}, nil
	}
	return allocations, nil
}

func (s *allocationService) UpdateAllocation(ctx context.Context, userID string, allocationID string, req dto.UpdateAllocationRequest) (*domain.Allocation, error) {
	allocation, err := s.allocationRepo.FindAllocationByID(ctx, userID, allocationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		allocation.Name = *req.Name
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		allocation.Amount = *req.Amount
	}
	if req.Active != nil {
		allocation.Active = *req.Active
	}
	allocation.LastUpdatedAt = time.Now()

	if err := s.allocationRepo.UpdateAllocation(ctx, *allocation); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to update allocation", slog.String("error", err.Error()), slog.String("allocation_id", allocationID))
		return nil, err
	}
	return allocation, nil
}

func (s *allocationService) DeleteAllocation(ctx context.Context, userID string, allocationID string) error {
	return s.allocationRepo.DeleteAllocation(ctx, userID, allocationID)
}

// MarkPaid records the allocation as paid for a month. The payment entry is
// an upsert keyed by month, but the balance delta and the synthetic
// transaction are applied on every call, including re-marks of an already
// paid month.
func (s *allocationService) MarkPaid(ctx context.Context, userID string, allocationID string, req dto.MarkAllocationPaidRequest) (*domain.Allocation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidMonthKey(req.Month) {
		return nil, fmt.Errorf("%w: month must be in YYYY-MM format", apperrors.ErrValidation)
	}

	allocation, err := s.allocationRepo.FindAllocationByID(ctx, userID, allocationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, userID, req.AccountID); err != nil {
		return nil, err
	}

	delta, err := accounting.AllocationPaymentDelta(allocation.Type, allocation.Amount)
	if err != nil {
		return nil, err
	}

	txnType := domain.Expense
	if allocation.Type == domain.AllocationIncome {
		txnType = domain.Income
	}
	category, err := s.categorySvc.FindOrCreateDefaultCategory(ctx, userID, domain.CategoryType(txnType))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment := domain.MonthlyPayment{
		Month:     req.Month,
		AccountID: req.AccountID,
		Paid:      true,
		PaidDate:  now,
	}
	syntheticTxn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		AccountID:     req.AccountID,
		CategoryID:    category.CategoryID,
		Type:          txnType,
		Amount:        allocation.Amount,
		Date:          now,
		Note:          fmt.Sprintf("%s (%s)", allocation.Name, req.Month),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.allocationRepo.MarkPaid(ctx, allocation.AllocationID, payment, syntheticTxn, delta); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			logger.Warn("Allocation payment rejected: insufficient balance", slog.String("allocation_id", allocationID), slog.String("account_id", req.AccountID))
		} else {
			logger.Error("Failed to mark allocation paid", slog.String("error", err.Error()), slog.String("allocation_id", allocationID))
		}
		return nil, err
	}

	allocation.UpsertMonthlyPayment(payment)
	logger.Info("Allocation marked paid", slog.String("allocation_id", allocationID), slog.String("month", req.Month))
	return allocation, nil
}
