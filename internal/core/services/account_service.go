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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates the account management service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	balance := decimal.Zero
	if req.Balance != nil {
		if req.Balance.IsNegative() {
			return nil, fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
		}
		balance = *req.Balance
	}

	now := time.Now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		AccountType:  req.AccountType,
		Balance:      balance,
		CurrencyCode: req.CurrencyCode,
		Icon:         req.Icon,
		Color:        req.Color,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.CurrencyCode != nil {
		account.CurrencyCode = *req.CurrencyCode
	}
	if req.Icon != nil {
		account.Icon = *req.Icon
	}
	if req.Color != nil {
		account.Color = *req.Color
	}
	account.LastUpdatedAt = time.Now()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeleteAccountCascade(ctx, userID, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	logger.Info("Account deleted with its transactions", slog.String("account_id", accountID))
	return nil
}
