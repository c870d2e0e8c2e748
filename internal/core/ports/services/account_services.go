package services

import (
	"context"

	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/fintrack/fintrack_app/internal/dto"
)

// AccountSvcFacade exposes account management operations. All operations
// are scoped to the calling user.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, userID string, accountID string) error
}
