package repositories

import (
	"context"

	"github.com/fintrack/fintrack_app/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts. Every
// lookup is scoped by the owning user; an account belonging to another user
// is reported as not found.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccountCascade removes the account's transactions and then the
	// account itself within a single database transaction.
	DeleteAccountCascade(ctx context.Context, userID string, accountID string) error
}
