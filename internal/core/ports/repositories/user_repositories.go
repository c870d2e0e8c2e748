package repositories

import (
	"context"
	"time"

	"github.com/fintrack/fintrack_app/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiryTime *time.Time) error
	DeleteUser(ctx context.Context, userID string) error
}
