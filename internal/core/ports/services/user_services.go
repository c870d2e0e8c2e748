package services

import (
	"context"
	"time"

	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/fintrack/fintrack_app/internal/dto"
)

// UserSvcFacade exposes user management operations.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	Authenticate(ctx context.Context, email string, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error

	// FindOrCreateGoogleUser resolves a user from a verified Google
	// identity, creating one on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, email string, name string) (*domain.User, error)

	// SetRefreshToken stores the hash of a newly issued refresh token.
	SetRefreshToken(ctx context.Context, userID string, tokenHash string, expiryTime time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}
