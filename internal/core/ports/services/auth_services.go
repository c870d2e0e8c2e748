package services

import (
	"context"
	"time"

	"github.com/fintrack/fintrack_app/internal/core/domain"
)

// TokenSvcFacade issues and validates the application's tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken returns the raw refresh token and its expiry;
	// the caller is responsible for persisting only a hash of it.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	ValidateRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error)
}

// GoogleAuthSvcFacade verifies Google sign-in credentials.
type GoogleAuthSvcFacade interface {
	// AuthCodeURL builds the Google consent page URL for the given
	// anti-forgery state.
	AuthCodeURL(state string) string

	// ExchangeAndVerify exchanges an authorization code for tokens and
	// validates the embedded ID token, returning the verified email and
	// display name.
	ExchangeAndVerify(ctx context.Context, code string) (email string, name string, err error)

	// VerifyIDToken validates a Google ID token obtained client-side and
	// returns the verified email and display name.
	VerifyIDToken(ctx context.Context, idToken string) (email string, name string, err error)
}
