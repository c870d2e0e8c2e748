package services

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack_app/internal/apperrors"
	portssvc "github.com/fintrack/fintrack_app/internal/core/ports/services"
	"github.com/fintrack/fintrack_app/internal/platform/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// googleAuthService verifies Google sign-in credentials, either via the
// server-side authorization-code flow or a client-obtained ID token.
type googleAuthService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleAuthService creates a new googleAuthService.
func NewGoogleAuthService(cfg *config.Config) portssvc.GoogleAuthSvcFacade {
	return &googleAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleAuthSvcFacade = (*googleAuthService)(nil)

func (s *googleAuthService) AuthCodeURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

func (s *googleAuthService) ExchangeAndVerify(ctx context.Context, code string) (string, string, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", "", fmt.Errorf("%w: failed to exchange authorization code", apperrors.ErrUnauthorized)
	}

	idTokenString, ok := token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		return "", "", fmt.Errorf("%w: no id_token in Google response", apperrors.ErrUnauthorized)
	}

	return s.VerifyIDToken(ctx, idTokenString)
}

func (s *googleAuthService) VerifyIDToken(ctx context.Context, idTokenString string) (string, string, error) {
	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid Google ID token", apperrors.ErrUnauthorized)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", "", fmt.Errorf("%w: Google ID token missing email claim", apperrors.ErrUnauthorized)
	}
	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = email
	}
	return email, name, nil
}
