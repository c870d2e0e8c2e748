package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/fintrack_app/internal/apperrors"
	"github.com/fintrack/fintrack_app/internal/core/domain"
	portssvc "github.com/fintrack/fintrack_app/internal/core/ports/services"
	"github.com/fintrack/fintrack_app/internal/core/services"
	"github.com/fintrack/fintrack_app/internal/platform/config"
	"github.com/fintrack/fintrack_app/internal/utils"
	"github.com/stretchr/testify/suite"
)

type TokenServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	cfg          *config.Config
	service      portssvc.TokenSvcFacade
	ctx          context.Context
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.cfg = &config.Config{
		JWTSecret:                  "test-secret",
		JWTIssuer:                  "fintrack-test",
		JWTExpiryDuration:          15 * time.Minute,
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	userService := services.NewUserService(suite.mockUserRepo)
	suite.service = services.NewTokenService(suite.cfg, userService)
	suite.ctx = context.Background()
}

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_CarriesUserAsSubject() {
	user := &domain.User{UserID: "user-1"}

	token, expiry, err := suite.service.GenerateAccessToken(suite.ctx, user)

	suite.Require().NoError(err)
	suite.True(expiry.After(time.Now()))

	claims, err := utils.ParseAndValidateJWT(token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal("user-1", claims.Subject)
	suite.Equal("fintrack-test", claims.Issuer)
}

func (suite *TokenServiceTestSuite) TestGenerateRefreshToken_Opaque() {
	user := &domain.User{UserID: "user-1"}

	first, _, err := suite.service.GenerateRefreshToken(suite.ctx, user)
	suite.Require().NoError(err)
	second, _, err := suite.service.GenerateRefreshToken(suite.ctx, user)
	suite.Require().NoError(err)

	suite.NotEmpty(first)
	suite.NotEqual(first, second)

	// The raw token is not a JWT; only its hash is ever stored.
	_, err = utils.ParseAndValidateJWT(first, suite.cfg.JWTSecret)
	suite.Error(err)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_Success() {
	raw := "raw-refresh-token"
	expiry := time.Now().Add(time.Hour)
	user := &domain.User{
		UserID:                 "user-1",
		RefreshTokenHash:       utils.HashToken(raw),
		RefreshTokenExpiryTime: &expiry,
	}

	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-1").Return(user, nil)

	got, err := suite.service.ValidateRefreshToken(suite.ctx, "user-1", raw)

	suite.NoError(err)
	suite.Equal("user-1", got.UserID)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_WrongToken() {
	expiry := time.Now().Add(time.Hour)
	user := &domain.User{
		UserID:                 "user-1",
		RefreshTokenHash:       utils.HashToken("the-real-token"),
		RefreshTokenExpiryTime: &expiry,
	}

	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-1").Return(user, nil)

	_, err := suite.service.ValidateRefreshToken(suite.ctx, "user-1", "some-other-token")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_Expired() {
	raw := "raw-refresh-token"
	expiry := time.Now().Add(-time.Minute)
	user := &domain.User{
		UserID:                 "user-1",
		RefreshTokenHash:       utils.HashToken(raw),
		RefreshTokenExpiryTime: &expiry,
	}

	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-1").Return(user, nil)

	_, err := suite.service.ValidateRefreshToken(suite.ctx, "user-1", raw)

	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_NoneStored() {
	user := &domain.User{UserID: "user-1"}

	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-1").Return(user, nil)

	_, err := suite.service.ValidateRefreshToken(suite.ctx, "user-1", "anything")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
