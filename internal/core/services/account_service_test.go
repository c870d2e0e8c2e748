package services_test

import (
	"context"
	"testing"

	"github.com/fintrack/fintrack_app/internal/apperrors"
	"github.com/fintrack/fintrack_app/internal/core/domain"
	portssvc "github.com/fintrack/fintrack_app/internal/core/ports/services"
	"github.com/fintrack/fintrack_app/internal/core/services"
	"github.com/fintrack/fintrack_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	ctx             context.Context
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.ctx = context.Background()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	balance := dec("150.50")
	req := dto.CreateAccountRequest{
		Name:         "Main Checking",
		AccountType:  domain.AccountBank,
		Balance:      &balance,
		CurrencyCode: "USD",
	}

	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.UserID == "user-1" && a.Balance.Equal(dec("150.50")) && a.AccountID != ""
	})).Return(nil)

	account, err := suite.service.CreateAccount(suite.ctx, "user-1", req)

	suite.NoError(err)
	suite.Equal("Main Checking", account.Name)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultsToZeroBalance() {
	req := dto.CreateAccountRequest{
		Name:         "Wallet",
		AccountType:  domain.AccountWallet,
		CurrencyCode: "EUR",
	}

	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Balance.IsZero()
	})).Return(nil)

	account, err := suite.service.CreateAccount(suite.ctx, "user-1", req)

	suite.NoError(err)
	suite.True(account.Balance.IsZero())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NegativeOpeningBalanceRejected() {
	balance := dec("-10")
	req := dto.CreateAccountRequest{
		Name:         "Wallet",
		AccountType:  domain.AccountWallet,
		Balance:      &balance,
		CurrencyCode: "EUR",
	}

	_, err := suite.service.CreateAccount(suite.ctx, "user-1", req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NeverTouchesBalance() {
	existing := &domain.Account{
		AccountID: "acc-1",
		UserID:    "user-1",
		Name:      "Old Name",
		Balance:   dec("99"),
	}
	newName := "New Name"

	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "user-1", "acc-1").Return(existing, nil)
	suite.mockAccountRepo.On("UpdateAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "New Name" && a.Balance.Equal(dec("99"))
	})).Return(nil)

	account, err := suite.service.UpdateAccount(suite.ctx, "user-1", "acc-1", dto.UpdateAccountRequest{Name: &newName})

	suite.NoError(err)
	suite.Equal("New Name", account.Name)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Cascades() {
	suite.mockAccountRepo.On("DeleteAccountCascade", suite.ctx, "user-1", "acc-1").Return(nil)

	err := suite.service.DeleteAccount(suite.ctx, "user-1", "acc-1")

	suite.NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_NotFound() {
	suite.mockAccountRepo.On("DeleteAccountCascade", suite.ctx, "user-1", "missing").Return(apperrors.ErrNotFound)

	err := suite.service.DeleteAccount(suite.ctx, "user-1", "missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_NilBecomesEmptySlice() {
	suite.mockAccountRepo.On("ListAccounts", suite.ctx, "user-1").Return([]domain.Account(nil), nil)

	accounts, err := suite.service.ListAccounts(suite.ctx, "user-1")

	suite.NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
