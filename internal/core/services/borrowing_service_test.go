package services_test

import (
	"context"
	"testing"

	"github.com/fintrack/fintrack_app/internal/apperrors"
	"github.com/fintrack/fintrack_app/internal/core/domain"
	portssvc "github.com/fintrack/fintrack_app/internal/core/ports/services"
	"github.com/fintrack/fintrack_app/internal/core/services"
	"github.com/fintrack/fintrack_app/internal/dto"
	"github.com/fintrack/fintrack_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BorrowingServiceTestSuite struct {
	suite.Suite
	mockBorrowingRepo *MockBorrowingRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.BorrowingSvcFacade
	ctx               context.Context
}

func (suite *BorrowingServiceTestSuite) SetupTest() {
	suite.mockBorrowingRepo = new(MockBorrowingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewBorrowingService(suite.mockBorrowingRepo, suite.mockAccountRepo)
	suite.ctx = context.Background()
}

func (suite *BorrowingServiceTestSuite) TestCreateBorrowing_LendDebitsAccount() {
	userID := "user-1"
	accountID := "acc-1"
	req := dto.CreateBorrowingRequest{
		Type:        domain.Lend,
		PersonName:  "Alice",
		TotalAmount: dec("50"),
		AccountID:   &accountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, userID, accountID).Return(&domain.Account{AccountID: accountID, UserID: userID}, nil)
	suite.mockBorrowingRepo.On("SaveBorrowing", suite.ctx, mock.MatchedBy(func(b domain.Borrowing) bool {
		return b.Status == domain.BorrowingActive &&
			b.InitialAccountID == accountID &&
			b.RemainingAmount.Equal(dec("50")) &&
			b.PaidAmount.IsZero()
	}), mock.MatchedBy(func(initial *accounting.Delta) bool {
		return initial != nil && initial.Amount.Equal(dec("-50")) && initial.EnforceFloor
	})).Return(nil)

	b, err := suite.service.CreateBorrowing(suite.ctx, userID, req)

	suite.NoError(err)
	suite.Equal(domain.BorrowingActive, b.Status)
	suite.mockBorrowingRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestCreateBorrowing_WithoutAccountSkipsBalance() {
	req := dto.CreateBorrowingRequest{
		Type:        domain.Borrow,
		PersonName:  "Bob",
		TotalAmount: dec("40"),
	}

	suite.mockBorrowingRepo.On("SaveBorrowing", suite.ctx, mock.AnythingOfType("domain.Borrowing"), (*accounting.Delta)(nil)).Return(nil)

	b, err := suite.service.CreateBorrowing(suite.ctx, "user-1", req)

	suite.NoError(err)
	suite.Empty(b.InitialAccountID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything, mock.Anything)
	suite.mockBorrowingRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestCreateBorrowing_InsufficientBalancePropagates() {
	accountID := "acc-1"
	req := dto.CreateBorrowingRequest{
		Type:        domain.Lend,
		PersonName:  "Alice",
		TotalAmount: dec("500"),
		AccountID:   &accountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "user-1", accountID).Return(&domain.Account{AccountID: accountID}, nil)
	suite.mockBorrowingRepo.On("SaveBorrowing", suite.ctx, mock.Anything, mock.Anything).Return(apperrors.ErrInsufficientBalance)

	_, err := suite.service.CreateBorrowing(suite.ctx, "user-1", req)

	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
}

func (suite *BorrowingServiceTestSuite) TestPay_PartialThenCompleted() {
	userID := "user-1"
	borrowingID := "bor-1"
	active := &domain.Borrowing{
		BorrowingID:     borrowingID,
		UserID:          userID,
		Type:            domain.Lend,
		TotalAmount:     dec("50"),
		PaidAmount:      decimal.Zero,
		RemainingAmount: dec("50"),
		Status:          domain.BorrowingActive,
	}

	suite.mockBorrowingRepo.On("FindBorrowingByID", suite.ctx, userID, borrowingID).Return(active, nil)
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, userID, "acc-1").Return(&domain.Account{AccountID: "acc-1"}, nil)
	suite.mockBorrowingRepo.On("RecordPayment", suite.ctx, mock.MatchedBy(func(b domain.Borrowing) bool {
		return b.PaidAmount.Equal(dec("20")) &&
			b.RemainingAmount.Equal(dec("30")) &&
			b.Status == domain.BorrowingActive
	}), mock.MatchedBy(func(ledger domain.BorrowingTransaction) bool {
		// Money coming back on a lend is recorded as a return.
		return ledger.Type == domain.BorrowingReturn && ledger.Amount.Equal(dec("20"))
	}), mock.MatchedBy(func(delta accounting.Delta) bool {
		return delta.Amount.Equal(dec("20")) && !delta.EnforceFloor
	})).Return(nil)

	b, err := suite.service.Pay(suite.ctx, userID, borrowingID, dto.PayBorrowingRequest{AccountID: "acc-1", Amount: dec("20")})

	suite.NoError(err)
	suite.Equal(domain.BorrowingActive, b.Status)
	suite.True(b.RemainingAmount.Equal(dec("30")))
	suite.mockBorrowingRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestPay_FinalPaymentCompletes() {
	userID := "user-1"
	borrowingID := "bor-1"
	active := &domain.Borrowing{
		BorrowingID:     borrowingID,
		UserID:          userID,
		Type:            domain.Borrow,
		TotalAmount:     dec("50"),
		PaidAmount:      dec("20"),
		RemainingAmount: dec("30"),
		Status:          domain.BorrowingActive,
	}

	suite.mockBorrowingRepo.On("FindBorrowingByID", suite.ctx, userID, borrowingID).Return(active, nil)
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, userID, "acc-1").Return(&domain.Account{AccountID: "acc-1"}, nil)
	suite.mockBorrowingRepo.On("RecordPayment", suite.ctx, mock.MatchedBy(func(b domain.Borrowing) bool {
		return b.Status == domain.BorrowingCompleted && b.RemainingAmount.IsZero()
	}), mock.MatchedBy(func(ledger domain.BorrowingTransaction) bool {
		return ledger.Type == domain.BorrowingPayment
	}), mock.MatchedBy(func(delta accounting.Delta) bool {
		// Repaying borrowed money debits the account and must not overdraw.
		return delta.Amount.Equal(dec("-30")) && delta.EnforceFloor
	})).Return(nil)

	b, err := suite.service.Pay(suite.ctx, userID, borrowingID, dto.PayBorrowingRequest{AccountID: "acc-1", Amount: dec("30")})

	suite.NoError(err)
	suite.Equal(domain.BorrowingCompleted, b.Status)
}

func (suite *BorrowingServiceTestSuite) TestPay_CompletedBorrowingRejected() {
	completed := &domain.Borrowing{
		BorrowingID:     "bor-1",
		Type:            domain.Borrow,
		TotalAmount:     dec("50"),
		PaidAmount:      dec("50"),
		RemainingAmount: decimal.Zero,
		Status:          domain.BorrowingCompleted,
	}

	suite.mockBorrowingRepo.On("FindBorrowingByID", suite.ctx, "user-1", "bor-1").Return(completed, nil)

	_, err := suite.service.Pay(suite.ctx, "user-1", "bor-1", dto.PayBorrowingRequest{AccountID: "acc-1", Amount: dec("10")})

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockBorrowingRepo.AssertNotCalled(suite.T(), "RecordPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BorrowingServiceTestSuite) TestPay_OverpaymentRejected() {
	active := &domain.Borrowing{
		BorrowingID:     "bor-1",
		Type:            domain.Borrow,
		TotalAmount:     dec("50"),
		PaidAmount:      dec("40"),
		RemainingAmount: dec("10"),
		Status:          domain.BorrowingActive,
	}

	suite.mockBorrowingRepo.On("FindBorrowingByID", suite.ctx, "user-1", "bor-1").Return(active, nil)

	_, err := suite.service.Pay(suite.ctx, "user-1", "bor-1", dto.PayBorrowingRequest{AccountID: "acc-1", Amount: dec("25")})

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockBorrowingRepo.AssertNotCalled(suite.T(), "RecordPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BorrowingServiceTestSuite) TestDeleteBorrowing_ReversesInitialEffect() {
	b := &domain.Borrowing{
		BorrowingID:      "bor-1",
		UserID:           "user-1",
		Type:             domain.Borrow,
		TotalAmount:      dec("40"),
		InitialAccountID: "acc-1",
		Status:           domain.BorrowingActive,
	}

	suite.mockBorrowingRepo.On("FindBorrowingByID", suite.ctx, "user-1", "bor-1").Return(b, nil)
	suite.mockBorrowingRepo.On("DeleteBorrowing", suite.ctx, *b, mock.MatchedBy(func(reversal *accounting.Delta) bool {
		// Deleting a borrow takes the credited funds back out without a floor.
		return reversal != nil && reversal.Amount.Equal(dec("-40")) && !reversal.EnforceFloor
	})).Return(nil)

	err := suite.service.DeleteBorrowing(suite.ctx, "user-1", "bor-1")

	suite.NoError(err)
	suite.mockBorrowingRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestDeleteBorrowing_NoInitialAccountNoReversal() {
	b := &domain.Borrowing{
		BorrowingID: "bor-1",
		UserID:      "user-1",
		Type:        domain.Lend,
		TotalAmount: dec("40"),
		Status:      domain.BorrowingActive,
	}

	suite.mockBorrowingRepo.On("FindBorrowingByID", suite.ctx, "user-1", "bor-1").Return(b, nil)
	suite.mockBorrowingRepo.On("DeleteBorrowing", suite.ctx, *b, (*accounting.Delta)(nil)).Return(nil)

	err := suite.service.DeleteBorrowing(suite.ctx, "user-1", "bor-1")

	suite.NoError(err)
	suite.mockBorrowingRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestUpdateBorrowing_RaisedTotalReopens() {
	completed := &domain.Borrowing{
		BorrowingID:     "bor-1",
		UserID:          "user-1",
		Type:            domain.Borrow,
		TotalAmount:     dec("50"),
		PaidAmount:      dec("50"),
		RemainingAmount: decimal.Zero,
		Status:          domain.BorrowingCompleted,
	}
	newTotal := dec("80")

	suite.mockBorrowingRepo.On("FindBorrowingByID", suite.ctx, "user-1", "bor-1").Return(completed, nil)
	suite.mockBorrowingRepo.On("UpdateBorrowing", suite.ctx, mock.MatchedBy(func(b domain.Borrowing) bool {
		return b.Status == domain.BorrowingActive && b.RemainingAmount.Equal(dec("30"))
	})).Return(nil)

	b, err := suite.service.UpdateBorrowing(suite.ctx, "user-1", "bor-1", dto.UpdateBorrowingRequest{TotalAmount: &newTotal})

	suite.NoError(err)
	suite.Equal(domain.BorrowingActive, b.Status)
}

func TestBorrowingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BorrowingServiceTestSuite))
}
