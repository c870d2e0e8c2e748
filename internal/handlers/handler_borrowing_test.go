package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fintrack/fintrack_app/internal/apperrors"
	"github.com/fintrack/fintrack_app/internal/core/domain"
	portssvc "github.com/fintrack/fintrack_app/internal/core/ports/services"
	"github.com/fintrack/fintrack_app/internal/dto"
	"github.com/fintrack/fintrack_app/internal/handlers"
	"github.com/fintrack/fintrack_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BorrowingService ---

type MockBorrowingService struct {
	mock.Mock
}

var _ portssvc.BorrowingSvcFacade = (*MockBorrowingService)(nil)

func (m *MockBorrowingService) CreateBorrowing(ctx context.Context, userID string, req dto.CreateBorrowingRequest) (*domain.Borrowing, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrowing), args.Error(1)
}

func (m *MockBorrowingService) GetBorrowingByID(ctx context.Context, userID string, borrowingID string) (*domain.Borrowing, []domain.BorrowingTransaction, error) {
	args := m.Called(ctx, userID, borrowingID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Borrowing), args.Get(1).([]domain.BorrowingTransaction), args.Error(2)
}

func (m *MockBorrowingService) ListBorrowings(ctx context.Context, userID string, params dto.ListBorrowingsParams) ([]domain.Borrowing, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Borrowing), args.Error(1)
}

func (m *MockBorrowingService) UpdateBorrowing(ctx context.Context, userID string, borrowingID string, req dto.UpdateBorrowingRequest) (*domain.Borrowing, error) {
	args := m.Called(ctx, userID, borrowingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrowing), args.Error(1)
}

func (m *MockBorrowingService) Pay(ctx context.Context, userID string, borrowingID string, req dto.PayBorrowingRequest) (*domain.Borrowing, error) {
	args := m.Called(ctx, userID, borrowingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrowing), args.Error(1)
}

func (m *MockBorrowingService) DeleteBorrowing(ctx context.Context, userID string, borrowingID string) error {
	args := m.Called(ctx, userID, borrowingID)
	return args.Error(0)
}

// --- Test Suite ---

type BorrowingHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockBorrowingService *MockBorrowingService
	jwtSecret            string
}

func (suite *BorrowingHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "fintrack-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *BorrowingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockBorrowingService = new(MockBorrowingService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterBorrowingRoutes(v1, suite.mockBorrowingService)
}

func (suite *BorrowingHandlerTestSuite) TestPay_Success() {
	userID := uuid.NewString()
	borrowingID := uuid.NewString()
	accountID := uuid.NewString()

	updated := &domain.Borrowing{
		BorrowingID:     borrowingID,
		UserID:          userID,
		Type:            domain.Lend,
		TotalAmount:     decimal.NewFromInt(50),
		PaidAmount:      decimal.NewFromInt(50),
		RemainingAmount: decimal.Zero,
		Status:          domain.BorrowingCompleted,
	}

	suite.mockBorrowingService.On("Pay",
		mock.Anything,
		userID,
		borrowingID,
		mock.MatchedBy(func(req dto.PayBorrowingRequest) bool {
			return req.AccountID == accountID && req.Amount.Equal(decimal.NewFromInt(50))
		}),
	).Return(updated, nil).Once()

	body, _ := json.Marshal(gin.H{"accountID": accountID, "amount": "50"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/borrowings/"+borrowingID+"/pay", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.BorrowingResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.BorrowingCompleted, resp.Status)
	suite.True(resp.RemainingAmount.IsZero())
	suite.mockBorrowingService.AssertExpectations(suite.T())
}

func (suite *BorrowingHandlerTestSuite) TestPay_CompletedBorrowingConflict() {
	userID := uuid.NewString()
	borrowingID := uuid.NewString()

	suite.mockBorrowingService.On("Pay", mock.Anything, userID, borrowingID, mock.Anything).
		Return(nil, apperrors.ErrInvalidState).Once()

	body, _ := json.Marshal(gin.H{"accountID": uuid.NewString(), "amount": "10"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/borrowings/"+borrowingID+"/pay", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *BorrowingHandlerTestSuite) TestPay_InsufficientBalanceBadRequest() {
	userID := uuid.NewString()
	borrowingID := uuid.NewString()

	suite.mockBorrowingService.On("Pay", mock.Anything, userID, borrowingID, mock.Anything).
		Return(nil, apperrors.ErrInsufficientBalance).Once()

	body, _ := json.Marshal(gin.H{"accountID": uuid.NewString(), "amount": "10"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/borrowings/"+borrowingID+"/pay", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *BorrowingHandlerTestSuite) TestGetBorrowing_DetailIncludesLedger() {
	userID := uuid.NewString()
	borrowingID := uuid.NewString()

	b := &domain.Borrowing{
		BorrowingID:     borrowingID,
		UserID:          userID,
		Type:            domain.Borrow,
		TotalAmount:     decimal.NewFromInt(40),
		PaidAmount:      decimal.NewFromInt(15),
		RemainingAmount: decimal.NewFromInt(25),
		Status:          domain.BorrowingActive,
	}
	ledger := []domain.BorrowingTransaction{
		{BorrowingTransactionID: uuid.NewString(), BorrowingID: borrowingID, Type: domain.BorrowingPayment, Amount: decimal.NewFromInt(15)},
	}

	suite.mockBorrowingService.On("GetBorrowingByID", mock.Anything, userID, borrowingID).Return(b, ledger, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/borrowings/"+borrowingID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.BorrowingDetailResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Equal(domain.BorrowingPayment, resp.Transactions[0].Type)
}

func TestBorrowingHandler(t *testing.T) {
	suite.Run(t, new(BorrowingHandlerTestSuite))
}
