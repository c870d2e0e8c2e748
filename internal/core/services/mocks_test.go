package services_test

import (
	"context"
	"time"

	"github.com/fintrack/fintrack_app/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_app/internal/core/ports/repositories"
	"github.com/fintrack/fintrack_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiryTime *time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccountCascade(ctx context.Context, userID string, accountID string) error {
	args := m.Called(ctx, userID, accountID)
	return args.Error(0)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepository = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	args := m.Called(ctx, userID, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindFirstCategoryByType(ctx context.Context, userID string, categoryType domain.CategoryType) (*domain.Category, error) {
	args := m.Called(ctx, userID, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	args := m.Called(ctx, userID, categoryID)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepository = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, delta accounting.Delta) error {
	args := m.Called(ctx, txn, delta)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.ListTransactionsFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, reversal accounting.Delta) error {
	args := m.Called(ctx, txn, reversal)
	return args.Error(0)
}

// --- Mock AllocationRepository ---

type MockAllocationRepository struct {
	mock.Mock
}

var _ portsrepo.AllocationRepository = (*MockAllocationRepository)(nil)

func (m *MockAllocationRepository) SaveAllocation(ctx context.Context, allocation domain.Allocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockAllocationRepository) FindAllocationByID(ctx context.Context, userID string, allocationID string) (*domain.Allocation, error) {
	args := m.Called(ctx, userID, allocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Allocation), args.Error(1)
}

func (m *MockAllocationRepository) ListAllocations(ctx context.Context, userID string) ([]domain.Allocation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockAllocationRepository) UpdateAllocation(ctx context.Context, allocation domain.Allocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockAllocationRepository) DeleteAllocation(ctx context.Context, userID string, allocationID string) error {
	args := m.Called(ctx, userID, allocationID)
	return args.Error(0)
}

func (m *MockAllocationRepository) MarkPaid(ctx context.Context, allocationID string, payment domain.MonthlyPayment, syntheticTxn domain.Transaction, delta accounting.Delta) error {
	args := m.Called(ctx, allocationID, payment, syntheticTxn, delta)
	return args.Error(0)
}

// --- Mock BorrowingRepository ---

type MockBorrowingRepository struct {
	mock.Mock
}

var _ portsrepo.BorrowingRepository = (*MockBorrowingRepository)(nil)

func (m *MockBorrowingRepository) SaveBorrowing(ctx context.Context, b domain.Borrowing, initial *accounting.Delta) error {
	args := m.Called(ctx, b, initial)
	return args.Error(0)
}

func (m *MockBorrowingRepository) FindBorrowingByID(ctx context.Context, userID string, borrowingID string) (*domain.Borrowing, error) {
	args := m.Called(ctx, userID, borrowingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrowing), args.Error(1)
}

func (m *MockBorrowingRepository) ListBorrowings(ctx context.Context, userID string, filter portsrepo.ListBorrowingsFilter) ([]domain.Borrowing, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Borrowing), args.Error(1)
}

func (m *MockBorrowingRepository) ListBorrowingTransactions(ctx context.Context, userID string, borrowingID string) ([]domain.BorrowingTransaction, error) {
	args := m.Called(ctx, userID, borrowingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BorrowingTransaction), args.Error(1)
}

func (m *MockBorrowingRepository) UpdateBorrowing(ctx context.Context, b domain.Borrowing) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBorrowingRepository) RecordPayment(ctx context.Context, b domain.Borrowing, ledger domain.BorrowingTransaction, delta accounting.Delta) error {
	args := m.Called(ctx, b, ledger, delta)
	return args.Error(0)
}

func (m *MockBorrowingRepository) DeleteBorrowing(ctx context.Context, b domain.Borrowing, reversal *accounting.Delta) error {
	args := m.Called(ctx, b, reversal)
	return args.Error(0)
}
