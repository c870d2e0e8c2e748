package repositories

// RepositoryProvider bundles all repository implementations for dependency
// injection into the service container.
type RepositoryProvider struct {
	UserRepo        UserRepository
	AccountRepo     AccountRepository
	CategoryRepo    CategoryRepository
	TransactionRepo TransactionRepository
	AllocationRepo  AllocationRepository
	BorrowingRepo   BorrowingRepository
}
