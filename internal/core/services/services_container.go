package services

import (
	portsrepo "github.com/fintrack/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/fintrack/fintrack_app/internal/core/ports/services"
	"github.com/fintrack/fintrack_app/internal/platform/config"
)

// NewServiceContainer wires every service with its repositories and returns
// the container handlers are built from.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	userSvc := NewUserService(repos.UserRepo)
	tokenSvc := NewTokenService(cfg, userSvc)
	googleAuthSvc := NewGoogleAuthService(cfg)
	accountSvc := NewAccountService(repos.AccountRepo)
	categorySvc := NewCategoryService(repos.CategoryRepo)
	transactionSvc := NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo)
	allocationSvc := NewAllocationService(repos.AllocationRepo, repos.AccountRepo, categorySvc)
	borrowingSvc := NewBorrowingService(repos.BorrowingRepo, repos.AccountRepo)

	return &portssvc.ServiceContainer{
		User:        userSvc,
		Token:       tokenSvc,
		GoogleAuth:  googleAuthSvc,
		Account:     accountSvc,
		Category:    categorySvc,
		Transaction: transactionSvc,
		Allocation:  allocationSvc,
		Borrowing:   borrowingSvc,
	}
}
