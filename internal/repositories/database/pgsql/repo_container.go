package pgsql

import (
	portsrepo "github.com/fintrack/fintrack_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	allocationRepo := newPgxAllocationRepository(dbPool)
	borrowingRepo := newPgxBorrowingRepository(dbPool)

	return &portsrepo.RepositoryProvider{
		UserRepo:        userRepo,
		AccountRepo:     accountRepo,
		CategoryRepo:    categoryRepo,
		TransactionRepo: transactionRepo,
		AllocationRepo:  allocationRepo,
		BorrowingRepo:   borrowingRepo,
	}
}
