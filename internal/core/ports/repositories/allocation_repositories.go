package repositories

import (
	"context"

	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/fintrack/fintrack_app/internal/utils/accounting"
)

// AllocationRepository defines persistence operations for allocations and
// their embedded monthly payment sets.
type AllocationRepository interface {
	SaveAllocation(ctx context.Context, allocation domain.Allocation) error

	// FindAllocationByID loads the allocation together with its payment
	// entries in insertion order.
	FindAllocationByID(ctx context.Context, userID string, allocationID string) (*domain.Allocation, error)
	ListAllocations(ctx context.Context, userID string) ([]domain.Allocation, error)
	UpdateAllocation(ctx context.Context, allocation domain.Allocation) error
	DeleteAllocation(ctx context.Context, userID string, allocationID string) error

	// MarkPaid upserts the monthly payment entry (overwriting an existing
	// month in place), inserts the synthetic transaction, and applies the
	// balance delta to the paying account, all in one database transaction.
	MarkPaid(ctx context.Context, allocationID string, payment domain.MonthlyPayment, syntheticTxn domain.Transaction, delta accounting.Delta) error
}
