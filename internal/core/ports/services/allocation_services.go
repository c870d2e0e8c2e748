package services

import (
	"context"

	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/fintrack/fintrack_app/internal/dto"
)

// AllocationSvcFacade exposes allocation management and the monthly
// mark-paid operation.
type AllocationSvcFacade interface {
	CreateAllocation(ctx context.Context, userID string, req dto.CreateAllocationRequest) (*domain.Allocation, error)
	GetAllocationByID(ctx context.Context, userID string, allocationID string) (*domain.Allocation, error)
	ListAllocations(ctx context.Context, userID string) ([]domain.Allocation, error)
	UpdateAllocation(ctx context.Context, userID string, allocationID string, req dto.UpdateAllocationRequest) (*domain.Allocation, error)
	DeleteAllocation(ctx context.Context, userID string, allocationID string) error

	// MarkPaid records the allocation as paid for a month: upserts the
	// month's payment entry, applies the balance delta, and appends a
	// synthetic transaction. Re-marking an already paid month overwrites
	// the entry and applies the delta again.
	MarkPaid(ctx context.Context, userID string, allocationID string, req dto.MarkAllocationPaidRequest) (*domain.Allocation, error)
}
