package dto

import (
	"time"

	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAllocationRequest defines the data needed to create an allocation.
type CreateAllocationRequest struct {
	Name   string                `json:"name" binding:"required"`
	Type   domain.AllocationType `json:"type" binding:"required,oneof=expense income savings"`
	Amount decimal.Decimal       `json:"amount" binding:"required"`
	Active *bool                 `json:"active"` // defaults to true
}

// UpdateAllocationRequest defines the fields allowed for updating an allocation.
type UpdateAllocationRequest struct {
	Name   *string          `json:"name"`
	Amount *decimal.Decimal `json:"amount"`
	Active *bool            `json:"active"`
}

// MarkAllocationPaidRequest marks a calendar month of an allocation as paid
// from a specific account.
type MarkAllocationPaidRequest struct {
	Month     string `json:"month" binding:"required,month"`
	AccountID string `json:"accountID" binding:"required"`
}

// MonthlyPaymentResponse defines the data returned for one payment entry.
type MonthlyPaymentResponse struct {
	Month     string    `json:"month"`
	AccountID string    `json:"accountID"`
	Paid      bool      `json:"paid"`
	PaidDate  time.Time `json:"paidDate"`
}

// AllocationResponse defines the data returned for an allocation.
type AllocationResponse struct {
	AllocationID    string                   `json:"allocationID"`
	Name            string                   `json:"name"`
	Type            domain.AllocationType    `json:"type"`
	Amount          decimal.Decimal          `json:"amount"`
	Active          bool                     `json:"active"`
	MonthlyPayments []MonthlyPaymentResponse `json:"monthlyPayments"`
	CreatedAt       time.Time                `json:"createdAt"`
}

// ToAllocationResponse converts a domain.Allocation to its response DTO.
func ToAllocationResponse(a *domain.Allocation) AllocationResponse {
	payments := make([]MonthlyPaymentResponse, len(a.MonthlyPayments))
	for i, p := range a.MonthlyPayments {
		payments[i] = MonthlyPaymentResponse{
			Month:     p.Month,
			AccountID: p.AccountID,
			Paid:      p.Paid,
			PaidDate:  p.PaidDate,
		}
	}
	return AllocationResponse{
		AllocationID:    a.AllocationID,
		Name:            a.Name,
		Type:            a.Type,
		Amount:          a.Amount,
		Active:          a.Active,
		MonthlyPayments: payments,
		CreatedAt:       a.CreatedAt,
	}
}

// ToListAllocationResponse converts a slice of allocations to response DTOs.
func ToListAllocationResponse(allocations []domain.Allocation) []AllocationResponse {
	res := make([]AllocationResponse, len(allocations))
	for i := range allocations {
		res[i] = ToAllocationResponse(&allocations[i])
	}
	return res
}
