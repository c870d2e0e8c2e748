package dto

import (
	"time"

	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBorrowingRequest defines the data needed to record a borrowing.
// AccountID, when given, is credited (borrow) or debited (lend) at creation.
type CreateBorrowingRequest struct {
	Type        domain.BorrowingType `json:"type" binding:"required,oneof=borrow lend"`
	PersonName  string               `json:"personName" binding:"required"`
	PersonEmail string               `json:"personEmail" binding:"omitempty,email"`
	PersonPhone string               `json:"personPhone"`
	TotalAmount decimal.Decimal      `json:"totalAmount" binding:"required"`
	AccountID   *string              `json:"accountID"`
	Date        *time.Time           `json:"date"`
	Note        string               `json:"note"`
}

// UpdateBorrowingRequest defines the fields allowed for updating a borrowing.
// Changing TotalAmount recomputes the remaining amount and status; it never
// touches account balances.
type UpdateBorrowingRequest struct {
	PersonName  *string          `json:"personName"`
	PersonEmail *string          `json:"personEmail" binding:"omitempty,email"`
	PersonPhone *string          `json:"personPhone"`
	TotalAmount *decimal.Decimal `json:"totalAmount"`
	Note        *string          `json:"note"`
}

// PayBorrowingRequest records a payment event against a borrowing.
type PayBorrowingRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      *time.Time      `json:"date"`
	Note      string          `json:"note"`
}

// ListBorrowingsParams defines query parameters for listing borrowings.
type ListBorrowingsParams struct {
	Type   string `form:"type" binding:"omitempty,oneof=borrow lend"`
	Status string `form:"status" binding:"omitempty,oneof=active completed"`
}

// BorrowingResponse defines the data returned for a borrowing.
type BorrowingResponse struct {
	BorrowingID      string                 `json:"borrowingID"`
	Type             domain.BorrowingType   `json:"type"`
	PersonName       string                 `json:"personName"`
	PersonEmail      string                 `json:"personEmail,omitempty"`
	PersonPhone      string                 `json:"personPhone,omitempty"`
	TotalAmount      decimal.Decimal        `json:"totalAmount"`
	PaidAmount       decimal.Decimal        `json:"paidAmount"`
	RemainingAmount  decimal.Decimal        `json:"remainingAmount"`
	Status           domain.BorrowingStatus `json:"status"`
	InitialAccountID string                 `json:"initialAccountID,omitempty"`
	Date             time.Time              `json:"date"`
	Note             string                 `json:"note,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
}

// BorrowingTransactionResponse defines the data returned for a ledger entry.
type BorrowingTransactionResponse struct {
	BorrowingTransactionID string                          `json:"borrowingTransactionID"`
	AccountID              string                          `json:"accountID"`
	Type                   domain.BorrowingTransactionType `json:"type"`
	Amount                 decimal.Decimal                 `json:"amount"`
	Date                   time.Time                       `json:"date"`
	Note                   string                          `json:"note,omitempty"`
}

// BorrowingDetailResponse pairs a borrowing with its payment ledger.
type BorrowingDetailResponse struct {
	BorrowingResponse
	Transactions []BorrowingTransactionResponse `json:"transactions"`
}

// ToBorrowingResponse converts a domain.Borrowing to its response DTO.
func ToBorrowingResponse(b *domain.Borrowing) BorrowingResponse {
	return BorrowingResponse{
		BorrowingID:      b.BorrowingID,
		Type:             b.Type,
		PersonName:       b.PersonName,
		PersonEmail:      b.PersonEmail,
		PersonPhone:      b.PersonPhone,
		TotalAmount:      b.TotalAmount,
		PaidAmount:       b.PaidAmount,
		RemainingAmount:  b.RemainingAmount,
		Status:           b.Status,
		InitialAccountID: b.InitialAccountID,
		Date:             b.Date,
		Note:             b.Note,
		CreatedAt:        b.CreatedAt,
	}
}

// ToListBorrowingResponse converts a slice of borrowings to response DTOs.
func ToListBorrowingResponse(borrowings []domain.Borrowing) []BorrowingResponse {
	res := make([]BorrowingResponse, len(borrowings))
	for i := range borrowings {
		res[i] = ToBorrowingResponse(&borrowings[i])
	}
	return res
}

// ToBorrowingDetailResponse converts a borrowing and its ledger entries.
func ToBorrowingDetailResponse(b *domain.Borrowing, txns []domain.BorrowingTransaction) BorrowingDetailResponse {
	entries := make([]BorrowingTransactionResponse, len(txns))
	for i, t := range txns {
		entries[i] = BorrowingTransactionResponse{
			BorrowingTransactionID: t.BorrowingTransactionID,
			AccountID:              t.AccountID,
			Type:                   t.Type,
			Amount:                 t.Amount,
			Date:                   t.Date,
			Note:                   t.Note,
		}
	}
	return BorrowingDetailResponse{
		BorrowingResponse: ToBorrowingResponse(b),
		Transactions:      entries,
	}
}
