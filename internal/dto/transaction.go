package dto

import (
	"time"

	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	AccountID  string                 `json:"accountID" binding:"required"`
	CategoryID string                 `json:"categoryID" binding:"required"`
	Type       domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	Amount     decimal.Decimal        `json:"amount" binding:"required"`
	Date       time.Time              `json:"date" binding:"required"`
	Note       string                 `json:"note"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountID  string `form:"accountID"`
	CategoryID string `form:"categoryID"`
	Type       string `form:"type" binding:"omitempty,oneof=income expense"`
	DateFrom   string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit      int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	AccountID     string                 `json:"accountID"`
	CategoryID    string                 `json:"categoryID"`
	Type          domain.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	Date          time.Time              `json:"date"`
	Note          string                 `json:"note"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ListTransactionsResponse wraps a page of transactions with the cursor for
// the next page, if any.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		CategoryID:    t.CategoryID,
		Type:          t.Type,
		Amount:        t.Amount,
		Date:          t.Date,
		Note:          t.Note,
		CreatedAt:     t.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of transactions to response DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
