package dto

import (
	"time"

	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name         string             `json:"name" binding:"required"`
	AccountType  domain.AccountType `json:"accountType" binding:"required,oneof=bank wallet investment cash"`
	CurrencyCode string             `json:"currencyCode" binding:"required,len=3"`
	Balance      *decimal.Decimal   `json:"balance"` // optional opening balance, must be >= 0
	Icon         string             `json:"icon"`
	Color        string             `json:"color"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// The balance is deliberately absent: it only moves through ledger operations.
type UpdateAccountRequest struct {
	Name         *string `json:"name"`
	CurrencyCode *string `json:"currencyCode"`
	Icon         *string `json:"icon"`
	Color        *string `json:"color"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID    string             `json:"accountID"`
	Name         string             `json:"name"`
	AccountType  domain.AccountType `json:"accountType"`
	Balance      decimal.Decimal    `json:"balance"`
	CurrencyCode string             `json:"currencyCode"`
	Icon         string             `json:"icon"`
	Color        string             `json:"color"`
	CreatedAt    time.Time          `json:"createdAt"`
	LastUpdated  time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    acc.AccountID,
		Name:         acc.Name,
		AccountType:  acc.AccountType,
		Balance:      acc.Balance,
		CurrencyCode: acc.CurrencyCode,
		Icon:         acc.Icon,
		Color:        acc.Color,
		CreatedAt:    acc.CreatedAt,
		LastUpdated:  acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of accounts to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
