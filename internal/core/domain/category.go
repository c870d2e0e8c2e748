package domain

import "github.com/shopspring/decimal"

// CategoryType mirrors the transaction types a category can label.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Category labels transactions. It carries no balance effects of its own.
// A transaction may only reference a category whose type matches its own.
type Category struct {
	CategoryID string           `json:"categoryID"`
	UserID     string           `json:"userID"`
	Name       string           `json:"name"`
	Type       CategoryType     `json:"type"`
	Color      string           `json:"color"`
	Budget     *decimal.Decimal `json:"budget,omitempty"` // optional monthly ceiling, informational only
	AuditFields
}
