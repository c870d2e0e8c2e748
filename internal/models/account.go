package models

import "github.com/shopspring/decimal"

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

// Account is the DB representation of an account row.
type Account struct {
	AccountID    string          `db:"account_id"`
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	AccountType  AccountType     `db:"account_type"`
	Balance      decimal.Decimal `db:"balance"`
	CurrencyCode string          `db:"currency_code"`
	Icon         string          `db:"icon"`
	Color        string          `db:"color"`
	AuditFields
}
