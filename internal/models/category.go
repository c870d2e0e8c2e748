package models

import "github.com/shopspring/decimal"

// Category is the DB representation of a category row.
type Category struct {
	CategoryID string           `db:"category_id"`
	UserID     string           `db:"user_id"`
	Name       string           `db:"name"`
	Type       string           `db:"type"`
	Color      string           `db:"color"`
	Budget     *decimal.Decimal `db:"budget"`
	AuditFields
}
