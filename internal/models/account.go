package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID       string          `db:"account_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	Nature          string          `db:"nature"`
	AccountType     string          `db:"account_type"`
	CurrencyCode    string          `db:"currency_code"`
	ParentAccountID sql.NullString  `db:"parent_account_id"` // NULL for root accounts
	Level           int             `db:"level"`
	IsActive        bool            `db:"is_active"`
	Balance         decimal.Decimal `db:"balance"`
	AuditFields
}
