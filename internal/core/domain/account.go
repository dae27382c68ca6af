package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountNature is the side on which an account's balance normally grows.
type AccountNature string

const (
	DebitNature  AccountNature = "DEBIT"
	CreditNature AccountNature = "CREDIT"
)

// Account represents a node of the chart of accounts.
type Account struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Nature          AccountNature   `json:"nature"`
	AccountType     AccountType     `json:"accountType"`
	CurrencyCode    string          `json:"currencyCode"`
	ParentAccountID string          `json:"parentAccountID"` // empty for root accounts
	Level           int             `json:"level"`           // root accounts are level 1
	IsActive        bool            `json:"isActive"`
	Balance         decimal.Decimal `json:"balance"` // signed by nature, positive is normal
	AuditFields
}

// DefaultNature returns the usual nature for an account type.
func DefaultNature(t AccountType) AccountNature {
	switch t {
	case Asset, Expense:
		return DebitNature
	default:
		return CreditNature
	}
}
