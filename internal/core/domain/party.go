package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party is a customer or supplier with an outstanding balance.
type Party struct {
	PartyID     string          `json:"partyID"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
	CreditLimit decimal.Decimal `json:"creditLimit"` // zero means no limit
}

// ExceedsCreditLimit reports whether a limit is set and the balance is above it.
func (p Party) ExceedsCreditLimit() bool {
	return p.CreditLimit.IsPositive() && p.Balance.GreaterThan(p.CreditLimit)
}

// FixedAsset is a tracked asset with its ledger accounts and depreciation to date.
type FixedAsset struct {
	AssetID                        string          `json:"assetID"`
	Name                           string          `json:"name"`
	AssetAccountID                 string          `json:"assetAccountID"`
	ExpenseAccountID               string          `json:"expenseAccountID"`
	AccumulatedDepreciationAccount string          `json:"accumulatedDepreciationAccount"`
	Cost                           decimal.Decimal `json:"cost"`
	AccumulatedDepreciation        decimal.Decimal `json:"accumulatedDepreciation"`
	AcquiredAt                     time.Time       `json:"acquiredAt"`
}
