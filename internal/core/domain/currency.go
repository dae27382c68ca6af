package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode  string `json:"currencyCode"`  // Primary Key (e.g., "USD")
	Symbol        string `json:"symbol"`        // e.g., "$"
	Name          string `json:"name"`          // e.g., "US Dollar"
	DecimalPlaces int32  `json:"decimalPlaces"` // Minor unit precision, 2 for USD, 0 for JPY
	IsBase        bool   `json:"isBase"`        // Exactly one currency is the base at a time
	AuditFields
}

// ExchangeRate stores the conversion rate between two currencies for a specific date.
// One unit of FromCurrencyCode buys Rate units of ToCurrencyCode.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}

// Inverse returns the rate for the opposite direction.
func (r ExchangeRate) Inverse() ExchangeRate {
	inv := r
	inv.FromCurrencyCode, inv.ToCurrencyCode = r.ToCurrencyCode, r.FromCurrencyCode
	if !r.Rate.IsZero() {
		inv.Rate = decimal.NewFromInt(1).DivRound(r.Rate, RatePrecision)
	}
	return inv
}

// RatePrecision is the number of decimal places kept for derived rates.
const RatePrecision int32 = 12
