package services

import (
	"context"
	"time"

	"github.com/SscSPs/posting_engine/internal/core/domain"
	"github.com/SscSPs/posting_engine/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency management
type CurrencyReaderSvc interface {
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
	GetBaseCurrency(ctx context.Context) (*domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency management
type CurrencyWriterSvc interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, actorID string) (*domain.Currency, error)
	SetBaseCurrency(ctx context.Context, currencyCode string, actorID string) error
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, actorID string) (*domain.ExchangeRate, error)
}

// CurrencyConverterSvc resolves rates and converts amounts between currencies.
type CurrencyConverterSvc interface {
	// GetRate returns how many units of to one unit of from buys on asOf.
	GetRate(ctx context.Context, from, to string, asOf time.Time) (decimal.Decimal, error)

	// Convert converts amount and rounds to the target currency's decimal places.
	Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time) (decimal.Decimal, error)

	// CreateConversionEntry posts a balanced entry moving amount between two accounts,
	// booking any residual to the FX gain/loss account.
	CreateConversionEntry(ctx context.Context, req dto.ConversionRequest, actorID string) (*domain.JournalEntry, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
	CurrencyConverterSvc
}
