package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/dto"
	"github.com/SscSPs/posting_engine/internal/platform/config"
)

// currencyService is the currency registry and converter.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	txManager    portsrepo.TransactionManager
	recorder     portssvc.AuditTrailRecorder
	writer       ledgerWriter
	policy       domain.LedgerPolicy
	ledgerCfg    config.LedgerConfig
}

// NewCurrencyService creates a new CurrencySvcFacade.
func NewCurrencyService(
	currencyRepo portsrepo.CurrencyRepositoryFacade,
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	txManager portsrepo.TransactionManager,
	recorder portssvc.AuditTrailRecorder,
	policy domain.LedgerPolicy,
	ledgerCfg config.LedgerConfig,
) portssvc.CurrencySvcFacade {
	return &currencyService{
		currencyRepo: currencyRepo,
		rateRepo:     rateRepo,
		txManager:    txManager,
		recorder:     recorder,
		writer:       ledgerWriter{recorder: recorder, policy: policy, padding: ledgerCfg.EntryNumberPadding},
		policy:       policy,
		ledgerCfg:    ledgerCfg,
	}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency registers a currency. When req.IsBase is set it also becomes the base currency.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, actorID string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if len(code) != 3 {
		return nil, fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
	}
	if req.DecimalPlaces < 0 {
		return nil, fmt.Errorf("%w: decimal places cannot be negative", apperrors.ErrValidation)
	}

	now := s.now()
	currency := domain.Currency{
		CurrencyCode:  code,
		Symbol:        req.Symbol,
		Name:          req.Name,
		DecimalPlaces: req.DecimalPlaces,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency %s: %w", code, err)
	}
	s.recorder.Record(ctx, domain.AuditLogInput{
		EntityTable: tableCurrencies,
		EntityID:    code,
		Action:      domain.ActionCreate,
		ActorID:     actorID,
		After:       map[string]any{"name": currency.Name, "decimal_places": currency.DecimalPlaces},
	})

	if req.IsBase {
		if err := s.SetBaseCurrency(ctx, code, actorID); err != nil {
			return nil, err
		}
		currency.IsBase = true
	}
	return &currency, nil
}

// GetCurrencyByCode retrieves a currency.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to get currency %s: %w", currencyCode, err)
	}
	return currency, nil
}

// ListCurrencies returns all currencies, never nil.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// GetBaseCurrency returns the single base currency.
func (s *currencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	base, err := s.currencyRepo.FindBaseCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get base currency: %w", err)
	}
	return base, nil
}

// SetBaseCurrency makes currencyCode the only base currency.
func (s *currencyService) SetBaseCurrency(ctx context.Context, currencyCode string, actorID string) error {
	code := strings.ToUpper(currencyCode)
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
		return fmt.Errorf("failed to set base currency %s: %w", code, err)
	}

	previous := ""
	if base, err := s.currencyRepo.FindBaseCurrency(ctx); err == nil {
		previous = base.CurrencyCode
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to read current base currency: %w", err)
	}
	if previous == code {
		return nil
	}

	if err := s.currencyRepo.SetBaseCurrency(ctx, code, actorID, s.now()); err != nil {
		return fmt.Errorf("failed to set base currency %s: %w", code, err)
	}
	s.recorder.Record(ctx, domain.AuditLogInput{
		EntityTable:      tableCurrencies,
		EntityID:         code,
		Action:           domain.ActionUpdate,
		ActorID:          actorID,
		Before:           map[string]any{"base_currency": previous},
		After:            map[string]any{"base_currency": code},
		SeverityOverride: domain.AuditHigh,
	})
	s.LogInfo(ctx, "Base currency changed", slog.String("from", previous), slog.String("to", code))
	return nil
}

// CreateExchangeRate stores the rate for a pair and date, replacing an existing one.
func (s *currencyService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, actorID string) (*domain.ExchangeRate, error) {
	from := strings.ToUpper(req.FromCurrencyCode)
	to := strings.ToUpper(req.ToCurrencyCode)

	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if from == to {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}
	for _, code := range []string{from, to} {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
			}
			return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
		}
	}

	now := s.now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             req.Rate,
		DateEffective:    domain.TruncateDay(req.DateEffective),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save exchange rate %s/%s: %w", from, to, err)
	}
	s.recorder.Record(ctx, domain.AuditLogInput{
		EntityTable: tableExchangeRates,
		EntityID:    fmt.Sprintf("%s/%s@%s", from, to, rate.DateEffective.Format("2006-01-02")),
		Action:      domain.ActionCreate,
		ActorID:     actorID,
		After:       map[string]any{"rate": rate.Rate.String()},
	})
	return &rate, nil
}

func one() decimal.Decimal { return decimal.NewFromInt(1) }
