package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	"github.com/SscSPs/posting_engine/internal/dto"
)

// GetRate resolves the rate from -> to as of a date: direct, then inverted, then
// triangulated through the base currency. It never falls back to 1.
func (s *currencyService) GetRate(ctx context.Context, from, to string, asOf time.Time) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return one(), nil
	}
	noRate := &apperrors.NoExchangeRateError{From: from, To: to, AsOf: asOf}

	rate, err := s.pairRate(ctx, from, to, asOf)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, err
	}

	base, err := s.currencyRepo.FindBaseCurrency(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, noRate
		}
		return decimal.Zero, fmt.Errorf("failed to resolve base currency: %w", err)
	}
	if from == base.CurrencyCode || to == base.CurrencyCode {
		return decimal.Zero, noRate
	}

	fromLeg, err := s.pairRate(ctx, from, base.CurrencyCode, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, noRate
		}
		return decimal.Zero, err
	}
	toLeg, err := s.pairRate(ctx, to, base.CurrencyCode, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, noRate
		}
		return decimal.Zero, err
	}
	if toLeg.IsZero() {
		return decimal.Zero, noRate
	}

	s.LogDebug(ctx, "Triangulated exchange rate",
		slog.String("from", from), slog.String("to", to), slog.String("base", base.CurrencyCode))
	return fromLeg.DivRound(toLeg, domain.RatePrecision), nil
}

// pairRate looks up the latest direct rate, falling back to the inverse of the latest reverse rate.
func (s *currencyService) pairRate(ctx context.Context, from, to string, asOf time.Time) (decimal.Decimal, error) {
	direct, err := s.rateRepo.FindLatestRate(ctx, from, to, asOf)
	if err == nil && direct.Rate.IsPositive() {
		return direct.Rate, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to look up rate %s/%s: %w", from, to, err)
	}

	reverse, err := s.rateRepo.FindLatestRate(ctx, to, from, asOf)
	if err == nil && reverse.Rate.IsPositive() {
		return reverse.Inverse().Rate, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to look up rate %s/%s: %w", to, from, err)
	}
	return decimal.Zero, apperrors.ErrNoExchangeRate
}

// Convert converts amount and rounds to the target currency's decimal places.
func (s *currencyService) Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time) (decimal.Decimal, error) {
	target, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(to))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve currency %s: %w", to, err)
	}
	rate, err := s.GetRate(ctx, from, to, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate).Round(target.DecimalPlaces), nil
}

// CreateConversionEntry credits the source account with amount and debits the target
// account with the converted amount. A difference beyond the tolerance goes to the
// FX gain/loss account so the entry balances.
func (s *currencyService) CreateConversionEntry(ctx context.Context, req dto.ConversionRequest, actorID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("from_account_id", req.FromAccountID),
		slog.String("to_account_id", req.ToAccountID),
	)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: conversion amount must be positive", apperrors.ErrInvalidAmount)
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: source and target account must differ", apperrors.ErrInvalidAccount)
	}
	from, to := strings.ToUpper(req.FromCurrencyCode), strings.ToUpper(req.ToCurrencyCode)

	converted, err := s.Convert(ctx, req.Amount, from, to, req.AsOf)
	if err != nil {
		return nil, err
	}
	if !converted.IsPositive() {
		return nil, fmt.Errorf("%w: %s %s converts to %s %s", apperrors.ErrInvalidAmount, req.Amount.String(), from, converted.String(), to)
	}
	base, err := s.currencyRepo.FindBaseCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base currency: %w", err)
	}
	fromRate, err := s.GetRate(ctx, from, base.CurrencyCode, req.AsOf)
	if err != nil {
		return nil, err
	}
	toRate, err := s.GetRate(ctx, to, base.CurrencyCode, req.AsOf)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		{AccountID: req.ToAccountID, Debit: converted, Credit: decimal.Zero, LineNumber: 1, CurrencyCode: to, ExchangeRate: toRate},
		{AccountID: req.FromAccountID, Debit: decimal.Zero, Credit: req.Amount, LineNumber: 2, CurrencyCode: from, ExchangeRate: fromRate},
	}
	diff := converted.Sub(req.Amount)
	if diff.Abs().GreaterThan(s.policy.BalanceTolerance) {
		if s.ledgerCfg.FXGainLossAccountID == "" {
			return nil, fmt.Errorf("%w: no FX gain/loss account configured", apperrors.ErrInvalidAccount)
		}
		fx := domain.JournalLine{
			AccountID:    s.ledgerCfg.FXGainLossAccountID,
			Debit:        decimal.Zero,
			Credit:       decimal.Zero,
			LineNumber:   3,
			CurrencyCode: base.CurrencyCode,
			ExchangeRate: one(),
		}
		if diff.IsPositive() {
			fx.Credit = diff
		} else {
			fx.Debit = diff.Neg()
		}
		lines = append(lines, fx)
	}

	entry := domain.JournalEntry{
		EntryDate:    domain.TruncateDay(req.AsOf),
		DocumentType: domain.DocTypeCurrencyConversion,
		DocumentID:   uuid.NewString(),
		Description:  fmt.Sprintf("Conversion %s %s to %s %s", req.Amount.String(), from, converted.String(), to),
		Status:       domain.Posted,
		PostedBy:     actorID,
		Lines:        lines,
	}

	err = s.withLedgerTx(ctx, s.txManager, s.ledgerCfg.TxRetryAttempts, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		now := s.now()
		attempt := entry
		attempt.PostedAt = now
		attempt.Lines = append([]domain.JournalLine(nil), lines...)

		accounts, err := s.writer.lockAccounts(ctx, tx, attempt.Lines, true)
		if err != nil {
			return err
		}
		// each leg is held in its own account's currency
		for accountID, code := range map[string]string{req.FromAccountID: from, req.ToAccountID: to} {
			if held := accounts[accountID].CurrencyCode; held != code {
				return fmt.Errorf("%w: account %s holds %s, not %s", apperrors.ErrInvalidAccount, accountID, held, code)
			}
		}
		if err := s.writer.writeEntry(ctx, tx, &attempt, s.ledgerCfg.ConversionNumberPrefix, accounts, now); err != nil {
			return err
		}
		entry = attempt
		return nil
	})
	if err != nil {
		if !isClientError(err) {
			logger.Error("Failed to create conversion entry", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Conversion entry posted", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	return &entry, nil
}
