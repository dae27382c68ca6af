package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock JournalPoster ---
type MockPoster struct {
	mock.Mock
}

func (m *MockPoster) Post(ctx context.Context, documentType, documentID, actorID string) (string, error) {
	args := m.Called(ctx, documentType, documentID, actorID)
	return args.String(0), args.Error(1)
}

func (m *MockPoster) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.JournalPosterSvc = (*MockPoster)(nil)

// --- Mock Reversal ---
type MockReversal struct {
	mock.Mock
}

func (m *MockReversal) Reverse(ctx context.Context, documentType, documentID, actorID, reason string) (string, error) {
	args := m.Called(ctx, documentType, documentID, actorID, reason)
	return args.String(0), args.Error(1)
}

var _ portssvc.ReversalSvc = (*MockReversal)(nil)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, actorID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) SetBaseCurrency(ctx context.Context, currencyCode string, actorID string) error {
	args := m.Called(ctx, currencyCode, actorID)
	return args.Error(0)
}

func (m *MockCurrencyService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, actorID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockCurrencyService) GetRate(ctx context.Context, from, to string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCurrencyService) Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, from, to, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCurrencyService) CreateConversionEntry(ctx context.Context, req dto.ConversionRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Mock PostingRuleService ---
type MockPostingRuleService struct {
	mock.Mock
}

func (m *MockPostingRuleService) RulesFor(ctx context.Context, documentType string) ([]domain.PostingRule, error) {
	args := m.Called(ctx, documentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostingRule), args.Error(1)
}

func (m *MockPostingRuleService) RegisterRule(ctx context.Context, req dto.RegisterPostingRuleRequest, actorID string) (*domain.PostingRule, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingRule), args.Error(1)
}

func (m *MockPostingRuleService) DeactivateRule(ctx context.Context, ruleID string, actorID string) error {
	args := m.Called(ctx, ruleID, actorID)
	return args.Error(0)
}

var _ portssvc.PostingRuleSvcFacade = (*MockPostingRuleService)(nil)

// --- Mock LedgerAuditor ---
type MockAuditor struct {
	mock.Mock
}

func (m *MockAuditor) Run(ctx context.Context, window domain.DateWindow, agingCutoffDays int) (*domain.AuditReport, error) {
	args := m.Called(ctx, window, agingCutoffDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditReport), args.Error(1)
}

var _ portssvc.LedgerAuditorSvc = (*MockAuditor)(nil)

// --- Mock AuditTrailReader ---
type MockAuditLogs struct {
	mock.Mock
}

func (m *MockAuditLogs) History(ctx context.Context, entityTable, entityID string, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error) {
	args := m.Called(ctx, entityTable, entityID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAuditLogsResponse), args.Error(1)
}

var _ portssvc.AuditTrailReaderSvc = (*MockAuditLogs)(nil)

// noopRecorder satisfies the container; handlers never call it.
type noopRecorder struct{}

func (noopRecorder) Record(context.Context, domain.AuditLogInput)                              {}
func (noopRecorder) RecordInTx(context.Context, portsrepo.AuditLogWriter, domain.AuditLogInput) {}
func (noopRecorder) RegisterEntity(string, domain.EntityClassification)                        {}
