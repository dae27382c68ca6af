package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) SetBaseCurrency(ctx context.Context, currencyCode string, actorID string, now time.Time) error {
	args := m.Called(ctx, currencyCode, actorID, now)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)

func (m *MockExchangeRateRepository) FindLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock PostingRuleRepository ---
type MockPostingRuleRepository struct {
	mock.Mock
}

var _ portsrepo.PostingRuleRepositoryFacade = (*MockPostingRuleRepository)(nil)

func (m *MockPostingRuleRepository) FindActiveRulesByDocumentType(ctx context.Context, documentType string) ([]domain.PostingRule, error) {
	args := m.Called(ctx, documentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostingRule), args.Error(1)
}

func (m *MockPostingRuleRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.PostingRule, error) {
	args := m.Called(ctx, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingRule), args.Error(1)
}

func (m *MockPostingRuleRepository) SaveRule(ctx context.Context, rule domain.PostingRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockPostingRuleRepository) DeactivateRule(ctx context.Context, ruleID string, actorID string, now time.Time) error {
	args := m.Called(ctx, ruleID, actorID, now)
	return args.Error(0)
}

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// --- Mock AuditLogWriter ---
type MockAuditLogWriter struct {
	mock.Mock
}

var _ portsrepo.AuditLogWriter = (*MockAuditLogWriter)(nil)

func (m *MockAuditLogWriter) AppendAuditLog(ctx context.Context, record domain.AuditLogRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- Mock AuditTrailRecorder ---
type MockAuditTrailRecorder struct {
	mock.Mock
}

var _ portssvc.AuditTrailRecorder = (*MockAuditTrailRecorder)(nil)

func (m *MockAuditTrailRecorder) Record(ctx context.Context, entry domain.AuditLogInput) {
	m.Called(ctx, entry)
}

func (m *MockAuditTrailRecorder) RecordInTx(ctx context.Context, w portsrepo.AuditLogWriter, entry domain.AuditLogInput) {
	m.Called(ctx, w, entry)
}

func (m *MockAuditTrailRecorder) RegisterEntity(table string, classification domain.EntityClassification) {
	m.Called(table, classification)
}

// --- Mock OpsAlerter ---
type MockOpsAlerter struct {
	mock.Mock
}

var _ portssvc.OpsAlerter = (*MockOpsAlerter)(nil)

func (m *MockOpsAlerter) AuditWriteFailed(ctx context.Context, entry domain.AuditLogInput, err error) {
	m.Called(ctx, entry, err)
}
