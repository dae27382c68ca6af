package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/posting_engine/internal/adapters/database/memory"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/core/services"
	"github.com/SscSPs/posting_engine/internal/dto"
	"github.com/SscSPs/posting_engine/internal/platform/config"
)

// Chart of accounts used across the service tests.
const (
	acctCash       = "1000-cash"
	acctEURBank    = "1010-eur-bank"
	acctReceivable = "1200-receivable"
	acctRevenue    = "4000-revenue"
	acctTax        = "2100-tax-payable"
	acctDiscount   = "4900-discounts"
	acctFX         = "7900-fx-gain-loss"
	acctClosed     = "1999-closed"

	actor = "user-1"
)

var fixedNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }

func testConfig() *config.Config {
	ledger := config.DefaultLedgerConfig()
	ledger.FXGainLossAccountID = acctFX
	audit := config.DefaultAuditTrailConfig()
	audit.RetryBaseDelay = time.Millisecond
	return &config.Config{
		Policy: domain.DefaultLedgerPolicy(),
		Ledger: ledger,
		Audit:  audit,
	}
}

// ledgerFixture is a fully wired engine over the in-memory store.
type ledgerFixture struct {
	store *memory.Store
	svc   *portssvc.ServiceContainer
	cfg   *config.Config
}

func newLedgerFixture(opts ...services.RecorderOption) *ledgerFixture {
	store := memory.NewStore()
	cfg := testConfig()
	opts = append([]services.RecorderOption{services.WithRecorderClock(func() time.Time { return fixedNow })}, opts...)
	f := &ledgerFixture{store: store, cfg: cfg, svc: services.NewServiceContainer(cfg, store.Provider(), opts...)}
	f.seedChart()
	return f
}

func (f *ledgerFixture) seedChart() {
	accounts := []domain.Account{
		{AccountID: acctCash, Code: "1000", Name: "Cash", AccountType: domain.Asset, Nature: domain.DebitNature, CurrencyCode: "USD", Level: 1, IsActive: true},
		{AccountID: acctEURBank, Code: "1010", Name: "EUR Bank", AccountType: domain.Asset, Nature: domain.DebitNature, CurrencyCode: "EUR", Level: 1, IsActive: true},
		{AccountID: acctReceivable, Code: "1200", Name: "Receivables", AccountType: domain.Asset, Nature: domain.DebitNature, CurrencyCode: "USD", Level: 1, IsActive: true},
		{AccountID: acctRevenue, Code: "4000", Name: "Revenue", AccountType: domain.Revenue, Nature: domain.CreditNature, CurrencyCode: "USD", Level: 1, IsActive: true},
		{AccountID: acctTax, Code: "2100", Name: "Tax payable", AccountType: domain.Liability, Nature: domain.CreditNature, CurrencyCode: "USD", Level: 1, IsActive: true},
		{AccountID: acctDiscount, Code: "4900", Name: "Discounts", AccountType: domain.Expense, Nature: domain.DebitNature, CurrencyCode: "USD", Level: 1, IsActive: true},
		{AccountID: acctFX, Code: "7900", Name: "FX gain/loss", AccountType: domain.Expense, Nature: domain.DebitNature, CurrencyCode: "USD", Level: 1, IsActive: true},
		{AccountID: acctClosed, Code: "1999", Name: "Closed", AccountType: domain.Asset, Nature: domain.DebitNature, CurrencyCode: "USD", Level: 1, IsActive: false},
	}
	for _, a := range accounts {
		a.Balance = decimal.Zero
		f.store.PutAccount(a)
	}
	f.store.PutCurrency(domain.Currency{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", DecimalPlaces: 2, IsBase: true})
	f.store.PutCurrency(domain.Currency{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", DecimalPlaces: 2})
	f.store.PutCurrency(domain.Currency{CurrencyCode: "GBP", Symbol: "£", Name: "Pound", DecimalPlaces: 2})
	f.store.PutCurrency(domain.Currency{CurrencyCode: "JPY", Symbol: "¥", Name: "Yen", DecimalPlaces: 0})
}

// registerInvoiceRules installs receivable/revenue/tax rules for sales invoices.
func (f *ledgerFixture) registerInvoiceRules(ctx context.Context) {
	rules := []dto.RegisterPostingRuleRequest{
		{DocumentType: domain.DocTypeSalesInvoice, RuleName: "receivable", AmountField: domain.AmountTotal, DebitAccountID: acctReceivable, Priority: 1},
		{DocumentType: domain.DocTypeSalesInvoice, RuleName: "revenue", AmountField: domain.AmountSubtotal, CreditAccountID: acctRevenue, Priority: 2},
		{DocumentType: domain.DocTypeSalesInvoice, RuleName: "tax", AmountField: domain.AmountTax, CreditAccountID: acctTax, Priority: 3},
	}
	for _, r := range rules {
		if _, err := f.svc.PostingRule.RegisterRule(ctx, r, actor); err != nil {
			panic(err)
		}
	}
}

func invoice(id string, total, subtotal, tax string) domain.SourceDocument {
	return domain.SourceDocument{
		DocumentType:   domain.DocTypeSalesInvoice,
		DocumentID:     id,
		DocumentNumber: "INV-" + id,
		DocumentDate:   date(2024, 6, 10),
		PartyID:        "cust-1",
		CurrencyCode:   "USD",
		Amounts: map[domain.AmountField]decimal.Decimal{
			domain.AmountTotal:    d(total),
			domain.AmountSubtotal: d(subtotal),
			domain.AmountTax:      d(tax),
		},
		Status: domain.DocumentDraft,
	}
}

func (f *ledgerFixture) balance(accountID string) decimal.Decimal {
	a, ok := f.store.Account(accountID)
	if !ok {
		return decimal.Zero
	}
	return a.Balance
}

func (f *ledgerFixture) balances() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, id := range []string{acctCash, acctEURBank, acctReceivable, acctRevenue, acctTax, acctDiscount, acctFX, acctClosed} {
		out[id] = f.balance(id)
	}
	return out
}

func (f *ledgerFixture) auditRecords(table string) []domain.AuditLogRecord {
	var out []domain.AuditLogRecord
	for _, r := range f.store.AuditLogs() {
		if r.EntityTable == table {
			out = append(out, r)
		}
	}
	return out
}
