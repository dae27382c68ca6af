//go:build integration

package pgsql_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/SscSPs/posting_engine/internal/adapters/database/pgsql"
	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/core/services"
	"github.com/SscSPs/posting_engine/internal/dto"
	"github.com/SscSPs/posting_engine/internal/platform/config"
)

const (
	acctReceivable = "1200-receivable"
	acctRevenue    = "4000-revenue"
	acctTax        = "2100-tax-payable"
	actor          = "user-1"
)

type PostgresLedgerTestSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	svc       *portssvc.ServiceContainer
	accounts  *pgsql.AccountRepository
	documents *pgsql.DocumentRepository
	auditLogs *pgsql.AuditLogRepository
}

func TestPostgresLedgerSuite(t *testing.T) {
	suite.Run(t, new(PostgresLedgerTestSuite))
}

func (s *PostgresLedgerTestSuite) SetupSuite() {
	s.ctx = context.Background()
	container, err := postgres.Run(s.ctx, "postgres:16-alpine",
		postgres.WithDatabase("ledger_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err, "start postgres container")
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.Require().NoError(runMigrations(connStr))

	s.pool, err = pgxpool.New(s.ctx, connStr)
	s.Require().NoError(err)
}

func (s *PostgresLedgerTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		if err := s.container.Terminate(s.ctx); err != nil {
			s.T().Logf("terminate postgres container: %v", err)
		}
	}
}

// SetupTest starts every test from an empty ledger with a seeded chart.
func (s *PostgresLedgerTestSuite) SetupTest() {
	// TRUNCATE does not fire the row triggers guarding audit_logs.
	_, err := s.pool.Exec(s.ctx, `
		TRUNCATE audit_logs, journal_lines, journal_entries, entry_sequences, source_documents,
			posting_rules, parties, fixed_assets, accounts, exchange_rates, currencies;
	`)
	s.Require().NoError(err)

	cfg := &config.Config{
		Policy: domain.DefaultLedgerPolicy(),
		Ledger: config.DefaultLedgerConfig(),
		Audit:  config.DefaultAuditTrailConfig(),
	}
	s.svc = services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(s.pool))
	s.accounts = pgsql.NewAccountRepository(s.pool)
	s.documents = pgsql.NewDocumentRepository(s.pool)
	s.auditLogs = pgsql.NewAuditLogRepository(s.pool)

	_, err = s.svc.Currency.CreateCurrency(s.ctx, dto.CreateCurrencyRequest{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", DecimalPlaces: 2, IsBase: true}, actor)
	s.Require().NoError(err)

	now := time.Now().UTC()
	for _, a := range []domain.Account{
		{AccountID: acctReceivable, Code: "1200", Name: "Receivables", AccountType: domain.Asset, Nature: domain.DebitNature},
		{AccountID: acctRevenue, Code: "4000", Name: "Revenue", AccountType: domain.Revenue, Nature: domain.CreditNature},
		{AccountID: acctTax, Code: "2100", Name: "Tax payable", AccountType: domain.Liability, Nature: domain.CreditNature},
	} {
		a.CurrencyCode = "USD"
		a.Level = 1
		a.IsActive = true
		a.Balance = decimal.Zero
		a.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: actor, LastUpdatedAt: now, LastUpdatedBy: actor}
		s.Require().NoError(s.accounts.SaveAccount(s.ctx, a))
	}

	_, err = s.pool.Exec(s.ctx, `INSERT INTO parties (party_id, name) VALUES ('cust-1', 'Customer One');`)
	s.Require().NoError(err)

	for _, r := range []dto.RegisterPostingRuleRequest{
		{DocumentType: domain.DocTypeSalesInvoice, RuleName: "receivable", AmountField: domain.AmountTotal, DebitAccountID: acctReceivable, Priority: 1},
		{DocumentType: domain.DocTypeSalesInvoice, RuleName: "revenue", AmountField: domain.AmountSubtotal, CreditAccountID: acctRevenue, Priority: 2},
		{DocumentType: domain.DocTypeSalesInvoice, RuleName: "tax", AmountField: domain.AmountTax, CreditAccountID: acctTax, Priority: 3},
	} {
		_, err := s.svc.PostingRule.RegisterRule(s.ctx, r, actor)
		s.Require().NoError(err)
	}
}

func (s *PostgresLedgerTestSuite) saveInvoice(id string) {
	s.Require().NoError(s.documents.SaveDocument(s.ctx, domain.SourceDocument{
		DocumentType:   domain.DocTypeSalesInvoice,
		DocumentID:     id,
		DocumentNumber: "INV-" + id,
		DocumentDate:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		PartyID:        "cust-1",
		CurrencyCode:   "USD",
		Amounts: map[domain.AmountField]decimal.Decimal{
			domain.AmountTotal:    decimal.RequireFromString("1100"),
			domain.AmountSubtotal: decimal.RequireFromString("1000"),
			domain.AmountTax:      decimal.RequireFromString("100"),
		},
		Status: domain.DocumentDraft,
	}))
}

func (s *PostgresLedgerTestSuite) balance(accountID string) decimal.Decimal {
	a, err := s.accounts.FindAccountByID(s.ctx, accountID)
	s.Require().NoError(err)
	return a.Balance
}

func (s *PostgresLedgerTestSuite) TestPostReverseAndRepost() {
	s.saveInvoice("inv-1")

	entryID, err := s.svc.Poster.Post(s.ctx, domain.DocTypeSalesInvoice, "inv-1", actor)
	s.Require().NoError(err)

	entry, err := s.svc.Poster.GetEntry(s.ctx, entryID)
	s.Require().NoError(err)
	s.Equal("JV-2024-000001", entry.EntryNumber)
	s.Require().Len(entry.Lines, 3)
	s.True(entry.TotalDebit.Equal(entry.TotalCredit))
	s.True(s.balance(acctReceivable).Equal(decimal.RequireFromString("1100")))
	s.True(s.balance(acctRevenue).Equal(decimal.RequireFromString("1000")))

	doc, err := s.documents.FindDocument(s.ctx, domain.DocTypeSalesInvoice, "inv-1")
	s.Require().NoError(err)
	s.Equal(domain.DocumentPosted, doc.Status)
	s.True(doc.Locked)

	records, next, err := s.auditLogs.ListAuditLogs(s.ctx, "journal_entries", entryID, 10, nil)
	s.Require().NoError(err)
	s.Nil(next)
	s.Require().Len(records, 1)
	s.Contains(records[0].ComplianceTags, domain.TagFinancial)

	_, err = s.svc.Poster.Post(s.ctx, domain.DocTypeSalesInvoice, "inv-1", actor)
	s.ErrorIs(err, apperrors.ErrAlreadyPosted)

	reversalID, err := s.svc.Reversal.Reverse(s.ctx, domain.DocTypeSalesInvoice, "inv-1", actor, "customer returned goods")
	s.Require().NoError(err)
	s.NotEqual(entryID, reversalID)
	s.True(s.balance(acctReceivable).IsZero())
	s.True(s.balance(acctRevenue).IsZero())
	s.True(s.balance(acctTax).IsZero())

	original, err := s.svc.Poster.GetEntry(s.ctx, entryID)
	s.Require().NoError(err)
	s.Equal(domain.Reversed, original.Status)
	s.Require().NotNil(original.ReversedByEntryID)
	s.Equal(reversalID, *original.ReversedByEntryID)

	_, err = s.svc.Reversal.Reverse(s.ctx, domain.DocTypeSalesInvoice, "inv-1", actor, "again")
	s.ErrorIs(err, apperrors.ErrNothingToReverse)

	repostID, err := s.svc.Poster.Post(s.ctx, domain.DocTypeSalesInvoice, "inv-1", actor)
	s.Require().NoError(err)
	repost, err := s.svc.Poster.GetEntry(s.ctx, repostID)
	s.Require().NoError(err)
	s.Equal("JV-2024-000002", repost.EntryNumber)
}

func (s *PostgresLedgerTestSuite) TestConcurrentPostingOfOneDocument() {
	s.saveInvoice("inv-race")

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.Poster.Post(s.ctx, domain.DocTypeSalesInvoice, "inv-race", actor)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			failures = append(failures, err)
		}()
	}
	wg.Wait()

	s.Equal(1, successes)
	for _, err := range failures {
		s.ErrorIs(err, apperrors.ErrConflict)
	}
	s.True(s.balance(acctReceivable).Equal(decimal.RequireFromString("1100")))

	var active int
	err := s.pool.QueryRow(s.ctx, `SELECT COUNT(*) FROM journal_entries WHERE document_id = 'inv-race' AND status = 'POSTED';`).Scan(&active)
	s.Require().NoError(err)
	s.Equal(1, active)
}

func (s *PostgresLedgerTestSuite) TestAuditorOverPostgres() {
	s.saveInvoice("inv-a")
	_, err := s.svc.Poster.Post(s.ctx, domain.DocTypeSalesInvoice, "inv-a", actor)
	s.Require().NoError(err)

	window := domain.DateWindow{From: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)}
	report, err := s.svc.Auditor.Run(s.ctx, window, 30)
	s.Require().NoError(err)
	s.Empty(report.Findings)
	s.Equal(1, report.SummaryCounts[services.SummaryEntriesChecked])

	// A header tampered with outside the engine is caught by the entry balance check.
	_, err = s.pool.Exec(s.ctx, `UPDATE journal_entries SET total_debit = total_debit + 10 WHERE document_id = 'inv-a';`)
	s.Require().NoError(err)
	_, err = s.pool.Exec(s.ctx, `DROP TABLE fixed_assets;`)
	s.Require().NoError(err)
	defer func() {
		_, err := s.pool.Exec(s.ctx, `CREATE TABLE fixed_assets (
			asset_id VARCHAR(64) PRIMARY KEY, name VARCHAR(255) NOT NULL,
			asset_account_id VARCHAR(36), expense_account_id VARCHAR(36), accumulated_depreciation_account_id VARCHAR(36),
			cost NUMERIC(28, 8) NOT NULL DEFAULT 0, accumulated_depreciation NUMERIC(28, 8) NOT NULL DEFAULT 0,
			acquired_at DATE NOT NULL);`)
		s.Require().NoError(err)
	}()

	report, err = s.svc.Auditor.Run(s.ctx, window, 30)
	s.Require().NoError(err)
	s.Contains(report.FailedCategories, domain.CategoryEntryBalance)
	s.Contains(report.FailedCategories, domain.CategoryFixedAssets)

	var unavailable *domain.AuditFinding
	for i := range report.Findings {
		if report.Findings[i].FindingID == "FIXED_ASSETS:unavailable" {
			unavailable = &report.Findings[i]
		}
	}
	s.Require().NotNil(unavailable)
	s.Equal(domain.SeverityCode, unavailable.Severity)
}

func (s *PostgresLedgerTestSuite) TestAuditorWithoutDocumentTable() {
	s.saveInvoice("inv-a")
	_, err := s.svc.Poster.Post(s.ctx, domain.DocTypeSalesInvoice, "inv-a", actor)
	s.Require().NoError(err)

	_, err = s.pool.Exec(s.ctx, `ALTER TABLE source_documents RENAME TO source_documents_parked;`)
	s.Require().NoError(err)
	defer func() {
		_, err := s.pool.Exec(s.ctx, `ALTER TABLE source_documents_parked RENAME TO source_documents;`)
		s.Require().NoError(err)
	}()

	window := domain.DateWindow{From: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)}
	report, err := s.svc.Auditor.Run(s.ctx, window, 30)
	s.Require().NoError(err)

	ids := make([]string, 0, len(report.Findings))
	for _, f := range report.Findings {
		ids = append(ids, f.FindingID)
	}
	s.Contains(ids, "ORPHAN_DOCUMENTS:unavailable")
	s.Contains(ids, "RECEIVABLES_AGING:unavailable")
	s.Contains(report.PassedCategories, domain.CategoryMissingReferences)
	s.Contains(report.PassedCategories, domain.CategoryEntryBalance)
}

func (s *PostgresLedgerTestSuite) TestSetBaseCurrencyKeepsOneBase() {
	_, err := s.svc.Currency.CreateCurrency(s.ctx, dto.CreateCurrencyRequest{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", DecimalPlaces: 2}, actor)
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Currency.SetBaseCurrency(s.ctx, "EUR", actor))

	base, err := s.svc.Currency.GetBaseCurrency(s.ctx)
	s.Require().NoError(err)
	s.Equal("EUR", base.CurrencyCode)

	var bases int
	s.Require().NoError(s.pool.QueryRow(s.ctx, `SELECT COUNT(*) FROM currencies WHERE is_base;`).Scan(&bases))
	s.Equal(1, bases)

	err = s.svc.Currency.SetBaseCurrency(s.ctx, "XXX", actor)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAuditLogsAreImmutable(t *testing.T) {
	if testing.Short() {
		t.Skip("container test")
	}
	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("ledger_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, runMigrations(connStr))
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := pgsql.NewAuditLogRepository(pool)
	require.NoError(t, repo.AppendAuditLog(ctx, domain.AuditLogRecord{
		RecordID:    "rec-1",
		EntityTable: "accounts",
		EntityID:    acctRevenue,
		Action:      domain.ActionUpdate,
		ActorID:     actor,
		Before:      map[string]any{"balance": "0"},
		After:       map[string]any{"balance": "10"},
		Severity:    domain.AuditMedium,
		Checksum:    "abc",
		RecordedAt:  time.Now().UTC(),
	}))

	_, err = pool.Exec(ctx, `UPDATE audit_logs SET actor_id = 'someone-else' WHERE record_id = 'rec-1';`)
	assert.Error(t, err)

	records, next, err := repo.ListAuditLogs(ctx, "accounts", acctRevenue, 10, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, next)
	assert.Equal(t, actor, records[0].ActorID)
	assert.Equal(t, "10", records[0].After["balance"])

	require.NoError(t, repo.AppendAuditLog(ctx, domain.AuditLogRecord{
		RecordID:    "rec-2",
		EntityTable: "accounts",
		EntityID:    acctRevenue,
		Action:      domain.ActionUpdate,
		ActorID:     actor,
		Severity:    domain.AuditMedium,
		Checksum:    "def",
		RecordedAt:  time.Now().UTC().Add(time.Second),
	}))

	page, next, err := repo.ListAuditLogs(ctx, "accounts", acctRevenue, 1, nil)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.NotNil(t, next)
	assert.Equal(t, "rec-1", page[0].RecordID)

	page, next, err = repo.ListAuditLogs(ctx, "accounts", acctRevenue, 1, next)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Nil(t, next)
	assert.Equal(t, "rec-2", page[0].RecordID)
}

func runMigrations(connStr string) error {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return err
	}
	defer db.Close()

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+findMigrationsDir(), "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// findMigrationsDir walks up from the package directory to the module root.
func findMigrationsDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "migrations"
	}
	for range 10 {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		dir = filepath.Dir(dir)
	}
	return "migrations"
}
