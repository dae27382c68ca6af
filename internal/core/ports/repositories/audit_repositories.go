package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/posting_engine/internal/core/domain"
)

// AuditLogWriter appends immutable audit-trail records.
type AuditLogWriter interface {
	AppendAuditLog(ctx context.Context, record domain.AuditLogRecord) error
}

// AuditLogReader pages through the trail of one entity, oldest first.
type AuditLogReader interface {
	// ListAuditLogs returns up to limit records after nextToken and the token of
	// the following page, nil when there is none.
	ListAuditLogs(ctx context.Context, entityTable, entityID string, limit int, nextToken *string) ([]domain.AuditLogRecord, *string, error)
}

// AuditLogRepositoryFacade combines the audit log reader and writer.
type AuditLogRepositoryFacade interface {
	AuditLogWriter
	AuditLogReader
}

// AuditSnapshotter runs read-only probes against one consistent snapshot.
type AuditSnapshotter interface {
	WithinSnapshot(ctx context.Context, fn func(ctx context.Context, snap AuditSnapshot) error) error
}

// AuditSnapshot exposes the probes used by the ledger auditor. Probes over optional
// subsystems return apperrors.ErrSubsystemUnavailable when the subsystem is not installed.
type AuditSnapshot interface {
	PartyReader

	// EntryTotals returns header and line totals of every entry dated within the window.
	EntryTotals(ctx context.Context, window domain.DateWindow) ([]domain.EntryTotals, error)

	// TrialBalance sums all journal lines of entries dated within the window.
	TrialBalance(ctx context.Context, window domain.DateWindow) (domain.TrialBalanceTotals, error)

	// PostedDocumentsWithoutEntry lists posted documents dated within the window that have no active entry.
	PostedDocumentsWithoutEntry(ctx context.Context, window domain.DateWindow) ([]domain.DocumentRef, error)

	// MissingReferences lists journal lines and documents whose required keys are empty or dangling.
	MissingReferences(ctx context.Context, window domain.DateWindow, partyRequired []string) ([]domain.MissingReference, error)

	// ListAccounts returns the whole chart of accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListFixedAssets returns tracked assets.
	ListFixedAssets(ctx context.Context) ([]domain.FixedAsset, error)

	// CountReceivablesOlderThan counts open receivable documents dated before the cutoff.
	CountReceivablesOlderThan(ctx context.Context, cutoff time.Time, receivableTypes []string) (int, error)

	// ExchangeRateDefects lists non-base-currency lines without a positive exchange rate.
	ExchangeRateDefects(ctx context.Context, window domain.DateWindow, baseCurrencyCode string) ([]domain.ExchangeRateDefect, error)

	// BaseCurrencyCode returns the code of the base currency.
	BaseCurrencyCode(ctx context.Context) (string, error)

	// AuditTrailAvailable reports whether the audit-trail store is installed.
	AuditTrailAvailable(ctx context.Context) (bool, error)
}

// PartyReader exposes party balances and credit limits.
type PartyReader interface {
	// PartiesOverCreditLimit returns parties whose balance exceeds a positive credit limit.
	PartiesOverCreditLimit(ctx context.Context) ([]domain.Party, error)
}
