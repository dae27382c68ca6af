package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
)

// ledgerTx binds the ledger write operations to one pgx transaction.
type ledgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*ledgerTx)(nil)

func (t *ledgerTx) FindDocumentForUpdate(ctx context.Context, documentType, documentID string) (*domain.SourceDocument, error) {
	return findDocumentForUpdate(ctx, t.tx, documentType, documentID)
}

func (t *ledgerTx) MarkDocumentPosted(ctx context.Context, documentType, documentID, actorID string, now time.Time) error {
	return setDocumentPosting(ctx, t.tx, documentType, documentID, domain.DocumentPosted, true, &actorID, &now)
}

func (t *ledgerTx) MarkDocumentUnposted(ctx context.Context, documentType, documentID, actorID string, now time.Time) error {
	return setDocumentPosting(ctx, t.tx, documentType, documentID, domain.DocumentDraft, false, nil, nil)
}

func (t *ledgerTx) FindActiveEntryForDocument(ctx context.Context, documentType, documentID string) (*domain.JournalEntry, error) {
	return findActiveEntryForDocument(ctx, t.tx, documentType, documentID)
}

func (t *ledgerTx) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	return saveJournalEntry(ctx, t.tx, entry)
}

func (t *ledgerTx) MarkEntryReversed(ctx context.Context, entryID, reversalEntryID, actorID, reason string, now time.Time) error {
	return markEntryReversed(ctx, t.tx, entryID, reversalEntryID, actorID, reason, now)
}

func (t *ledgerTx) NextEntrySequence(ctx context.Context, prefix string, year int) (int64, error) {
	return nextEntrySequence(ctx, t.tx, prefix, year)
}

func (t *ledgerTx) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return lockAccounts(ctx, t.tx, accountIDs)
}

func (t *ledgerTx) UpdateAccountBalances(ctx context.Context, balanceChanges map[string]decimal.Decimal, actorID string, now time.Time) error {
	return updateAccountBalances(ctx, t.tx, balanceChanges, actorID, now)
}

func (t *ledgerTx) AppendAuditLog(ctx context.Context, record domain.AuditLogRecord) error {
	return appendAuditLogSavepoint(ctx, t.tx, record)
}
