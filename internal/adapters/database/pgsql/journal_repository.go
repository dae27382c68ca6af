package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	"github.com/SscSPs/posting_engine/internal/models"
	"github.com/SscSPs/posting_engine/internal/utils/mapping"
)

const entryColumns = `entry_id, entry_number, entry_date, document_type, document_id, description, total_debit, total_credit,
	status, posted_by, posted_at, reversed_by, reversed_at, reversal_reason, reversal_of_entry_id, reversed_by_entry_id`

const lineColumns = `line_id, entry_id, account_id, debit, credit, line_number, currency_code, exchange_rate`

// JournalRepository reads posted journal entries outside a ledger transaction.
type JournalRepository struct {
	BaseRepository
}

// NewJournalRepository creates a new repository for journal data.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalReader = (*JournalRepository)(nil)

// FindEntryByID retrieves a journal entry and its lines.
func (r *JournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	return loadEntry(ctx, r.Pool, query, entryID)
}

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.DocumentType,
		&m.DocumentID,
		&m.Description,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.Status,
		&m.PostedBy,
		&m.PostedAt,
		&m.ReversedBy,
		&m.ReversedAt,
		&m.ReversalReason,
		&m.ReversalOfEntryID,
		&m.ReversedByEntryID,
	)
	return m, err
}

// loadEntry runs a single-row header query and attaches the entry's lines.
func loadEntry(ctx context.Context, q querier, query string, args ...any) (*domain.JournalEntry, error) {
	header, err := scanEntry(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry")
		}
		return nil, translateError(err, "failed to load journal entry")
	}

	rows, err := q.Query(ctx, `SELECT `+lineColumns+` FROM journal_lines WHERE entry_id = $1 ORDER BY line_number;`, header.EntryID)
	if err != nil {
		return nil, translateError(err, "failed to query journal lines")
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.JournalLine, error) {
		var l models.JournalLine
		err := row.Scan(&l.LineID, &l.EntryID, &l.AccountID, &l.Debit, &l.Credit, &l.LineNumber, &l.CurrencyCode, &l.ExchangeRate)
		return l, err
	})
	if err != nil {
		return nil, translateError(err, "failed to scan journal lines")
	}

	entry := mapping.ToDomainJournalEntry(header, lines)
	return &entry, nil
}

// findActiveEntryForDocument locks the document's live entry against concurrent reversal.
func findActiveEntryForDocument(ctx context.Context, tx pgx.Tx, documentType, documentID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE document_type = $1 AND document_id = $2
		  AND status = 'POSTED' AND reversal_of_entry_id IS NULL
		FOR UPDATE;
	`
	entry, err := loadEntry(ctx, tx, query, documentType, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

// saveJournalEntry inserts the header and batches the lines. A second active
// entry for the document trips ux_journal_entries_active_document.
func saveJournalEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, headerQuery,
		m.EntryID, m.EntryNumber, m.EntryDate, m.DocumentType, m.DocumentID, m.Description,
		m.TotalDebit, m.TotalCredit, m.Status, m.PostedBy, m.PostedAt,
		m.ReversedBy, m.ReversedAt, m.ReversalReason, m.ReversalOfEntryID, m.ReversedByEntryID,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("failed to insert journal entry %s", m.EntryNumber))
	}

	lineQuery := `INSERT INTO journal_lines (` + lineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	batch := &pgx.Batch{}
	for _, line := range entry.Lines {
		l := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery, l.LineID, l.EntryID, l.AccountID, l.Debit, l.Credit, l.LineNumber, l.CurrencyCode, l.ExchangeRate)
	}
	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = translateError(err, fmt.Sprintf("failed to insert line %d of entry %s", i+1, m.EntryNumber))
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = translateError(err, "failed to close journal line batch")
	}
	return batchErr
}

// markEntryReversed only moves POSTED entries, so a lost race surfaces as a conflict.
func markEntryReversed(ctx context.Context, tx pgx.Tx, entryID, reversalEntryID, actorID, reason string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = 'REVERSED', reversed_by = $2, reversed_at = $3, reversal_reason = $4, reversed_by_entry_id = $5
		WHERE entry_id = $1 AND status = 'POSTED';
	`
	ct, err := tx.Exec(ctx, query, entryID, actorID, now, reason, reversalEntryID)
	if err != nil {
		return translateError(err, fmt.Sprintf("failed to mark entry %s reversed", entryID))
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not posted", apperrors.ErrConflict, entryID)
	}
	return nil
}

// nextEntrySequence bumps the (prefix, year) counter. The upsert holds the row
// lock until commit, so numbers are gapless among committed entries.
func nextEntrySequence(ctx context.Context, tx pgx.Tx, prefix string, year int) (int64, error) {
	query := `
		INSERT INTO entry_sequences (prefix, year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, year) DO UPDATE SET last_value = entry_sequences.last_value + 1
		RETURNING last_value;
	`
	var next int64
	if err := tx.QueryRow(ctx, query, prefix, year).Scan(&next); err != nil {
		return 0, translateError(err, fmt.Sprintf("failed to allocate %s-%d sequence", prefix, year))
	}
	return next, nil
}
