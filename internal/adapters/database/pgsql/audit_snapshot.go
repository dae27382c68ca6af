package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
)

// Tables of the optional subsystems, probed with to_regclass.
const (
	tableFixedAssets = "fixed_assets"
	tableParties     = "parties"
	tableDocuments   = "source_documents"
	tableAuditLogs   = "audit_logs"
)

// snapshot runs the auditor probes inside one read-only REPEATABLE READ transaction.
type snapshot struct {
	q querier
}

var _ portsrepo.AuditSnapshot = (*snapshot)(nil)

func (s *snapshot) tableExists(ctx context.Context, table string) (bool, error) {
	var exists bool
	if err := s.q.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL;`, "public."+table).Scan(&exists); err != nil {
		return false, translateError(err, "failed to probe table "+table)
	}
	return exists, nil
}

func (s *snapshot) requireTable(ctx context.Context, table string) error {
	exists, err := s.tableExists(ctx, table)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", apperrors.ErrSubsystemUnavailable, table)
	}
	return nil
}

func windowArgs(window domain.DateWindow) (time.Time, time.Time) {
	return domain.TruncateDay(window.From), domain.TruncateDay(window.To)
}

func (s *snapshot) EntryTotals(ctx context.Context, window domain.DateWindow) ([]domain.EntryTotals, error) {
	from, to := windowArgs(window)
	query := `
		SELECT e.entry_id, e.entry_number, e.total_debit, e.total_credit,
			COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0), COUNT(l.line_id)
		FROM journal_entries e
		LEFT JOIN journal_lines l ON l.entry_id = e.entry_id
		WHERE e.entry_date BETWEEN $1 AND $2
		GROUP BY e.entry_id, e.entry_number, e.total_debit, e.total_credit, e.entry_date
		ORDER BY e.entry_date, e.entry_number;
	`
	rows, err := s.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, translateError(err, "failed to query entry totals")
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.EntryTotals, error) {
		var t domain.EntryTotals
		err := row.Scan(&t.EntryID, &t.EntryNumber, &t.HeaderDebit, &t.HeaderCredit, &t.LineDebit, &t.LineCredit, &t.LineCount)
		return t, err
	})
	if err != nil {
		return nil, translateError(err, "failed to scan entry totals")
	}
	return out, nil
}

func (s *snapshot) TrialBalance(ctx context.Context, window domain.DateWindow) (domain.TrialBalanceTotals, error) {
	from, to := windowArgs(window)
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0), COUNT(l.line_id)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.entry_date BETWEEN $1 AND $2;
	`
	totals := domain.TrialBalanceTotals{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	if err := s.q.QueryRow(ctx, query, from, to).Scan(&totals.TotalDebit, &totals.TotalCredit, &totals.LineCount); err != nil {
		return totals, translateError(err, "failed to compute trial balance")
	}
	return totals, nil
}

func (s *snapshot) PostedDocumentsWithoutEntry(ctx context.Context, window domain.DateWindow) ([]domain.DocumentRef, error) {
	if err := s.requireTable(ctx, tableDocuments); err != nil {
		return nil, err
	}
	from, to := windowArgs(window)
	query := `
		SELECT d.document_type, d.document_id, d.document_number
		FROM source_documents d
		WHERE d.status = 'POSTED'
		  AND d.document_date BETWEEN $1 AND $2
		  AND NOT EXISTS (
			SELECT 1 FROM journal_entries e
			WHERE e.document_type = d.document_type AND e.document_id = d.document_id
			  AND e.status = 'POSTED' AND e.reversal_of_entry_id IS NULL
		  )
		ORDER BY d.document_type, d.document_id;
	`
	rows, err := s.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, translateError(err, "failed to query orphan documents")
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DocumentRef, error) {
		var ref domain.DocumentRef
		err := row.Scan(&ref.DocumentType, &ref.DocumentID, &ref.DocumentNumber)
		return ref, err
	})
	if err != nil {
		return nil, translateError(err, "failed to scan orphan documents")
	}
	return out, nil
}

// MissingReferences checks journal lines always and party references only when
// the document table exists.
func (s *snapshot) MissingReferences(ctx context.Context, window domain.DateWindow, partyRequired []string) ([]domain.MissingReference, error) {
	from, to := windowArgs(window)
	var out []domain.MissingReference

	lineQuery := `
		SELECT l.line_id, l.entry_id, l.line_number, l.account_id
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		LEFT JOIN accounts a ON a.account_id = l.account_id
		WHERE e.entry_date BETWEEN $1 AND $2
		  AND (l.account_id = '' OR a.account_id IS NULL)
		ORDER BY e.entry_date, e.entry_number, l.line_number;
	`
	rows, err := s.q.Query(ctx, lineQuery, from, to)
	if err != nil {
		return nil, translateError(err, "failed to query dangling journal lines")
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MissingReference, error) {
		var lineID, entryID, accountID string
		var lineNumber int
		if err := row.Scan(&lineID, &entryID, &lineNumber, &accountID); err != nil {
			return domain.MissingReference{}, err
		}
		recordID := lineID
		if recordID == "" {
			recordID = entryID + "/" + strconv.Itoa(lineNumber)
		}
		return domain.MissingReference{Table: "journal_lines", RecordID: recordID, Column: "account_id", Value: accountID}, nil
	})
	if err != nil {
		return nil, translateError(err, "failed to scan dangling journal lines")
	}
	out = append(out, lines...)

	if len(partyRequired) == 0 {
		return out, nil
	}
	withDocuments, err := s.tableExists(ctx, tableDocuments)
	if err != nil {
		return nil, err
	}
	if !withDocuments {
		return out, nil
	}
	withParties, err := s.tableExists(ctx, tableParties)
	if err != nil {
		return nil, err
	}
	partyCheck := `FALSE`
	if withParties {
		partyCheck = `NOT EXISTS (SELECT 1 FROM parties p WHERE p.party_id = d.party_id)`
	}
	docQuery := `
		SELECT d.document_type, d.document_id, COALESCE(d.party_id, '')
		FROM source_documents d
		WHERE d.document_type = ANY($3)
		  AND d.document_date BETWEEN $1 AND $2
		  AND (COALESCE(d.party_id, '') = '' OR ` + partyCheck + `)
		ORDER BY d.document_type, d.document_id;
	`
	rows, err = s.q.Query(ctx, docQuery, from, to, partyRequired)
	if err != nil {
		return nil, translateError(err, "failed to query documents without party")
	}
	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MissingReference, error) {
		var docType, docID, partyID string
		if err := row.Scan(&docType, &docID, &partyID); err != nil {
			return domain.MissingReference{}, err
		}
		return domain.MissingReference{Table: tableDocuments, RecordID: docType + ":" + docID, Column: "party_id", Value: partyID}, nil
	})
	if err != nil {
		return nil, translateError(err, "failed to scan documents without party")
	}
	return append(out, docs...), nil
}

func (s *snapshot) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return queryAccounts(ctx, s.q, `SELECT `+accountColumns+` FROM accounts ORDER BY account_id;`)
}

func (s *snapshot) ListFixedAssets(ctx context.Context) ([]domain.FixedAsset, error) {
	if err := s.requireTable(ctx, tableFixedAssets); err != nil {
		return nil, err
	}
	query := `
		SELECT asset_id, name, COALESCE(asset_account_id, ''), COALESCE(expense_account_id, ''),
			COALESCE(accumulated_depreciation_account_id, ''), cost, accumulated_depreciation, acquired_at
		FROM fixed_assets
		ORDER BY asset_id;
	`
	rows, err := s.q.Query(ctx, query)
	if err != nil {
		return nil, translateError(err, "failed to query fixed assets")
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FixedAsset, error) {
		var a domain.FixedAsset
		err := row.Scan(&a.AssetID, &a.Name, &a.AssetAccountID, &a.ExpenseAccountID,
			&a.AccumulatedDepreciationAccount, &a.Cost, &a.AccumulatedDepreciation, &a.AcquiredAt)
		return a, err
	})
	if err != nil {
		return nil, translateError(err, "failed to scan fixed assets")
	}
	return out, nil
}

func (s *snapshot) PartiesOverCreditLimit(ctx context.Context) ([]domain.Party, error) {
	if err := s.requireTable(ctx, tableParties); err != nil {
		return nil, err
	}
	query := `
		SELECT party_id, name, balance, credit_limit
		FROM parties
		WHERE credit_limit > 0 AND balance > credit_limit
		ORDER BY party_id;
	`
	rows, err := s.q.Query(ctx, query)
	if err != nil {
		return nil, translateError(err, "failed to query parties over credit limit")
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Party, error) {
		var p domain.Party
		err := row.Scan(&p.PartyID, &p.Name, &p.Balance, &p.CreditLimit)
		return p, err
	})
	if err != nil {
		return nil, translateError(err, "failed to scan parties")
	}
	return out, nil
}

// CountReceivablesOlderThan ages by due date, or by document date when no due date is set.
func (s *snapshot) CountReceivablesOlderThan(ctx context.Context, cutoff time.Time, receivableTypes []string) (int, error) {
	if err := s.requireTable(ctx, tableDocuments); err != nil {
		return 0, err
	}
	query := `
		SELECT COUNT(*)
		FROM source_documents
		WHERE document_type = ANY($1)
		  AND status = 'POSTED'
		  AND COALESCE(due_date, document_date) < $2;
	`
	var count int
	if err := s.q.QueryRow(ctx, query, receivableTypes, domain.TruncateDay(cutoff)).Scan(&count); err != nil {
		return 0, translateError(err, "failed to count aged receivables")
	}
	return count, nil
}

func (s *snapshot) ExchangeRateDefects(ctx context.Context, window domain.DateWindow, baseCurrencyCode string) ([]domain.ExchangeRateDefect, error) {
	from, to := windowArgs(window)
	query := `
		SELECT e.entry_id, e.entry_number, l.line_number, l.currency_code, COALESCE(l.exchange_rate, 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.entry_date BETWEEN $1 AND $2
		  AND l.currency_code <> $3
		  AND COALESCE(l.exchange_rate, 0) <= 0
		ORDER BY e.entry_date, e.entry_number, l.line_number;
	`
	rows, err := s.q.Query(ctx, query, from, to, baseCurrencyCode)
	if err != nil {
		return nil, translateError(err, "failed to query exchange rate defects")
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExchangeRateDefect, error) {
		var d domain.ExchangeRateDefect
		err := row.Scan(&d.EntryID, &d.EntryNumber, &d.LineNumber, &d.CurrencyCode, &d.ExchangeRate)
		return d, err
	})
	if err != nil {
		return nil, translateError(err, "failed to scan exchange rate defects")
	}
	return out, nil
}

func (s *snapshot) BaseCurrencyCode(ctx context.Context) (string, error) {
	return baseCurrencyCode(ctx, s.q)
}

func (s *snapshot) AuditTrailAvailable(ctx context.Context) (bool, error) {
	return s.tableExists(ctx, tableAuditLogs)
}
