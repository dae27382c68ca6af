package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/utils/accounting"
)

// ledgerWriter holds the write steps shared by posting, reversal and conversion.
type ledgerWriter struct {
	recorder portssvc.AuditTrailRecorder
	policy   domain.LedgerPolicy
	padding  int
}

// formatEntryNumber renders <prefix>-<yyyy>-<counter>, the counter zero-padded to padding digits.
func formatEntryNumber(prefix string, year int, seq int64, padding int) string {
	return fmt.Sprintf("%s-%04d-%0*d", prefix, year, padding, seq)
}

// lockAccounts loads and locks the accounts referenced by lines. Unknown accounts
// fail with a not-found error; inactive ones with ErrInvalidAccount when requireActive.
func (w ledgerWriter) lockAccounts(ctx context.Context, tx portsrepo.LedgerTx, lines []domain.JournalLine, requireActive bool) (map[string]domain.Account, error) {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; !ok {
			seen[l.AccountID] = struct{}{}
			ids = append(ids, l.AccountID)
		}
	}
	// Stable lock order keeps concurrent writers from deadlocking each other.
	sort.Strings(ids)

	accounts, err := tx.FindAccountsByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	for _, id := range ids {
		account, ok := accounts[id]
		if !ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s", id))
		}
		if requireActive && !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrInvalidAccount, id)
		}
	}
	return accounts, nil
}

// writeEntry validates, numbers, totals and persists the entry, then applies its balance deltas.
// entry.Lines must already be built; ids are assigned here.
func (w ledgerWriter) writeEntry(ctx context.Context, tx portsrepo.LedgerTx, entry *domain.JournalEntry, prefix string, accounts map[string]domain.Account, now time.Time) error {
	if err := accounting.ValidateLines(entry.Lines, w.policy); err != nil {
		return err
	}
	seq, err := tx.NextEntrySequence(ctx, prefix, entry.EntryDate.Year())
	if err != nil {
		return fmt.Errorf("failed to allocate entry number: %w", err)
	}
	entry.EntryID = uuid.NewString()
	entry.EntryNumber = formatEntryNumber(prefix, entry.EntryDate.Year(), seq, w.padding)
	entry.TotalDebit, entry.TotalCredit = accounting.SumLines(entry.Lines)
	for i := range entry.Lines {
		entry.Lines[i].LineID = uuid.NewString()
		entry.Lines[i].EntryID = entry.EntryID
	}

	if err := tx.SaveJournalEntry(ctx, *entry); err != nil {
		return err
	}

	changes, err := accounting.BalanceChanges(entry.Lines, accounts)
	if err != nil {
		return fmt.Errorf("failed to compute balance changes: %w", err)
	}
	if err := tx.UpdateAccountBalances(ctx, changes, entry.PostedBy, now); err != nil {
		return fmt.Errorf("failed to update account balances: %w", err)
	}

	w.recorder.RecordInTx(ctx, tx, domain.AuditLogInput{
		EntityTable: tableJournalEntries,
		EntityID:    entry.EntryID,
		Action:      domain.ActionCreate,
		ActorID:     entry.PostedBy,
		After:       entryState(*entry),
	})
	for id, delta := range changes {
		before := accounts[id].Balance
		w.recorder.RecordInTx(ctx, tx, domain.AuditLogInput{
			EntityTable: tableAccounts,
			EntityID:    id,
			Action:      domain.ActionUpdate,
			ActorID:     entry.PostedBy,
			Before:      balanceState(before.String()),
			After:       balanceState(before.Add(delta).String()),
		})
	}
	return nil
}
