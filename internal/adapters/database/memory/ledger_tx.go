package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
)

// ledgerTx works on the transaction's private copy of the state.
type ledgerTx struct {
	store *Store
	st    *state
}

var _ portsrepo.LedgerTx = (*ledgerTx)(nil)

func (t *ledgerTx) FindDocumentForUpdate(ctx context.Context, documentType, documentID string) (*domain.SourceDocument, error) {
	doc, ok := t.st.documents[docKey{documentType, documentID}]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrDocumentNotFound, documentType, documentID)
	}
	out := cloneDocument(doc)
	return &out, nil
}

func (t *ledgerTx) MarkDocumentPosted(ctx context.Context, documentType, documentID, actorID string, now time.Time) error {
	key := docKey{documentType, documentID}
	doc, ok := t.st.documents[key]
	if !ok {
		return fmt.Errorf("%w: %s %s", apperrors.ErrDocumentNotFound, documentType, documentID)
	}
	doc.Status = domain.DocumentPosted
	doc.Locked = true
	doc.PostedBy = actorID
	postedAt := now
	doc.PostedAt = &postedAt
	t.st.documents[key] = doc
	return nil
}

func (t *ledgerTx) MarkDocumentUnposted(ctx context.Context, documentType, documentID, actorID string, now time.Time) error {
	key := docKey{documentType, documentID}
	doc, ok := t.st.documents[key]
	if !ok {
		return fmt.Errorf("%w: %s %s", apperrors.ErrDocumentNotFound, documentType, documentID)
	}
	doc.Status = domain.DocumentDraft
	doc.Locked = false
	doc.PostedBy = ""
	doc.PostedAt = nil
	t.st.documents[key] = doc
	return nil
}

func (t *ledgerTx) FindActiveEntryForDocument(ctx context.Context, documentType, documentID string) (*domain.JournalEntry, error) {
	for _, id := range t.st.entryOrder {
		e := t.st.entries[id]
		if e.DocumentType == documentType && e.DocumentID == documentID && e.IsActive() {
			out := cloneEntry(e)
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// SaveJournalEntry enforces the same uniqueness rules as the database indexes.
func (t *ledgerTx) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	if _, exists := t.st.entries[entry.EntryID]; exists {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, entry.EntryID)
	}
	for _, e := range t.st.entries {
		if e.EntryNumber == entry.EntryNumber {
			return fmt.Errorf("%w: entry number %s", apperrors.ErrDuplicate, entry.EntryNumber)
		}
		if entry.IsActive() && e.IsActive() && e.DocumentType == entry.DocumentType && e.DocumentID == entry.DocumentID {
			return fmt.Errorf("%w: %s %s", apperrors.ErrAlreadyPosted, entry.DocumentType, entry.DocumentID)
		}
	}
	t.st.entries[entry.EntryID] = cloneEntry(entry)
	t.st.entryOrder = append(t.st.entryOrder, entry.EntryID)
	return nil
}

func (t *ledgerTx) MarkEntryReversed(ctx context.Context, entryID, reversalEntryID, actorID, reason string, now time.Time) error {
	e, ok := t.st.entries[entryID]
	if !ok {
		return apperrors.NewNotFoundError("journal entry " + entryID)
	}
	if e.Status != domain.Posted {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrConflict, entryID, e.Status)
	}
	reversedAt := now
	e.Status = domain.Reversed
	e.ReversedBy = &actorID
	e.ReversedAt = &reversedAt
	e.ReversalReason = &reason
	e.ReversedByEntryID = &reversalEntryID
	t.st.entries[entryID] = e
	return nil
}

func (t *ledgerTx) NextEntrySequence(ctx context.Context, prefix string, year int) (int64, error) {
	key := seqKey{prefix, year}
	t.st.sequences[key]++
	return t.st.sequences[key], nil
}

func (t *ledgerTx) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if a, ok := t.st.accounts[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (t *ledgerTx) UpdateAccountBalances(ctx context.Context, balanceChanges map[string]decimal.Decimal, actorID string, now time.Time) error {
	for id, delta := range balanceChanges {
		a, ok := t.st.accounts[id]
		if !ok {
			return apperrors.NewNotFoundError("account " + id)
		}
		a.Balance = a.Balance.Add(delta)
		a.LastUpdatedAt = now
		a.LastUpdatedBy = actorID
		t.st.accounts[id] = a
	}
	return nil
}

// AppendAuditLog writes into the transaction. A failed append leaves the transaction untouched.
func (t *ledgerTx) AppendAuditLog(ctx context.Context, record domain.AuditLogRecord) error {
	if err := t.store.auditErr(); err != nil {
		return err
	}
	t.st.auditLogs = append(t.st.auditLogs, record)
	return nil
}
