package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
)

// snapshot reads one committed state. Later commits publish a new state and
// never touch this one.
type snapshot struct {
	store *Store
	st    *state
}

var _ portsrepo.AuditSnapshot = (*snapshot)(nil)

func (s *snapshot) entriesIn(window domain.DateWindow) []domain.JournalEntry {
	var out []domain.JournalEntry
	for _, id := range s.st.entryOrder {
		e := s.st.entries[id]
		if window.Contains(e.EntryDate) {
			out = append(out, e)
		}
	}
	return out
}

func (s *snapshot) unavailable(name string) error {
	if s.store.subsystemDisabled(name) {
		return fmt.Errorf("%w: %s", apperrors.ErrSubsystemUnavailable, name)
	}
	return nil
}

func (s *snapshot) EntryTotals(ctx context.Context, window domain.DateWindow) ([]domain.EntryTotals, error) {
	entries := s.entriesIn(window)
	out := make([]domain.EntryTotals, 0, len(entries))
	for _, e := range entries {
		t := domain.EntryTotals{
			EntryID:      e.EntryID,
			EntryNumber:  e.EntryNumber,
			HeaderDebit:  e.TotalDebit,
			HeaderCredit: e.TotalCredit,
			LineCount:    len(e.Lines),
		}
		for _, l := range e.Lines {
			t.LineDebit = t.LineDebit.Add(l.Debit)
			t.LineCredit = t.LineCredit.Add(l.Credit)
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *snapshot) TrialBalance(ctx context.Context, window domain.DateWindow) (domain.TrialBalanceTotals, error) {
	totals := domain.TrialBalanceTotals{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, e := range s.entriesIn(window) {
		for _, l := range e.Lines {
			totals.TotalDebit = totals.TotalDebit.Add(l.Debit)
			totals.TotalCredit = totals.TotalCredit.Add(l.Credit)
			totals.LineCount++
		}
	}
	return totals, nil
}

func (s *snapshot) hasActiveEntry(documentType, documentID string) bool {
	for _, e := range s.st.entries {
		if e.DocumentType == documentType && e.DocumentID == documentID && e.IsActive() {
			return true
		}
	}
	return false
}

func (s *snapshot) sortedDocuments() []domain.SourceDocument {
	docs := make([]domain.SourceDocument, 0, len(s.st.documents))
	for _, d := range s.st.documents {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].DocumentType != docs[j].DocumentType {
			return docs[i].DocumentType < docs[j].DocumentType
		}
		return docs[i].DocumentID < docs[j].DocumentID
	})
	return docs
}

func (s *snapshot) PostedDocumentsWithoutEntry(ctx context.Context, window domain.DateWindow) ([]domain.DocumentRef, error) {
	if err := s.unavailable(SubsystemDocuments); err != nil {
		return nil, err
	}
	var out []domain.DocumentRef
	for _, d := range s.sortedDocuments() {
		if d.Status != domain.DocumentPosted || !window.Contains(d.DocumentDate) {
			continue
		}
		if !s.hasActiveEntry(d.DocumentType, d.DocumentID) {
			out = append(out, domain.DocumentRef{DocumentType: d.DocumentType, DocumentID: d.DocumentID, DocumentNumber: d.DocumentNumber})
		}
	}
	return out, nil
}

func (s *snapshot) MissingReferences(ctx context.Context, window domain.DateWindow, partyRequired []string) ([]domain.MissingReference, error) {
	var out []domain.MissingReference
	for _, e := range s.entriesIn(window) {
		for _, l := range e.Lines {
			if _, ok := s.st.accounts[l.AccountID]; l.AccountID == "" || !ok {
				recordID := l.LineID
				if recordID == "" {
					recordID = fmt.Sprintf("%s/%d", e.EntryID, l.LineNumber)
				}
				out = append(out, domain.MissingReference{Table: "journal_lines", RecordID: recordID, Column: "account_id", Value: l.AccountID})
			}
		}
	}

	if s.store.subsystemDisabled(SubsystemDocuments) {
		return out, nil
	}
	required := make(map[string]bool, len(partyRequired))
	for _, t := range partyRequired {
		required[t] = true
	}
	checkParties := !s.store.subsystemDisabled(SubsystemParties)
	for _, d := range s.sortedDocuments() {
		if !required[d.DocumentType] || !window.Contains(d.DocumentDate) {
			continue
		}
		recordID := d.DocumentType + ":" + d.DocumentID
		if d.PartyID == "" {
			out = append(out, domain.MissingReference{Table: "source_documents", RecordID: recordID, Column: "party_id"})
			continue
		}
		if _, ok := s.st.parties[d.PartyID]; checkParties && !ok {
			out = append(out, domain.MissingReference{Table: "source_documents", RecordID: recordID, Column: "party_id", Value: d.PartyID})
		}
	}
	return out, nil
}

func (s *snapshot) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(s.st.accounts))
	for _, a := range s.st.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (s *snapshot) ListFixedAssets(ctx context.Context) ([]domain.FixedAsset, error) {
	if err := s.unavailable(SubsystemFixedAssets); err != nil {
		return nil, err
	}
	out := make([]domain.FixedAsset, 0, len(s.st.assets))
	for _, a := range s.st.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssetID < out[j].AssetID })
	return out, nil
}

func (s *snapshot) PartiesOverCreditLimit(ctx context.Context) ([]domain.Party, error) {
	if err := s.unavailable(SubsystemParties); err != nil {
		return nil, err
	}
	var out []domain.Party
	for _, p := range s.st.parties {
		if p.ExceedsCreditLimit() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartyID < out[j].PartyID })
	return out, nil
}

// CountReceivablesOlderThan ages by due date, or by document date when no due date is set.
func (s *snapshot) CountReceivablesOlderThan(ctx context.Context, cutoff time.Time, receivableTypes []string) (int, error) {
	if err := s.unavailable(SubsystemDocuments); err != nil {
		return 0, err
	}
	if err := s.unavailable(SubsystemReceivables); err != nil {
		return 0, err
	}
	receivable := make(map[string]bool, len(receivableTypes))
	for _, t := range receivableTypes {
		receivable[t] = true
	}
	count := 0
	for _, d := range s.st.documents {
		if !receivable[d.DocumentType] || d.Status != domain.DocumentPosted {
			continue
		}
		aged := d.DocumentDate
		if d.DueDate != nil {
			aged = *d.DueDate
		}
		if domain.TruncateDay(aged).Before(cutoff) {
			count++
		}
	}
	return count, nil
}

func (s *snapshot) ExchangeRateDefects(ctx context.Context, window domain.DateWindow, baseCurrencyCode string) ([]domain.ExchangeRateDefect, error) {
	var out []domain.ExchangeRateDefect
	for _, e := range s.entriesIn(window) {
		for _, l := range e.Lines {
			if l.CurrencyCode == baseCurrencyCode || l.ExchangeRate.IsPositive() {
				continue
			}
			out = append(out, domain.ExchangeRateDefect{
				EntryID:      e.EntryID,
				EntryNumber:  e.EntryNumber,
				LineNumber:   l.LineNumber,
				CurrencyCode: l.CurrencyCode,
				ExchangeRate: l.ExchangeRate,
			})
		}
	}
	return out, nil
}

func (s *snapshot) BaseCurrencyCode(ctx context.Context) (string, error) {
	for _, c := range s.st.currencies {
		if c.IsBase {
			return c.CurrencyCode, nil
		}
	}
	return "", apperrors.NewNotFoundError("base currency")
}

func (s *snapshot) AuditTrailAvailable(ctx context.Context) (bool, error) {
	return s.store.auditTrailInstalled(), nil
}
