package memory

import (
	"github.com/SscSPs/posting_engine/internal/core/domain"
)

// Seeding and inspection helpers. They bypass every business rule so tests can
// set up, and look at, arbitrary ledger states.

// PutAccount inserts or replaces an account.
func (s *Store) PutAccount(a domain.Account) {
	_ = s.update(func(st *state) error {
		st.accounts[a.AccountID] = a
		return nil
	})
}

// PutCurrency inserts or replaces a currency, keeping its base flag as given.
func (s *Store) PutCurrency(c domain.Currency) {
	_ = s.update(func(st *state) error {
		st.currencies[c.CurrencyCode] = c
		return nil
	})
}

// PutDocument inserts or replaces a source document.
func (s *Store) PutDocument(d domain.SourceDocument) {
	_ = s.update(func(st *state) error {
		st.documents[docKey{d.DocumentType, d.DocumentID}] = cloneDocument(d)
		return nil
	})
}

// PutParty inserts or replaces a party.
func (s *Store) PutParty(p domain.Party) {
	_ = s.update(func(st *state) error {
		st.parties[p.PartyID] = p
		return nil
	})
}

// PutFixedAsset inserts or replaces a fixed asset.
func (s *Store) PutFixedAsset(a domain.FixedAsset) {
	_ = s.update(func(st *state) error {
		st.assets[a.AssetID] = a
		return nil
	})
}

// InsertEntry stores an entry as-is, without balance or uniqueness checks.
func (s *Store) InsertEntry(e domain.JournalEntry) {
	_ = s.update(func(st *state) error {
		if _, exists := st.entries[e.EntryID]; !exists {
			st.entryOrder = append(st.entryOrder, e.EntryID)
		}
		st.entries[e.EntryID] = cloneEntry(e)
		return nil
	})
}

// Account returns the committed account.
func (s *Store) Account(id string) (domain.Account, bool) {
	a, ok := s.committed().accounts[id]
	return a, ok
}

// Document returns the committed document.
func (s *Store) Document(documentType, documentID string) (domain.SourceDocument, bool) {
	d, ok := s.committed().documents[docKey{documentType, documentID}]
	if !ok {
		return domain.SourceDocument{}, false
	}
	return cloneDocument(d), true
}

// Entries returns all committed entries in insertion order.
func (s *Store) Entries() []domain.JournalEntry {
	st := s.committed()
	out := make([]domain.JournalEntry, 0, len(st.entryOrder))
	for _, id := range st.entryOrder {
		out = append(out, cloneEntry(st.entries[id]))
	}
	return out
}

// AuditLogs returns all committed audit records in append order.
func (s *Store) AuditLogs() []domain.AuditLogRecord {
	return append([]domain.AuditLogRecord(nil), s.committed().auditLogs...)
}
