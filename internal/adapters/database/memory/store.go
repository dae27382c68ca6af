// Package memory is an in-process ledger store with the same transactional
// contract as the Postgres adapter. Transactions are serialised and work on a
// private copy of the state that replaces the committed state on success.
package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
)

// Optional subsystems that can be switched off to exercise the auditor.
const (
	SubsystemFixedAssets = "fixed_assets"
	SubsystemParties     = "parties"
	SubsystemReceivables = "receivables"
	SubsystemDocuments   = "source_documents"
)

type docKey struct {
	docType string
	docID   string
}

type seqKey struct {
	prefix string
	year   int
}

type state struct {
	currencies map[string]domain.Currency
	rates      []domain.ExchangeRate
	accounts   map[string]domain.Account
	rules      map[string]domain.PostingRule
	documents  map[docKey]domain.SourceDocument
	entries    map[string]domain.JournalEntry
	entryOrder []string
	sequences  map[seqKey]int64
	auditLogs  []domain.AuditLogRecord
	parties    map[string]domain.Party
	assets     map[string]domain.FixedAsset
}

func newState() *state {
	return &state{
		currencies: make(map[string]domain.Currency),
		accounts:   make(map[string]domain.Account),
		rules:      make(map[string]domain.PostingRule),
		documents:  make(map[docKey]domain.SourceDocument),
		entries:    make(map[string]domain.JournalEntry),
		sequences:  make(map[seqKey]int64),
		parties:    make(map[string]domain.Party),
		assets:     make(map[string]domain.FixedAsset),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.currencies {
		c.currencies[k] = v
	}
	c.rates = append(c.rates, s.rates...)
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.rules {
		c.rules[k] = v
	}
	for k, v := range s.documents {
		c.documents[k] = cloneDocument(v)
	}
	for k, v := range s.entries {
		c.entries[k] = cloneEntry(v)
	}
	c.entryOrder = append(c.entryOrder, s.entryOrder...)
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	c.auditLogs = append(c.auditLogs, s.auditLogs...)
	for k, v := range s.parties {
		c.parties[k] = v
	}
	for k, v := range s.assets {
		c.assets[k] = v
	}
	return c
}

func cloneEntry(e domain.JournalEntry) domain.JournalEntry {
	e.Lines = append([]domain.JournalLine(nil), e.Lines...)
	return e
}

func cloneDocument(d domain.SourceDocument) domain.SourceDocument {
	amounts := make(map[domain.AmountField]decimal.Decimal, len(d.Amounts))
	for k, v := range d.Amounts {
		amounts[k] = v
	}
	d.Amounts = amounts
	return d
}

// Store is the in-memory ledger store.
type Store struct {
	txMu   sync.Mutex   // serialises writers
	dataMu sync.RWMutex // guards the committed state pointer
	st     *state

	faultMu          sync.Mutex
	auditWriteErr    error
	serializationErr int
	auditInstalled   bool
	disabled         map[string]bool
}

// NewStore creates an empty store with the audit trail installed.
func NewStore() *Store {
	return &Store{st: newState(), auditInstalled: true, disabled: make(map[string]bool)}
}

// committed returns the current committed state. It must be treated as read-only.
func (s *Store) committed() *state {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return s.st
}

// update runs fn on a private copy of the state and publishes it when fn succeeds.
func (s *Store) update(fn func(st *state) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	work := s.committed().clone()
	if err := fn(work); err != nil {
		return err
	}

	s.dataMu.Lock()
	s.st = work
	s.dataMu.Unlock()
	return nil
}

// WithinTx runs fn in a serialised transaction. Nothing fn wrote is visible unless it returns nil.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.update(func(work *state) error {
		if s.takeSerializationFailure() {
			return apperrors.ErrSerializationFailure
		}
		return fn(ctx, &ledgerTx{store: s, st: work})
	})
}

// WithinSnapshot runs fn against the state committed when it starts.
func (s *Store) WithinSnapshot(ctx context.Context, fn func(ctx context.Context, snap portsrepo.AuditSnapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, &snapshot{store: s, st: s.committed()})
}

// Provider exposes the store through every repository port.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        s,
		Snapshotter:      s,
		AccountRepo:      s,
		CurrencyRepo:     s,
		ExchangeRateRepo: s,
		JournalRepo:      s,
		PostingRuleRepo:  s,
		AuditLogRepo:     s,
	}
}

// FailAuditWrites makes every audit log append fail with err until called with nil.
func (s *Store) FailAuditWrites(err error) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	s.auditWriteErr = err
}

// FailNextTransactions makes the next n transactions fail with a serialization error.
func (s *Store) FailNextTransactions(n int) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	s.serializationErr = n
}

// SetAuditTrailInstalled toggles whether the audit trail store reports as present.
func (s *Store) SetAuditTrailInstalled(installed bool) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	s.auditInstalled = installed
}

// DisableSubsystem makes the probes of an optional subsystem report it as unavailable.
func (s *Store) DisableSubsystem(name string) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	s.disabled[name] = true
}

func (s *Store) takeSerializationFailure() bool {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	if s.serializationErr > 0 {
		s.serializationErr--
		return true
	}
	return false
}

func (s *Store) auditErr() error {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	return s.auditWriteErr
}

func (s *Store) subsystemDisabled(name string) bool {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	return s.disabled[name]
}

func (s *Store) auditTrailInstalled() bool {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	return s.auditInstalled
}

var (
	_ portsrepo.TransactionManager           = (*Store)(nil)
	_ portsrepo.AuditSnapshotter             = (*Store)(nil)
	_ portsrepo.AccountReader                = (*Store)(nil)
	_ portsrepo.CurrencyRepositoryFacade     = (*Store)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*Store)(nil)
	_ portsrepo.JournalReader                = (*Store)(nil)
	_ portsrepo.PostingRuleRepositoryFacade  = (*Store)(nil)
	_ portsrepo.AuditLogRepositoryFacade     = (*Store)(nil)
)
