package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside one atomic database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}

// LedgerTx is the set of operations available inside a ledger transaction.
type LedgerTx interface {
	DocumentStore
	JournalTxReader
	JournalWriter
	AccountTransactionSupport
	SequenceAllocator
	AuditLogWriter
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager        TransactionManager
	Snapshotter      AuditSnapshotter
	AccountRepo      AccountReader
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	JournalRepo      JournalReader
	PostingRuleRepo  PostingRuleRepositoryFacade
	AuditLogRepo     AuditLogRepositoryFacade
}
