package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository port to the Postgres pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	txManager := NewTxManager(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:        txManager,
		Snapshotter:      txManager,
		AccountRepo:      NewAccountRepository(dbPool),
		CurrencyRepo:     NewCurrencyRepository(dbPool),
		ExchangeRateRepo: NewExchangeRateRepository(dbPool),
		JournalRepo:      NewJournalRepository(dbPool),
		PostingRuleRepo:  NewPostingRuleRepository(dbPool),
		AuditLogRepo:     NewAuditLogRepository(dbPool),
	}
}
