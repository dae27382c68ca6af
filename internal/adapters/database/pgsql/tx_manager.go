package pgsql

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
)

// TxManager runs ledger transactions at READ COMMITTED. Concurrent writers are
// ordered by the row locks the ledger transaction takes.
type TxManager struct {
	BaseRepository
}

// NewTxManager creates a transaction manager over the pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.TransactionManager = (*TxManager)(nil)
	_ portsrepo.AuditSnapshotter   = (*TxManager)(nil)
)

// WithinTx commits when fn returns nil and rolls back otherwise.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := m.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := m.Rollback(ctx, tx); rbErr != nil {
			slog.WarnContext(ctx, "Ledger transaction rollback failed", "error", rbErr)
		}
	}()

	if err := fn(ctx, &ledgerTx{tx: tx}); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}

// WithinSnapshot runs fn in a read-only REPEATABLE READ transaction so every
// probe sees the same committed state.
func (m *TxManager) WithinSnapshot(ctx context.Context, fn func(ctx context.Context, snap portsrepo.AuditSnapshot) error) error {
	tx, err := m.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := m.Rollback(ctx, tx); rbErr != nil {
			slog.WarnContext(ctx, "Audit snapshot rollback failed", "error", rbErr)
		}
	}()

	return fn(ctx, &snapshot{q: tx})
}
