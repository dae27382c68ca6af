package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/posting_engine/internal/apperrors"
)

// Postgres error codes the adapter translates.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// Unique indexes whose violations carry domain meaning.
const (
	idxActiveDocumentEntry = "ux_journal_entries_active_document"
	idxRuleName            = "ux_posting_rules_document_type_name"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ querier = (*pgxpool.Pool)(nil)
	_ querier = (pgx.Tx)(nil)
)

// BaseRepository provides common database operations for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new transaction with the given options
func (r *BaseRepository) Begin(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, opts)
	if err != nil {
		return nil, apperrors.NewDependencyError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits the transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return translateError(err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back the transaction. Rolling back a finished transaction is not an error.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// translateError maps driver errors onto the application error kinds. It
// leaves errors it does not recognise wrapped with msg.
func translateError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", msg, apperrors.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected:
			return fmt.Errorf("%s: %w", msg, apperrors.ErrSerializationFailure)
		case pgUniqueViolation:
			switch pgErr.ConstraintName {
			case idxActiveDocumentEntry:
				return fmt.Errorf("%s: %w", msg, apperrors.ErrAlreadyPosted)
			case idxRuleName:
				return fmt.Errorf("%s: %w", msg, apperrors.ErrDuplicateRule)
			default:
				return fmt.Errorf("%s: %w: %s", msg, apperrors.ErrDuplicate, pgErr.ConstraintName)
			}
		}
	}
	if pgconn.SafeToRetry(err) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewDependencyError(msg, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
