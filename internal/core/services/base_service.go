package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	"github.com/SscSPs/posting_engine/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Now returns the current time. Tests replace it to pin dates.
	Now func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

func (s *BaseService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// txRetryBaseDelay is the first wait before re-running a transaction that lost a serialization race.
const txRetryBaseDelay = 20 * time.Millisecond

// withLedgerTx runs fn in one transaction, re-running it when the store reports a
// serialization failure or deadlock. Any other error ends the attempt immediately.
func (s *BaseService) withLedgerTx(ctx context.Context, txm portsrepo.TransactionManager, attempts int, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	if attempts < 1 {
		attempts = 1
	}
	try := 0
	op := func() error {
		try++
		err := txm.WithinTx(ctx, fn)
		if err == nil {
			return nil
		}
		if errors.Is(err, apperrors.ErrSerializationFailure) {
			s.LogDebug(ctx, "Retrying ledger transaction", slog.Int("attempt", try), slog.String("error", err.Error()))
			return err
		}
		return backoff.Permanent(err)
	}

	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(newRetryBackOff(txRetryBaseDelay), uint64(attempts-1)), ctx))
	if err != nil && errors.Is(err, apperrors.ErrSerializationFailure) {
		return fmt.Errorf("ledger transaction failed after %d attempts: %w", try, err)
	}
	return err
}

func newRetryBackOff(base time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.MaxInterval = 50 * base
	b.MaxElapsedTime = 0
	return b
}
