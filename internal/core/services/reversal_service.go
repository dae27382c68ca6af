package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/platform/config"
	"github.com/SscSPs/posting_engine/internal/utils/accounting"
)

// reversalService writes mirrored entries that nullify posted ones.
type reversalService struct {
	BaseService
	txManager portsrepo.TransactionManager
	recorder  portssvc.AuditTrailRecorder
	writer    ledgerWriter
	ledgerCfg config.LedgerConfig
}

// NewReversalService creates a new ReversalSvc.
func NewReversalService(txManager portsrepo.TransactionManager, recorder portssvc.AuditTrailRecorder, policy domain.LedgerPolicy, ledgerCfg config.LedgerConfig) portssvc.ReversalSvc {
	return &reversalService{
		txManager: txManager,
		recorder:  recorder,
		writer:    ledgerWriter{recorder: recorder, policy: policy, padding: ledgerCfg.EntryNumberPadding},
		ledgerCfg: ledgerCfg,
	}
}

var _ portssvc.ReversalSvc = (*reversalService)(nil)

// Reverse negates the document's active entry and unlocks the document.
// Conversion entries have no source document and are reversed on their own.
func (s *reversalService) Reverse(ctx context.Context, documentType, documentID, actorID, reason string) (string, error) {
	logger := s.GetLogger(ctx).With(slog.String("document_type", documentType), slog.String("document_id", documentID))

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", apperrors.NewValidationError("reversal reason is required")
	}
	hasDocument := documentType != domain.DocTypeCurrencyConversion

	var reversalID string
	err := s.withLedgerTx(ctx, s.txManager, s.ledgerCfg.TxRetryAttempts, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		now := s.now()

		var doc *domain.SourceDocument
		if hasDocument {
			var err error
			if doc, err = tx.FindDocumentForUpdate(ctx, documentType, documentID); err != nil {
				return err
			}
		}

		original, err := tx.FindActiveEntryForDocument(ctx, documentType, documentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: %s %s", apperrors.ErrNothingToReverse, documentType, documentID)
			}
			return fmt.Errorf("failed to load active entry: %w", err)
		}

		lines := accounting.MirrorLines(original.Lines)
		// Inactive accounts must still be reversible so their balances can reach zero.
		accounts, err := s.writer.lockAccounts(ctx, tx, lines, false)
		if err != nil {
			return err
		}

		originalID := original.EntryID
		reversal := domain.JournalEntry{
			EntryDate:         domain.TruncateDay(now),
			DocumentType:      documentType,
			DocumentID:        documentID,
			Description:       fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, reason),
			Status:            domain.Posted,
			PostedBy:          actorID,
			PostedAt:          now,
			ReversalOfEntryID: &originalID,
			Lines:             lines,
		}
		if err := s.writer.writeEntry(ctx, tx, &reversal, s.ledgerCfg.ReversalNumberPrefix, accounts, now); err != nil {
			return err
		}

		if err := tx.MarkEntryReversed(ctx, originalID, reversal.EntryID, actorID, reason, now); err != nil {
			return fmt.Errorf("failed to mark entry reversed: %w", err)
		}
		s.recorder.RecordInTx(ctx, tx, domain.AuditLogInput{
			EntityTable: tableJournalEntries,
			EntityID:    originalID,
			Action:      domain.ActionCancel,
			ActorID:     actorID,
			Before:      map[string]any{"status": string(domain.Posted)},
			After: map[string]any{
				"status":               string(domain.Reversed),
				"reversed_by_entry_id": reversal.EntryID,
				"reversal_reason":      reason,
			},
		})

		if hasDocument {
			if err := tx.MarkDocumentUnposted(ctx, documentType, documentID, actorID, now); err != nil {
				return fmt.Errorf("failed to unlock document: %w", err)
			}
			s.recorder.RecordInTx(ctx, tx, domain.AuditLogInput{
				EntityTable: tableDocuments,
				EntityID:    documentType + ":" + documentID,
				Action:      domain.ActionUpdate,
				ActorID:     actorID,
				Before:      documentState(doc.Status, doc.Locked),
				After:       documentState(domain.DocumentDraft, false),
			})
		}

		reversalID = reversal.EntryID
		return nil
	})
	if err != nil {
		if !isClientError(err) {
			logger.Error("Failed to reverse document", slog.String("error", err.Error()))
		}
		return "", err
	}

	logger.Info("Document reversed", slog.String("reversal_entry_id", reversalID))
	return reversalID, nil
}
