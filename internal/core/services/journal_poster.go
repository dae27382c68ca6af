package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/platform/config"
	"github.com/SscSPs/posting_engine/internal/utils/accounting"
)

// journalPoster turns one source document into one balanced journal entry.
type journalPoster struct {
	BaseService
	txManager    portsrepo.TransactionManager
	journalRepo  portsrepo.JournalReader
	currencyRepo portsrepo.CurrencyReader
	rules        portssvc.PostingRuleReaderSvc
	converter    portssvc.CurrencyConverterSvc
	recorder     portssvc.AuditTrailRecorder
	writer       ledgerWriter
	policy       domain.LedgerPolicy
	ledgerCfg    config.LedgerConfig
}

// NewJournalPoster creates a new JournalPosterSvc.
func NewJournalPoster(
	txManager portsrepo.TransactionManager,
	journalRepo portsrepo.JournalReader,
	currencyRepo portsrepo.CurrencyReader,
	rules portssvc.PostingRuleReaderSvc,
	converter portssvc.CurrencyConverterSvc,
	recorder portssvc.AuditTrailRecorder,
	policy domain.LedgerPolicy,
	ledgerCfg config.LedgerConfig,
) portssvc.JournalPosterSvc {
	return &journalPoster{
		txManager:    txManager,
		journalRepo:  journalRepo,
		currencyRepo: currencyRepo,
		rules:        rules,
		converter:    converter,
		recorder:     recorder,
		writer:       ledgerWriter{recorder: recorder, policy: policy, padding: ledgerCfg.EntryNumberPadding},
		policy:       policy,
		ledgerCfg:    ledgerCfg,
	}
}

var _ portssvc.JournalPosterSvc = (*journalPoster)(nil)

// Post writes the entry for a document and marks the document posted, all in one transaction.
func (s *journalPoster) Post(ctx context.Context, documentType, documentID, actorID string) (string, error) {
	logger := s.GetLogger(ctx).With(slog.String("document_type", documentType), slog.String("document_id", documentID))

	var entryID string
	err := s.withLedgerTx(ctx, s.txManager, s.ledgerCfg.TxRetryAttempts, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		now := s.now()

		// The document row lock serialises posters and reversers of the same document.
		doc, err := tx.FindDocumentForUpdate(ctx, documentType, documentID)
		if err != nil {
			return err
		}
		if _, err := tx.FindActiveEntryForDocument(ctx, documentType, documentID); err == nil {
			return fmt.Errorf("%w: %s %s", apperrors.ErrAlreadyPosted, documentType, documentID)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check for an existing entry: %w", err)
		}
		if doc.Status == domain.DocumentCancelled {
			return fmt.Errorf("%w: document %s is cancelled", apperrors.ErrConflict, documentID)
		}

		rules, err := s.rules.RulesFor(ctx, documentType)
		if err != nil {
			return err
		}
		if len(rules) == 0 {
			return fmt.Errorf("%w: no active posting rules for %s", apperrors.ErrUnsupportedDocumentType, documentType)
		}

		currencyCode, rate, err := s.lineCurrency(ctx, doc)
		if err != nil {
			return err
		}
		lines, err := buildLines(doc, rules, currencyCode, rate)
		if err != nil {
			return err
		}

		debit, credit := accounting.SumLines(lines)
		if !s.policy.Balanced(debit, credit) || len(lines) < 2 {
			logger.Error("Posting rules produced an unbalanced entry",
				slog.String("total_debit", debit.String()),
				slog.String("total_credit", credit.String()),
				slog.Int("line_count", len(lines)))
			return fmt.Errorf("%w: %s %s debits %s, credits %s", apperrors.ErrUnbalancedPosting, documentType, documentID, debit.String(), credit.String())
		}

		accounts, err := s.writer.lockAccounts(ctx, tx, lines, true)
		if err != nil {
			return err
		}

		entry := domain.JournalEntry{
			EntryDate:    domain.TruncateDay(doc.DocumentDate),
			DocumentType: documentType,
			DocumentID:   documentID,
			Description:  fmt.Sprintf("%s %s", documentType, doc.DocumentNumber),
			Status:       domain.Posted,
			PostedBy:     actorID,
			PostedAt:     now,
			Lines:        lines,
		}
		if err := s.writer.writeEntry(ctx, tx, &entry, s.ledgerCfg.EntryNumberPrefix, accounts, now); err != nil {
			return err
		}

		if err := tx.MarkDocumentPosted(ctx, documentType, documentID, actorID, now); err != nil {
			return fmt.Errorf("failed to mark document posted: %w", err)
		}
		s.recorder.RecordInTx(ctx, tx, domain.AuditLogInput{
			EntityTable: tableDocuments,
			EntityID:    documentType + ":" + documentID,
			Action:      domain.ActionUpdate,
			ActorID:     actorID,
			Before:      documentState(doc.Status, doc.Locked),
			After:       documentState(domain.DocumentPosted, true),
		})

		entryID = entry.EntryID
		return nil
	})
	if err != nil {
		if !isClientError(err) {
			logger.Error("Failed to post document", slog.String("error", err.Error()))
		}
		return "", err
	}

	logger.Info("Document posted", slog.String("entry_id", entryID))
	return entryID, nil
}

// GetEntry returns an entry with its lines.
func (s *journalPoster) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry %s: %w", entryID, err)
	}
	return entry, nil
}

// lineCurrency resolves the currency and rate-to-base stamped on every line of the document.
func (s *journalPoster) lineCurrency(ctx context.Context, doc *domain.SourceDocument) (string, decimal.Decimal, error) {
	base, err := s.currencyRepo.FindBaseCurrency(ctx)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("failed to resolve base currency: %w", err)
	}
	code := doc.CurrencyCode
	if code == "" || code == base.CurrencyCode {
		return base.CurrencyCode, decimal.NewFromInt(1), nil
	}
	if doc.ExchangeRate.IsPositive() {
		return code, doc.ExchangeRate, nil
	}
	rate, err := s.converter.GetRate(ctx, code, base.CurrencyCode, doc.DocumentDate)
	if err != nil {
		return "", decimal.Zero, err
	}
	return code, rate, nil
}

// buildLines emits one line per rule with a non-zero amount, numbered from 1 in rule order.
func buildLines(doc *domain.SourceDocument, rules []domain.PostingRule, currencyCode string, rate decimal.Decimal) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, 0, len(rules))
	for _, rule := range rules {
		amount, ok := doc.Amount(rule.AmountField)
		if !ok {
			return nil, fmt.Errorf("%w: rule %s reads %s which document %s does not carry", apperrors.ErrInvalidAmount, rule.RuleName, rule.AmountField, doc.DocumentID)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: %s is negative (%s) on document %s", apperrors.ErrInvalidAmount, rule.AmountField, amount.String(), doc.DocumentID)
		}
		if amount.IsZero() {
			continue
		}

		line := domain.JournalLine{
			AccountID:    rule.AccountID(),
			Debit:        decimal.Zero,
			Credit:       decimal.Zero,
			LineNumber:   len(lines) + 1,
			CurrencyCode: currencyCode,
			ExchangeRate: rate,
		}
		if rule.IsDebit() {
			line.Debit = amount
		} else {
			line.Credit = amount
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: document %s has no non-zero amounts to post", apperrors.ErrInvalidAmount, doc.DocumentID)
	}
	return lines, nil
}

// isClientError reports whether err is a caller mistake rather than a system failure.
func isClientError(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, apperrors.ErrDuplicate)
}
