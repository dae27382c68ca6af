package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/posting_engine/internal/core/domain"
)

// JournalReader defines read operations for journal data outside a transaction.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry and its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// JournalTxReader defines journal reads that take part in a ledger transaction.
type JournalTxReader interface {
	// FindActiveEntryForDocument returns the non-reversed entry of a document with its lines,
	// locking it against concurrent reversal. Returns apperrors.ErrNotFound when none exists.
	FindActiveEntryForDocument(ctx context.Context, documentType, documentID string) (*domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournalEntry persists the entry header and its lines. A second active entry for the
	// same document fails with apperrors.ErrAlreadyPosted.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// MarkEntryReversed moves an entry to REVERSED and links it to its reversal entry.
	MarkEntryReversed(ctx context.Context, entryID, reversalEntryID, actorID, reason string, now time.Time) error
}

// SequenceAllocator hands out entry number counters.
type SequenceAllocator interface {
	// NextEntrySequence returns the next counter for the prefix and year, starting at 1.
	NextEntrySequence(ctx context.Context, prefix string, year int) (int64, error)
}
