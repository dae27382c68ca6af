package services

import (
	"context"

	"github.com/SscSPs/posting_engine/internal/core/domain"
)

// JournalPosterSvc turns source documents into journal entries.
type JournalPosterSvc interface {
	// Post writes one balanced entry for the document and marks it posted. Returns the entry id.
	Post(ctx context.Context, documentType, documentID, actorID string) (string, error)

	// GetEntry returns an entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// ReversalSvc negates posted entries.
type ReversalSvc interface {
	// Reverse writes the mirror of the document's active entry. Returns the reversal entry id.
	Reverse(ctx context.Context, documentType, documentID, actorID, reason string) (string, error)
}
