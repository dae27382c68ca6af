package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/posting_engine/internal/core/domain"
)

// DocumentStore is the source-document provider as seen from inside a ledger transaction.
type DocumentStore interface {
	// FindDocumentForUpdate loads a document and locks it. Returns apperrors.ErrDocumentNotFound when absent.
	FindDocumentForUpdate(ctx context.Context, documentType, documentID string) (*domain.SourceDocument, error)

	// MarkDocumentPosted sets the document to POSTED and locks it against edits.
	MarkDocumentPosted(ctx context.Context, documentType, documentID, actorID string, now time.Time) error

	// MarkDocumentUnposted returns the document to DRAFT and unlocks it.
	MarkDocumentUnposted(ctx context.Context, documentType, documentID, actorID string, now time.Time) error
}
