package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/posting_engine/internal/core/domain"
)

// PostingRuleReader defines read operations for posting rules
type PostingRuleReader interface {
	// FindActiveRulesByDocumentType returns the active rules of a document type, ordered by
	// priority ascending, then rule name.
	FindActiveRulesByDocumentType(ctx context.Context, documentType string) ([]domain.PostingRule, error)

	// FindRuleByID retrieves a rule by its identifier.
	FindRuleByID(ctx context.Context, ruleID string) (*domain.PostingRule, error)
}

// PostingRuleWriter defines write operations for posting rules
type PostingRuleWriter interface {
	// SaveRule persists a new rule. A (documentType, ruleName) collision fails with apperrors.ErrDuplicateRule.
	SaveRule(ctx context.Context, rule domain.PostingRule) error

	// DeactivateRule marks a rule inactive.
	DeactivateRule(ctx context.Context, ruleID string, actorID string, now time.Time) error
}

// PostingRuleRepositoryFacade combines all posting rule repository interfaces
type PostingRuleRepositoryFacade interface {
	PostingRuleReader
	PostingRuleWriter
}
