package services

import (
	"context"

	"github.com/SscSPs/posting_engine/internal/core/domain"
	"github.com/SscSPs/posting_engine/internal/dto"
)

// PostingRuleReaderSvc is the read side of the posting rule registry.
type PostingRuleReaderSvc interface {
	// RulesFor returns the active rules of a document type, ordered by priority.
	RulesFor(ctx context.Context, documentType string) ([]domain.PostingRule, error)
}

// PostingRuleWriterSvc is the write side of the posting rule registry.
type PostingRuleWriterSvc interface {
	RegisterRule(ctx context.Context, req dto.RegisterPostingRuleRequest, actorID string) (*domain.PostingRule, error)
	DeactivateRule(ctx context.Context, ruleID string, actorID string) error
}

// PostingRuleSvcFacade combines all posting rule service interfaces
type PostingRuleSvcFacade interface {
	PostingRuleReaderSvc
	PostingRuleWriterSvc
}
