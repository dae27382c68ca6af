package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/dto"
)

// postingRuleService is the registry of per-document-type posting rules.
type postingRuleService struct {
	BaseService
	ruleRepo    portsrepo.PostingRuleRepositoryFacade
	accountRepo portsrepo.AccountReader
	recorder    portssvc.AuditTrailRecorder
	docTypes    map[string]domain.DocumentTypeSpec
	validate    *validator.Validate
}

// NewPostingRuleService creates a new posting rule registry. Rules may only reference
// amount fields declared by one of docTypes.
func NewPostingRuleService(ruleRepo portsrepo.PostingRuleRepositoryFacade, accountRepo portsrepo.AccountReader, recorder portssvc.AuditTrailRecorder, docTypes []domain.DocumentTypeSpec) portssvc.PostingRuleSvcFacade {
	specs := make(map[string]domain.DocumentTypeSpec, len(docTypes))
	for _, spec := range docTypes {
		specs[spec.DocumentType] = spec
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Same tags as HTTP binding.
	validate.SetTagName("binding")
	return &postingRuleService{
		ruleRepo:    ruleRepo,
		accountRepo: accountRepo,
		recorder:    recorder,
		docTypes:    specs,
		validate:    validate,
	}
}

var _ portssvc.PostingRuleSvcFacade = (*postingRuleService)(nil)

// RulesFor returns the active rules of a document type, priority ascending then rule name.
func (s *postingRuleService) RulesFor(ctx context.Context, documentType string) ([]domain.PostingRule, error) {
	rules, err := s.ruleRepo.FindActiveRulesByDocumentType(ctx, documentType)
	if err != nil {
		return nil, fmt.Errorf("failed to load posting rules for %s: %w", documentType, err)
	}
	active := make([]domain.PostingRule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Priority != active[j].Priority {
			return active[i].Priority < active[j].Priority
		}
		return active[i].RuleName < active[j].RuleName
	})
	return active, nil
}

// RegisterRule validates and stores a new rule.
func (s *postingRuleService) RegisterRule(ctx context.Context, req dto.RegisterPostingRuleRequest, actorID string) (*domain.PostingRule, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidRule, err)
	}

	rule := domain.PostingRule{
		RuleID:          uuid.NewString(),
		DocumentType:    req.DocumentType,
		RuleName:        req.RuleName,
		AmountField:     req.AmountField,
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		Priority:        req.Priority,
		IsActive:        true,
	}
	if !rule.HasExactlyOneSide() {
		return nil, fmt.Errorf("%w: exactly one of debit and credit account must be set", apperrors.ErrInvalidRule)
	}

	spec, ok := s.docTypes[rule.DocumentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedDocumentType, rule.DocumentType)
	}
	if !spec.Supports(rule.AmountField) {
		return nil, fmt.Errorf("%w: document type %s has no amount field %s", apperrors.ErrInvalidRule, rule.DocumentType, rule.AmountField)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, rule.AccountID())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s does not exist", apperrors.ErrInvalidRule, rule.AccountID())
		}
		return nil, fmt.Errorf("failed to validate rule account: %w", err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrInvalidRule, account.AccountID)
	}

	now := s.now()
	rule.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}

	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save posting rule", slog.String("document_type", rule.DocumentType), slog.String("rule_name", rule.RuleName))
		return nil, fmt.Errorf("failed to save posting rule: %w", err)
	}

	s.recorder.Record(ctx, domain.AuditLogInput{
		EntityTable: tablePostingRules,
		EntityID:    rule.RuleID,
		Action:      domain.ActionCreate,
		ActorID:     actorID,
		After:       ruleState(rule),
	})
	s.LogInfo(ctx, "Posting rule registered", slog.String("rule_id", rule.RuleID), slog.String("document_type", rule.DocumentType))
	return &rule, nil
}

// DeactivateRule takes a rule out of the active set. Deactivating an inactive rule is a no-op.
func (s *postingRuleService) DeactivateRule(ctx context.Context, ruleID string, actorID string) error {
	rule, err := s.ruleRepo.FindRuleByID(ctx, ruleID)
	if err != nil {
		return fmt.Errorf("failed to find posting rule %s: %w", ruleID, err)
	}
	if !rule.IsActive {
		return nil
	}

	if err := s.ruleRepo.DeactivateRule(ctx, ruleID, actorID, s.now()); err != nil {
		return fmt.Errorf("failed to deactivate posting rule %s: %w", ruleID, err)
	}

	before := ruleState(*rule)
	rule.IsActive = false
	s.recorder.Record(ctx, domain.AuditLogInput{
		EntityTable: tablePostingRules,
		EntityID:    rule.RuleID,
		Action:      domain.ActionUpdate,
		ActorID:     actorID,
		Before:      before,
		After:       ruleState(*rule),
	})
	return nil
}
