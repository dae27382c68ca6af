package mapping

import (
	"github.com/SscSPs/posting_engine/internal/core/domain"
	"github.com/SscSPs/posting_engine/internal/models"
)

// ToModelPostingRule converts a domain PostingRule to a model PostingRule
func ToModelPostingRule(d domain.PostingRule) models.PostingRule {
	return models.PostingRule{
		RuleID:          d.RuleID,
		DocumentType:    d.DocumentType,
		RuleName:        d.RuleName,
		AmountField:     string(d.AmountField),
		DebitAccountID:  nullString(d.DebitAccountID),
		CreditAccountID: nullString(d.CreditAccountID),
		Priority:        d.Priority,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPostingRule converts a model PostingRule to a domain PostingRule
func ToDomainPostingRule(m models.PostingRule) domain.PostingRule {
	return domain.PostingRule{
		RuleID:          m.RuleID,
		DocumentType:    m.DocumentType,
		RuleName:        m.RuleName,
		AmountField:     domain.AmountField(m.AmountField),
		DebitAccountID:  m.DebitAccountID.String,
		CreditAccountID: m.CreditAccountID.String,
		Priority:        m.Priority,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPostingRuleSlice converts a slice of model PostingRules to domain PostingRules
func ToDomainPostingRuleSlice(ms []models.PostingRule) []domain.PostingRule {
	ds := make([]domain.PostingRule, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPostingRule(m)
	}
	return ds
}
