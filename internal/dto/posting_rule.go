package dto

import (
	"github.com/SscSPs/posting_engine/internal/core/domain"
)

// RegisterPostingRuleRequest defines the data needed to register a posting rule.
// Exactly one of DebitAccountID and CreditAccountID must be set.
type RegisterPostingRuleRequest struct {
	DocumentType    string             `json:"documentType" binding:"required"`
	RuleName        string             `json:"ruleName" binding:"required,max=100"`
	AmountField     domain.AmountField `json:"amountField" binding:"required,oneof=TOTAL SUBTOTAL TAX DISCOUNT SHIPPING PAID"`
	DebitAccountID  string             `json:"debitAccountID,omitempty"`
	CreditAccountID string             `json:"creditAccountID,omitempty"`
	Priority        int                `json:"priority" binding:"min=0"`
}

// PostingRuleResponse defines the data returned for a posting rule.
type PostingRuleResponse struct {
	RuleID          string             `json:"ruleID"`
	DocumentType    string             `json:"documentType"`
	RuleName        string             `json:"ruleName"`
	AmountField     domain.AmountField `json:"amountField"`
	DebitAccountID  string             `json:"debitAccountID,omitempty"`
	CreditAccountID string             `json:"creditAccountID,omitempty"`
	Priority        int                `json:"priority"`
	IsActive        bool               `json:"isActive"`
}

// ToPostingRuleResponse converts a domain.PostingRule to PostingRuleResponse DTO.
func ToPostingRuleResponse(r *domain.PostingRule) PostingRuleResponse {
	return PostingRuleResponse{
		RuleID:          r.RuleID,
		DocumentType:    r.DocumentType,
		RuleName:        r.RuleName,
		AmountField:     r.AmountField,
		DebitAccountID:  r.DebitAccountID,
		CreditAccountID: r.CreditAccountID,
		Priority:        r.Priority,
		IsActive:        r.IsActive,
	}
}

// ToListPostingRuleResponse converts a slice of domain.PostingRule.
func ToListPostingRuleResponse(rules []domain.PostingRule) []PostingRuleResponse {
	res := make([]PostingRuleResponse, len(rules))
	for i := range rules {
		res[i] = ToPostingRuleResponse(&rules[i])
	}
	return res
}
