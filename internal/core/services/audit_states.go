package services

import (
	"github.com/SscSPs/posting_engine/internal/core/domain"
)

// Entity tables as they appear in the audit trail.
const (
	tableJournalEntries = "journal_entries"
	tableDocuments      = "source_documents"
	tableAccounts       = "accounts"
	tableCurrencies     = "currencies"
	tableExchangeRates  = "exchange_rates"
	tablePostingRules   = "posting_rules"
)

func entryState(e domain.JournalEntry) map[string]any {
	lines := make([]map[string]any, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = map[string]any{
			"line_number":   l.LineNumber,
			"account_id":    l.AccountID,
			"debit":         l.Debit.String(),
			"credit":        l.Credit.String(),
			"currency_code": l.CurrencyCode,
			"exchange_rate": l.ExchangeRate.String(),
		}
	}
	state := map[string]any{
		"entry_number":  e.EntryNumber,
		"entry_date":    e.EntryDate.Format("2006-01-02"),
		"document_type": e.DocumentType,
		"document_id":   e.DocumentID,
		"total_debit":   e.TotalDebit.String(),
		"total_credit":  e.TotalCredit.String(),
		"status":        string(e.Status),
		"lines":         lines,
	}
	if e.ReversalOfEntryID != nil {
		state["reversal_of_entry_id"] = *e.ReversalOfEntryID
	}
	return state
}

func documentState(status domain.DocumentStatus, locked bool) map[string]any {
	return map[string]any{"status": string(status), "locked": locked}
}

func balanceState(balance string) map[string]any {
	return map[string]any{"balance": balance}
}

func ruleState(r domain.PostingRule) map[string]any {
	return map[string]any{
		"document_type":     r.DocumentType,
		"rule_name":         r.RuleName,
		"amount_field":      string(r.AmountField),
		"debit_account_id":  r.DebitAccountID,
		"credit_account_id": r.CreditAccountID,
		"priority":          r.Priority,
		"is_active":         r.IsActive,
	}
}
