package models

import "database/sql"

// PostingRule is a row of the posting_rules table.
type PostingRule struct {
	RuleID          string         `db:"rule_id"`
	DocumentType    string         `db:"document_type"`
	RuleName        string         `db:"rule_name"`
	AmountField     string         `db:"amount_field"`
	DebitAccountID  sql.NullString `db:"debit_account_id"`
	CreditAccountID sql.NullString `db:"credit_account_id"`
	Priority        int            `db:"priority"`
	IsActive        bool           `db:"is_active"`
	AuditFields
}
