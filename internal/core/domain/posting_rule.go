package domain

// AmountField names a monetary field of a source document. Each document
// type declares which fields it exposes through its DocumentTypeSpec, so a
// rule's field is checked when the rule is registered rather than looked up
// by name at posting time.
type AmountField string

const (
	AmountTotal    AmountField = "TOTAL"
	AmountSubtotal AmountField = "SUBTOTAL"
	AmountTax      AmountField = "TAX"
	AmountDiscount AmountField = "DISCOUNT"
	AmountShipping AmountField = "SHIPPING"
	AmountPaid     AmountField = "PAID"
)

// PostingRule maps one amount of a document type to one side of one account.
type PostingRule struct {
	RuleID          string      `json:"ruleID"`
	DocumentType    string      `json:"documentType"`
	RuleName        string      `json:"ruleName"`
	AmountField     AmountField `json:"amountField"`
	DebitAccountID  string      `json:"debitAccountID,omitempty"`
	CreditAccountID string      `json:"creditAccountID,omitempty"`
	Priority        int         `json:"priority"`
	IsActive        bool        `json:"isActive"`
	AuditFields
}

// IsDebit reports whether the rule emits a debit line.
func (r PostingRule) IsDebit() bool { return r.DebitAccountID != "" }

// AccountID returns whichever account the rule posts to.
func (r PostingRule) AccountID() string {
	if r.DebitAccountID != "" {
		return r.DebitAccountID
	}
	return r.CreditAccountID
}

// HasExactlyOneSide reports whether exactly one of debit/credit account is set.
func (r PostingRule) HasExactlyOneSide() bool {
	return (r.DebitAccountID == "") != (r.CreditAccountID == "")
}
