package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FindingSeverity classifies what kind of defect a finding points at.
type FindingSeverity string

const (
	SeverityData  FindingSeverity = "DATA"  // bad or incomplete rows
	SeverityLogic FindingSeverity = "LOGIC" // a business invariant is broken
	SeverityCode  FindingSeverity = "CODE"  // the software or its deployment is defective
)

// AuditCategory names one check of the ledger auditor.
type AuditCategory string

const (
	CategoryEntryBalance      AuditCategory = "ENTRY_BALANCE"
	CategoryTrialBalance      AuditCategory = "TRIAL_BALANCE"
	CategoryOrphanDocuments   AuditCategory = "ORPHAN_DOCUMENTS"
	CategoryMissingReferences AuditCategory = "MISSING_REFERENCES"
	CategoryInactiveAccounts  AuditCategory = "INACTIVE_ACCOUNT_BALANCE"
	CategoryFixedAssets       AuditCategory = "FIXED_ASSETS"
	CategoryCreditLimits      AuditCategory = "CREDIT_LIMITS"
	CategoryReceivablesAging  AuditCategory = "RECEIVABLES_AGING"
	CategoryExchangeRates     AuditCategory = "EXCHANGE_RATES"
	CategoryAuditTrail        AuditCategory = "AUDIT_TRAIL"
	CategoryAccountHierarchy  AuditCategory = "ACCOUNT_HIERARCHY"
)

// AuditFinding is one reproducible defect found by the auditor.
type AuditFinding struct {
	FindingID   string          `json:"findingID"`
	Category    AuditCategory   `json:"category"`
	Severity    FindingSeverity `json:"severity"`
	ProbeRef    string          `json:"probeRef"`
	Description string          `json:"description"`
	Remediation string          `json:"remediation"`
}

// AuditReport is the result of one auditor run.
type AuditReport struct {
	Window           DateWindow      `json:"window"`
	TotalChecks      int             `json:"totalChecks"`
	PassedCategories []AuditCategory `json:"passedCategories"`
	FailedCategories []AuditCategory `json:"failedCategories"`
	Findings         []AuditFinding  `json:"findings"`
	SummaryCounts    map[string]int  `json:"summaryCounts"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}

// EntryTotals compares an entry's header totals with the sums of its lines.
type EntryTotals struct {
	EntryID      string
	EntryNumber  string
	HeaderDebit  decimal.Decimal
	HeaderCredit decimal.Decimal
	LineDebit    decimal.Decimal
	LineCredit   decimal.Decimal
	LineCount    int
}

// TrialBalanceTotals aggregates all debit and credit postings in a window.
type TrialBalanceTotals struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	LineCount   int
}

// DocumentRef identifies a source document.
type DocumentRef struct {
	DocumentType   string
	DocumentID     string
	DocumentNumber string
}

// MissingReference is a row whose required foreign key is empty or dangling.
type MissingReference struct {
	Table    string
	RecordID string
	Column   string
	Value    string // the dangling value, empty when the column is not populated
}

// ExchangeRateDefect is a journal line in a non-base currency without a positive rate.
type ExchangeRateDefect struct {
	EntryID      string
	EntryNumber  string
	LineNumber   int
	CurrencyCode string
	ExchangeRate decimal.Decimal
}
