package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// JournalEntry is a balanced set of lines recording one business event.
type JournalEntry struct {
	EntryID           string          `json:"entryID"`
	EntryNumber       string          `json:"entryNumber"`
	EntryDate         time.Time       `json:"entryDate"`
	DocumentType      string          `json:"documentType"`
	DocumentID        string          `json:"documentID"`
	Description       string          `json:"description"`
	TotalDebit        decimal.Decimal `json:"totalDebit"`
	TotalCredit       decimal.Decimal `json:"totalCredit"`
	Status            JournalStatus   `json:"status"`
	PostedBy          string          `json:"postedBy"`
	PostedAt          time.Time       `json:"postedAt"`
	ReversedBy        *string         `json:"reversedBy,omitempty"`
	ReversedAt        *time.Time      `json:"reversedAt,omitempty"`
	ReversalReason    *string         `json:"reversalReason,omitempty"`
	ReversalOfEntryID *string         `json:"reversalOfEntryID,omitempty"` // set on reversal entries
	ReversedByEntryID *string         `json:"reversedByEntryID,omitempty"` // set on reversed originals
	Lines             []JournalLine   `json:"lines,omitempty"`
}

// IsReversal reports whether the entry negates another entry.
func (e JournalEntry) IsReversal() bool { return e.ReversalOfEntryID != nil }

// IsActive reports whether the entry counts as the document's live posting.
func (e JournalEntry) IsActive() bool { return e.Status == Posted && !e.IsReversal() }

// JournalLine is a single debit or credit against one account.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	LineNumber   int             `json:"lineNumber"`
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// IsDebit reports whether the line is on the debit side.
func (l JournalLine) IsDebit() bool { return l.Debit.IsPositive() }

// Amount returns the non-zero side of the line.
func (l JournalLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// HasExactlyOneSide reports whether exactly one of debit/credit is positive
// and neither is negative.
func (l JournalLine) HasExactlyOneSide() bool {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return false
	}
	return l.Debit.IsPositive() != l.Credit.IsPositive()
}
