package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID           string          `db:"entry_id"`
	EntryNumber       string          `db:"entry_number"`
	EntryDate         time.Time       `db:"entry_date"`
	DocumentType      string          `db:"document_type"`
	DocumentID        string          `db:"document_id"`
	Description       string          `db:"description"`
	TotalDebit        decimal.Decimal `db:"total_debit"`
	TotalCredit       decimal.Decimal `db:"total_credit"`
	Status            string          `db:"status"`
	PostedBy          string          `db:"posted_by"`
	PostedAt          time.Time       `db:"posted_at"`
	ReversedBy        sql.NullString  `db:"reversed_by"`
	ReversedAt        sql.NullTime    `db:"reversed_at"`
	ReversalReason    sql.NullString  `db:"reversal_reason"`
	ReversalOfEntryID sql.NullString  `db:"reversal_of_entry_id"`
	ReversedByEntryID sql.NullString  `db:"reversed_by_entry_id"`
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	Debit        decimal.Decimal `db:"debit"`
	Credit       decimal.Decimal `db:"credit"`
	LineNumber   int             `db:"line_number"`
	CurrencyCode string          `db:"currency_code"`
	ExchangeRate decimal.Decimal `db:"exchange_rate"`
}
