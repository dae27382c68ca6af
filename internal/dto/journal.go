package dto

import (
	"time"

	"github.com/SscSPs/posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineNumber   int             `json:"lineNumber"`
	AccountID    string          `json:"accountID"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID           string                `json:"entryID"`
	EntryNumber       string                `json:"entryNumber"`
	EntryDate         time.Time             `json:"entryDate"`
	DocumentType      string                `json:"documentType"`
	DocumentID        string                `json:"documentID"`
	Description       string                `json:"description"`
	TotalDebit        decimal.Decimal       `json:"totalDebit"`
	TotalCredit       decimal.Decimal       `json:"totalCredit"`
	Status            string                `json:"status"`
	PostedBy          string                `json:"postedBy"`
	PostedAt          time.Time             `json:"postedAt"`
	ReversedBy        *string               `json:"reversedBy,omitempty"`
	ReversedAt        *time.Time            `json:"reversedAt,omitempty"`
	ReversalReason    *string               `json:"reversalReason,omitempty"`
	ReversalOfEntryID *string               `json:"reversalOfEntryID,omitempty"`
	ReversedByEntryID *string               `json:"reversedByEntryID,omitempty"`
	Lines             []JournalLineResponse `json:"lines"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineNumber:   l.LineNumber,
			AccountID:    l.AccountID,
			Debit:        l.Debit,
			Credit:       l.Credit,
			CurrencyCode: l.CurrencyCode,
			ExchangeRate: l.ExchangeRate,
		}
	}
	return JournalEntryResponse{
		EntryID:           e.EntryID,
		EntryNumber:       e.EntryNumber,
		EntryDate:         e.EntryDate,
		DocumentType:      e.DocumentType,
		DocumentID:        e.DocumentID,
		Description:       e.Description,
		TotalDebit:        e.TotalDebit,
		TotalCredit:       e.TotalCredit,
		Status:            string(e.Status),
		PostedBy:          e.PostedBy,
		PostedAt:          e.PostedAt,
		ReversedBy:        e.ReversedBy,
		ReversedAt:        e.ReversedAt,
		ReversalReason:    e.ReversalReason,
		ReversalOfEntryID: e.ReversalOfEntryID,
		ReversedByEntryID: e.ReversedByEntryID,
		Lines:             lines,
	}
}
