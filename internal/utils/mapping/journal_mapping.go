package mapping

import (
	"github.com/SscSPs/posting_engine/internal/core/domain"
	"github.com/SscSPs/posting_engine/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry.
// Lines are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		EntryNumber:       d.EntryNumber,
		EntryDate:         domain.TruncateDay(d.EntryDate),
		DocumentType:      d.DocumentType,
		DocumentID:        d.DocumentID,
		Description:       d.Description,
		TotalDebit:        d.TotalDebit,
		TotalCredit:       d.TotalCredit,
		Status:            string(d.Status),
		PostedBy:          d.PostedBy,
		PostedAt:          d.PostedAt,
		ReversedBy:        nullStringPtr(d.ReversedBy),
		ReversedAt:        nullTimePtr(d.ReversedAt),
		ReversalReason:    nullStringPtr(d.ReversalReason),
		ReversalOfEntryID: nullStringPtr(d.ReversalOfEntryID),
		ReversedByEntryID: nullStringPtr(d.ReversedByEntryID),
	}
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:           m.EntryID,
		EntryNumber:       m.EntryNumber,
		EntryDate:         domain.TruncateDay(m.EntryDate),
		DocumentType:      m.DocumentType,
		DocumentID:        m.DocumentID,
		Description:       m.Description,
		TotalDebit:        m.TotalDebit,
		TotalCredit:       m.TotalCredit,
		Status:            domain.JournalStatus(m.Status),
		PostedBy:          m.PostedBy,
		PostedAt:          m.PostedAt,
		ReversedBy:        stringPtr(m.ReversedBy),
		ReversedAt:        timePtr(m.ReversedAt),
		ReversalReason:    stringPtr(m.ReversalReason),
		ReversalOfEntryID: stringPtr(m.ReversalOfEntryID),
		ReversedByEntryID: stringPtr(m.ReversedByEntryID),
	}
	if len(lines) > 0 {
		d.Lines = make([]domain.JournalLine, len(lines))
		for i, l := range lines {
			d.Lines[i] = ToDomainJournalLine(l)
		}
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		Debit:        d.Debit,
		Credit:       d.Credit,
		LineNumber:   d.LineNumber,
		CurrencyCode: d.CurrencyCode,
		ExchangeRate: d.ExchangeRate,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		Debit:        m.Debit,
		Credit:       m.Credit,
		LineNumber:   m.LineNumber,
		CurrencyCode: m.CurrencyCode,
		ExchangeRate: m.ExchangeRate,
	}
}
