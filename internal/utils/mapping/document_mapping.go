package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/posting_engine/internal/core/domain"
	"github.com/SscSPs/posting_engine/internal/models"
)

// amountSlots pairs every amount field with its column holder on the row.
func amountSlots(m *models.SourceDocument) map[domain.AmountField]*decimal.NullDecimal {
	return map[domain.AmountField]*decimal.NullDecimal{
		domain.AmountTotal:    &m.Total,
		domain.AmountSubtotal: &m.Subtotal,
		domain.AmountTax:      &m.Tax,
		domain.AmountDiscount: &m.Discount,
		domain.AmountShipping: &m.Shipping,
		domain.AmountPaid:     &m.Paid,
	}
}

// ToModelSourceDocument converts a domain SourceDocument to a model SourceDocument.
// Amounts the document does not carry are stored as NULL.
func ToModelSourceDocument(d domain.SourceDocument) models.SourceDocument {
	m := models.SourceDocument{
		DocumentType:   d.DocumentType,
		DocumentID:     d.DocumentID,
		DocumentNumber: d.DocumentNumber,
		DocumentDate:   domain.TruncateDay(d.DocumentDate),
		DueDate:        nullTimePtr(d.DueDate),
		PartyID:        nullString(d.PartyID),
		CurrencyCode:   d.CurrencyCode,
		ExchangeRate:   decimal.NullDecimal{Decimal: d.ExchangeRate, Valid: !d.ExchangeRate.IsZero()},
		Status:         string(d.Status),
		Locked:         d.Locked,
		PostedBy:       nullString(d.PostedBy),
		PostedAt:       nullTimePtr(d.PostedAt),
	}
	for field, slot := range amountSlots(&m) {
		if v, ok := d.Amounts[field]; ok {
			*slot = decimal.NullDecimal{Decimal: v, Valid: true}
		}
	}
	return m
}

// ToDomainSourceDocument converts a model SourceDocument to a domain SourceDocument
func ToDomainSourceDocument(m models.SourceDocument) domain.SourceDocument {
	d := domain.SourceDocument{
		DocumentType:   m.DocumentType,
		DocumentID:     m.DocumentID,
		DocumentNumber: m.DocumentNumber,
		DocumentDate:   domain.TruncateDay(m.DocumentDate),
		DueDate:        timePtr(m.DueDate),
		PartyID:        m.PartyID.String,
		CurrencyCode:   m.CurrencyCode,
		Status:         domain.DocumentStatus(m.Status),
		Locked:         m.Locked,
		PostedBy:       m.PostedBy.String,
		PostedAt:       timePtr(m.PostedAt),
		Amounts:        make(map[domain.AmountField]decimal.Decimal),
	}
	if m.ExchangeRate.Valid {
		d.ExchangeRate = m.ExchangeRate.Decimal
	}
	for field, slot := range amountSlots(&m) {
		if slot.Valid {
			d.Amounts[field] = slot.Decimal
		}
	}
	return d
}
