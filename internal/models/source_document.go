package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// SourceDocument is a row of the source_documents table. Amount columns a
// document type does not use stay NULL.
type SourceDocument struct {
	DocumentType   string              `db:"document_type"`
	DocumentID     string              `db:"document_id"`
	DocumentNumber string              `db:"document_number"`
	DocumentDate   time.Time           `db:"document_date"`
	DueDate        sql.NullTime        `db:"due_date"`
	PartyID        sql.NullString      `db:"party_id"`
	CurrencyCode   string              `db:"currency_code"`
	ExchangeRate   decimal.NullDecimal `db:"exchange_rate"`
	Total          decimal.NullDecimal `db:"total_amount"`
	Subtotal       decimal.NullDecimal `db:"subtotal_amount"`
	Tax            decimal.NullDecimal `db:"tax_amount"`
	Discount       decimal.NullDecimal `db:"discount_amount"`
	Shipping       decimal.NullDecimal `db:"shipping_amount"`
	Paid           decimal.NullDecimal `db:"paid_amount"`
	Status         string              `db:"status"`
	Locked         bool                `db:"locked"`
	PostedBy       sql.NullString      `db:"posted_by"`
	PostedAt       sql.NullTime        `db:"posted_at"`
}
