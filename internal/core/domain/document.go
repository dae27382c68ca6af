package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Well-known document types.
const (
	DocTypeSalesInvoice       = "SALES_INVOICE"
	DocTypePurchaseInvoice    = "PURCHASE_INVOICE"
	DocTypeCustomerReceipt    = "CUSTOMER_RECEIPT"
	DocTypeSupplierPayment    = "SUPPLIER_PAYMENT"
	DocTypeCurrencyConversion = "CURRENCY_CONVERSION"
)

// DocumentStatus is the posting state of a source document.
type DocumentStatus string

const (
	DocumentDraft     DocumentStatus = "DRAFT"
	DocumentPosted    DocumentStatus = "POSTED"
	DocumentCancelled DocumentStatus = "CANCELLED"
)

// DocumentTypeSpec is the explicit adapter declaration for one document type:
// the amount fields it exposes and whether a party reference is mandatory.
type DocumentTypeSpec struct {
	DocumentType  string
	AmountFields  []AmountField
	RequiresParty bool
	Receivable    bool // counted by receivables aging
}

// Supports reports whether the document type exposes the given amount field.
func (s DocumentTypeSpec) Supports(field AmountField) bool {
	for _, f := range s.AmountFields {
		if f == field {
			return true
		}
	}
	return false
}

// DefaultDocumentTypes are the document types the engine knows how to read.
func DefaultDocumentTypes() []DocumentTypeSpec {
	return []DocumentTypeSpec{
		{
			DocumentType:  DocTypeSalesInvoice,
			AmountFields:  []AmountField{AmountTotal, AmountSubtotal, AmountTax, AmountDiscount, AmountShipping},
			RequiresParty: true,
			Receivable:    true,
		},
		{
			DocumentType:  DocTypePurchaseInvoice,
			AmountFields:  []AmountField{AmountTotal, AmountSubtotal, AmountTax, AmountDiscount, AmountShipping},
			RequiresParty: true,
		},
		{
			DocumentType:  DocTypeCustomerReceipt,
			AmountFields:  []AmountField{AmountTotal, AmountPaid, AmountDiscount},
			RequiresParty: true,
		},
		{
			DocumentType:  DocTypeSupplierPayment,
			AmountFields:  []AmountField{AmountTotal, AmountPaid, AmountDiscount},
			RequiresParty: true,
		},
	}
}

// SourceDocument is the read-only view of a business document that the
// poster turns into a journal entry.
type SourceDocument struct {
	DocumentType   string                          `json:"documentType"`
	DocumentID     string                          `json:"documentID"`
	DocumentNumber string                          `json:"documentNumber"`
	DocumentDate   time.Time                       `json:"documentDate"`
	DueDate        *time.Time                      `json:"dueDate,omitempty"`
	PartyID        string                          `json:"partyID,omitempty"`
	CurrencyCode   string                          `json:"currencyCode"`
	ExchangeRate   decimal.Decimal                 `json:"exchangeRate"` // to base currency, zero when unknown
	Amounts        map[AmountField]decimal.Decimal `json:"amounts"`
	Status         DocumentStatus                  `json:"status"`
	Locked         bool                            `json:"locked"`
	PostedBy       string                          `json:"postedBy,omitempty"`
	PostedAt       *time.Time                      `json:"postedAt,omitempty"`
}

// Amount returns the value of a field and whether the document carries it.
func (d SourceDocument) Amount(field AmountField) (decimal.Decimal, bool) {
	v, ok := d.Amounts[field]
	return v, ok
}
