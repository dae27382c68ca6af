package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostDocumentRequest asks the poster to turn a source document into a journal entry.
type PostDocumentRequest struct {
	DocumentType string `json:"documentType" binding:"required"`
	DocumentID   string `json:"documentID" binding:"required"`
}

// ReverseDocumentRequest asks for the active entry of a document to be reversed.
type ReverseDocumentRequest struct {
	DocumentType string `json:"documentType" binding:"required"`
	DocumentID   string `json:"documentID" binding:"required"`
	Reason       string `json:"reason" binding:"required,max=500"`
}

// ConversionRequest moves an amount between two accounts held in different currencies.
type ConversionRequest struct {
	FromAccountID    string          `json:"fromAccountID" binding:"required"`
	ToAccountID      string          `json:"toAccountID" binding:"required,nefield=FromAccountID"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3,uppercase"`
	AsOf             time.Time       `json:"asOf" binding:"required"`
}

// EntryCreatedResponse is returned when a journal entry has been written.
type EntryCreatedResponse struct {
	EntryID string `json:"entryID"`
}
