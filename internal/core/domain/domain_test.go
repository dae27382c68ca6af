package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

func TestLedgerPolicy_Balanced(t *testing.T) {
	p := DefaultLedgerPolicy()
	assert.True(t, p.Balanced(d("100.00"), d("100.00")))
	assert.True(t, p.Balanced(d("100.00"), d("100.01")))
	assert.False(t, p.Balanced(d("100.00"), d("100.02")))
	assert.True(t, p.Balanced(d("99.99"), d("100.00")))
}

func TestDateWindow_Contains(t *testing.T) {
	w := DateWindow{From: day(2024, 1, 1), To: day(2024, 1, 31)}
	assert.True(t, w.Contains(day(2024, 1, 1)))
	assert.True(t, w.Contains(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, w.Contains(day(2024, 2, 1)))
	assert.False(t, w.Contains(time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC)))
}

func TestDateWindow_Chunks(t *testing.T) {
	w := DateWindow{From: day(2024, 1, 1), To: day(2024, 3, 15)}

	chunks := w.Chunks(31)
	require.Len(t, chunks, 3)
	assert.Equal(t, day(2024, 1, 1), chunks[0].From)
	assert.Equal(t, day(2024, 1, 31), chunks[0].To)
	assert.Equal(t, day(2024, 2, 1), chunks[1].From)
	assert.Equal(t, day(2024, 3, 2), chunks[1].To)
	assert.Equal(t, day(2024, 3, 3), chunks[2].From)
	assert.Equal(t, day(2024, 3, 15), chunks[2].To)

	single := DateWindow{From: day(2024, 5, 5), To: day(2024, 5, 5)}.Chunks(31)
	require.Len(t, single, 1)
	assert.Equal(t, day(2024, 5, 5), single[0].From)

	assert.Len(t, w.Chunks(0), 1)
}

func TestExchangeRate_Inverse(t *testing.T) {
	r := ExchangeRate{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: d("1.25")}
	inv := r.Inverse()
	assert.Equal(t, "USD", inv.FromCurrencyCode)
	assert.Equal(t, "EUR", inv.ToCurrencyCode)
	assert.True(t, d("0.8").Equal(inv.Rate))

	zero := ExchangeRate{FromCurrencyCode: "EUR", ToCurrencyCode: "USD"}.Inverse()
	assert.True(t, zero.Rate.IsZero())
}

func TestJournalLine_Sides(t *testing.T) {
	assert.True(t, JournalLine{Debit: d("10"), Credit: decimal.Zero}.HasExactlyOneSide())
	assert.True(t, JournalLine{Debit: decimal.Zero, Credit: d("10")}.HasExactlyOneSide())
	assert.False(t, JournalLine{Debit: d("10"), Credit: d("10")}.HasExactlyOneSide())
	assert.False(t, JournalLine{Debit: decimal.Zero, Credit: decimal.Zero}.HasExactlyOneSide())
	assert.False(t, JournalLine{Debit: d("-5"), Credit: d("10")}.HasExactlyOneSide())

	credit := JournalLine{Credit: d("7.50")}
	assert.False(t, credit.IsDebit())
	assert.True(t, d("7.50").Equal(credit.Amount()))
}

func TestJournalEntry_IsActive(t *testing.T) {
	original := "e1"
	assert.True(t, JournalEntry{Status: Posted}.IsActive())
	assert.False(t, JournalEntry{Status: Reversed}.IsActive())
	assert.False(t, JournalEntry{Status: Posted, ReversalOfEntryID: &original}.IsActive())
}

func TestDocumentTypeSpec_Supports(t *testing.T) {
	specs := DefaultDocumentTypes()
	require.NotEmpty(t, specs)

	var sales DocumentTypeSpec
	for _, s := range specs {
		if s.DocumentType == DocTypeSalesInvoice {
			sales = s
		}
	}
	assert.True(t, sales.Supports(AmountTotal))
	assert.True(t, sales.Supports(AmountTax))
	assert.False(t, sales.Supports(AmountPaid))
	assert.True(t, sales.Receivable)
}

func TestSourceDocument_Amount(t *testing.T) {
	doc := SourceDocument{Amounts: map[AmountField]decimal.Decimal{AmountTotal: d("110")}}
	v, ok := doc.Amount(AmountTotal)
	assert.True(t, ok)
	assert.True(t, d("110").Equal(v))

	_, ok = doc.Amount(AmountShipping)
	assert.False(t, ok)
}

func TestParty_ExceedsCreditLimit(t *testing.T) {
	assert.True(t, Party{Balance: d("501"), CreditLimit: d("500")}.ExceedsCreditLimit())
	assert.False(t, Party{Balance: d("500"), CreditLimit: d("500")}.ExceedsCreditLimit())
	assert.False(t, Party{Balance: d("99999"), CreditLimit: decimal.Zero}.ExceedsCreditLimit())
}

func TestPostingRule_Sides(t *testing.T) {
	debit := PostingRule{DebitAccountID: "ar"}
	assert.True(t, debit.IsDebit())
	assert.Equal(t, "ar", debit.AccountID())
	assert.True(t, debit.HasExactlyOneSide())

	credit := PostingRule{CreditAccountID: "rev"}
	assert.False(t, credit.IsDebit())
	assert.Equal(t, "rev", credit.AccountID())

	assert.False(t, PostingRule{DebitAccountID: "a", CreditAccountID: "b"}.HasExactlyOneSide())
	assert.False(t, PostingRule{}.HasExactlyOneSide())
}
