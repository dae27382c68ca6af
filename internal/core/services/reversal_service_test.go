package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	"github.com/SscSPs/posting_engine/internal/dto"
)

type ReversalServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	f   *ledgerFixture
}

func (suite *ReversalServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.f = newLedgerFixture()
	suite.f.registerInvoiceRules(suite.ctx)
	suite.f.store.PutDocument(invoice("inv-1", "110", "100", "10"))
}

func (suite *ReversalServiceTestSuite) post() string {
	entryID, err := suite.f.svc.Poster.Post(suite.ctx, domain.DocTypeSalesInvoice, "inv-1", actor)
	suite.Require().NoError(err)
	return entryID
}

func (suite *ReversalServiceTestSuite) TestReverse_InverseLaw() {
	before := suite.f.balances()
	originalID := suite.post()

	reversalID, err := suite.f.svc.Reversal.Reverse(suite.ctx, domain.DocTypeSalesInvoice, "inv-1", actor, "wrong customer")
	suite.Require().NoError(err)

	original, err := suite.f.svc.Poster.GetEntry(suite.ctx, originalID)
	suite.Require().NoError(err)
	reversal, err := suite.f.svc.Poster.GetEntry(suite.ctx, reversalID)
	suite.Require().NoError(err)

	debits := func(e *domain.JournalEntry) (map[string]decimal.Decimal, map[string]decimal.Decimal) {
		dr, cr := map[string]decimal.Decimal{}, map[string]decimal.Decimal{}
		for _, l := range e.Lines {
			dr[l.AccountID] = dr[l.AccountID].Add(l.Debit)
			cr[l.AccountID] = cr[l.AccountID].Add(l.Credit)
		}
		return dr, cr
	}
	origDr, origCr := debits(original)
	revDr, revCr := debits(reversal)
	suite.Require().Len(revDr, len(origDr))
	for acct := range origDr {
		suite.True(revDr[acct].Equal(origCr[acct]), "debit of %s", acct)
		suite.True(revCr[acct].Equal(origDr[acct]), "credit of %s", acct)
	}

	for acct, bal := range suite.f.balances() {
		suite.True(bal.Equal(before[acct]), "balance of %s is %s", acct, bal)
	}

	suite.Equal(domain.Reversed, original.Status)
	suite.Require().NotNil(original.ReversedByEntryID)
	suite.Equal(reversalID, *original.ReversedByEntryID)
	suite.Require().NotNil(original.ReversalReason)
	suite.Equal("wrong customer", *original.ReversalReason)

	suite.True(reversal.IsReversal())
	suite.Equal(originalID, *reversal.ReversalOfEntryID)
	suite.Equal(fmt.Sprintf("RV-%04d-000001", time.Now().UTC().Year()), reversal.EntryNumber)
	suite.True(reversal.TotalDebit.Equal(original.TotalCredit))

	doc, _ := suite.f.store.Document(domain.DocTypeSalesInvoice, "inv-1")
	suite.Equal(domain.DocumentDraft, doc.Status)
	suite.False(doc.Locked)

	var cancels int
	for _, r := range suite.f.auditRecords("journal_entries") {
		if r.Action == domain.ActionCancel {
			cancels++
			suite.Equal(domain.AuditHigh, r.Severity)
			suite.Equal(originalID, r.EntityID)
		}
	}
	suite.Equal(1, cancels)
}

func (suite *ReversalServiceTestSuite) TestReverse_ThenRepost() {
	suite.post()
	_, err := suite.f.svc.Reversal.Reverse(suite.ctx, domain.DocTypeSalesInvoice, "inv-1", actor, "fix")
	suite.Require().NoError(err)

	entryID := suite.post()
	entry, _ := suite.f.svc.Poster.GetEntry(suite.ctx, entryID)
	suite.Equal("JV-2024-000002", entry.EntryNumber)
	suite.True(suite.f.balance(acctReceivable).Equal(d("110")))
}

func (suite *ReversalServiceTestSuite) TestReverse_NothingToReverse() {
	_, err := suite.f.svc.Reversal.Reverse(suite.ctx, domain.DocTypeSalesInvoice, "inv-1", actor, "fix")
	suite.ErrorIs(err, apperrors.ErrNothingToReverse)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ReversalServiceTestSuite) TestReverse_Twice() {
	suite.post()
	_, err := suite.f.svc.Reversal.Reverse(suite.ctx, domain.DocTypeSalesInvoice, "inv-1", actor, "fix")
	suite.Require().NoError(err)

	_, err = suite.f.svc.Reversal.Reverse(suite.ctx, domain.DocTypeSalesInvoice, "inv-1", actor, "again")
	suite.ErrorIs(err, apperrors.ErrNothingToReverse)
	suite.Len(suite.f.store.Entries(), 2)
}

func (suite *ReversalServiceTestSuite) TestReverse_ReasonRequired() {
	suite.post()
	_, err := suite.f.svc.Reversal.Reverse(suite.ctx, domain.DocTypeSalesInvoice, "inv-1", actor, "   ")
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Len(suite.f.store.Entries(), 1)
}

func (suite *ReversalServiceTestSuite) TestReverse_DocumentNotFound() {
	_, err := suite.f.svc.Reversal.Reverse(suite.ctx, domain.DocTypeSalesInvoice, "missing", actor, "fix")
	suite.ErrorIs(err, apperrors.ErrDocumentNotFound)
}

func (suite *ReversalServiceTestSuite) TestReverse_InactiveAccountStillReversible() {
	suite.post()
	acct, _ := suite.f.store.Account(acctTax)
	acct.IsActive = false
	suite.f.store.PutAccount(acct)

	_, err := suite.f.svc.Reversal.Reverse(suite.ctx, domain.DocTypeSalesInvoice, "inv-1", actor, "close tax account")
	suite.Require().NoError(err)
	suite.True(suite.f.balance(acctTax).IsZero())
}

func (suite *ReversalServiceTestSuite) TestReverse_ConversionEntry() {
	_, err := suite.f.svc.Currency.CreateExchangeRate(suite.ctx, dto.CreateExchangeRateRequest{
		FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: d("1.10"), DateEffective: date(2024, 6, 1),
	}, actor)
	suite.Require().NoError(err)

	entry, err := suite.f.svc.Currency.CreateConversionEntry(suite.ctx, dto.ConversionRequest{
		FromAccountID: acctEURBank, ToAccountID: acctCash, Amount: d("100"),
		FromCurrencyCode: "EUR", ToCurrencyCode: "USD", AsOf: date(2024, 6, 10),
	}, actor)
	suite.Require().NoError(err)

	_, err = suite.f.svc.Reversal.Reverse(suite.ctx, domain.DocTypeCurrencyConversion, entry.DocumentID, actor, "booked twice")
	suite.Require().NoError(err)
	for acct, bal := range suite.f.balances() {
		suite.True(bal.IsZero(), "balance of %s is %s", acct, bal)
	}
}

func TestReversalService(t *testing.T) {
	suite.Run(t, new(ReversalServiceTestSuite))
}
