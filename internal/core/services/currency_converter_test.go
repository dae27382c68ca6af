package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	"github.com/SscSPs/posting_engine/internal/core/services"
	"github.com/SscSPs/posting_engine/internal/dto"
)

type CurrencyConverterTestSuite struct {
	suite.Suite
	ctx context.Context
	f   *ledgerFixture
}

func (suite *CurrencyConverterTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.f = newLedgerFixture()
}

func (suite *CurrencyConverterTestSuite) addRate(from, to, rate string) {
	_, err := suite.f.svc.Currency.CreateExchangeRate(suite.ctx, dto.CreateExchangeRateRequest{
		FromCurrencyCode: from, ToCurrencyCode: to, Rate: d(rate), DateEffective: date(2024, 6, 1),
	}, actor)
	suite.Require().NoError(err)
}

func (suite *CurrencyConverterTestSuite) TestGetRate_SameCurrency() {
	rate, err := suite.f.svc.Currency.GetRate(suite.ctx, "EUR", "eur", date(2024, 6, 10))
	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
}

func (suite *CurrencyConverterTestSuite) TestGetRate_Direct() {
	suite.addRate("EUR", "USD", "1.10")

	rate, err := suite.f.svc.Currency.GetRate(suite.ctx, "EUR", "USD", date(2024, 6, 10))
	suite.Require().NoError(err)
	suite.True(rate.Equal(d("1.10")))
}

func (suite *CurrencyConverterTestSuite) TestGetRate_NotYetEffective() {
	suite.addRate("EUR", "USD", "1.10")

	_, err := suite.f.svc.Currency.GetRate(suite.ctx, "EUR", "USD", date(2024, 5, 31))
	suite.ErrorIs(err, apperrors.ErrNoExchangeRate)
}

func (suite *CurrencyConverterTestSuite) TestGetRate_Triangulation() {
	r1, r2 := d("1.10"), d("1.27")
	suite.addRate("EUR", "USD", r1.String())
	suite.addRate("GBP", "USD", r2.String())

	rate, err := suite.f.svc.Currency.GetRate(suite.ctx, "EUR", "GBP", date(2024, 6, 10))
	suite.Require().NoError(err)

	expected := r1.DivRound(r2, 12)
	suite.True(rate.Sub(expected).Abs().LessThan(d("0.000001")), "got %s want %s", rate, expected)
}

func (suite *CurrencyConverterTestSuite) TestGetRate_NeverFallsBackToOne() {
	_, err := suite.f.svc.Currency.GetRate(suite.ctx, "EUR", "GBP", date(2024, 6, 10))

	var noRate *apperrors.NoExchangeRateError
	suite.Require().ErrorAs(err, &noRate)
	suite.Equal("EUR", noRate.From)
	suite.Equal("GBP", noRate.To)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CurrencyConverterTestSuite) TestConvert_RoundTrip() {
	suite.addRate("EUR", "USD", "1.25")
	suite.addRate("USD", "EUR", "0.8")
	asOf := date(2024, 6, 10)

	for _, amount := range []string{"0.01", "1.00", "19.99", "123456.78"} {
		x := d(amount)
		there, err := suite.f.svc.Currency.Convert(suite.ctx, x, "EUR", "USD", asOf)
		suite.Require().NoError(err)
		back, err := suite.f.svc.Currency.Convert(suite.ctx, there, "USD", "EUR", asOf)
		suite.Require().NoError(err)
		suite.True(back.Sub(x).Abs().LessThanOrEqual(d("0.01")), "%s -> %s -> %s", x, there, back)
	}
}

func (suite *CurrencyConverterTestSuite) TestConvert_RoundsToTargetPlaces() {
	suite.addRate("USD", "JPY", "157.123")

	out, err := suite.f.svc.Currency.Convert(suite.ctx, d("10.55"), "USD", "JPY", date(2024, 6, 10))
	suite.Require().NoError(err)
	suite.Equal("1658", out.String())
}

func (suite *CurrencyConverterTestSuite) TestCreateConversionEntry_BooksFXResidual() {
	suite.addRate("EUR", "USD", "1.10")

	entry, err := suite.f.svc.Currency.CreateConversionEntry(suite.ctx, dto.ConversionRequest{
		FromAccountID: acctEURBank, ToAccountID: acctCash, Amount: d("100"),
		FromCurrencyCode: "EUR", ToCurrencyCode: "USD", AsOf: date(2024, 6, 10),
	}, actor)
	suite.Require().NoError(err)

	suite.Equal(domain.DocTypeCurrencyConversion, entry.DocumentType)
	suite.Equal("FX-2024-000001", entry.EntryNumber)
	suite.Require().Len(entry.Lines, 3)
	suite.Equal(acctCash, entry.Lines[0].AccountID)
	suite.True(entry.Lines[0].Debit.Equal(d("110")))
	suite.Equal(acctEURBank, entry.Lines[1].AccountID)
	suite.True(entry.Lines[1].Credit.Equal(d("100")))
	suite.Equal(acctFX, entry.Lines[2].AccountID)
	suite.True(entry.Lines[2].Credit.Equal(d("10")))
	suite.Equal("USD", entry.Lines[2].CurrencyCode)
	suite.True(entry.TotalDebit.Equal(entry.TotalCredit))

	suite.True(suite.f.balance(acctCash).Equal(d("110")))
	suite.True(suite.f.balance(acctEURBank).Equal(d("-100")))
}

func (suite *CurrencyConverterTestSuite) TestCreateConversionEntry_NoFXAccountConfigured() {
	suite.addRate("EUR", "USD", "1.10")
	cfg := testConfig()
	cfg.Ledger.FXGainLossAccountID = ""
	svc := services.NewServiceContainer(cfg, suite.f.store.Provider())

	_, err := svc.Currency.CreateConversionEntry(suite.ctx, dto.ConversionRequest{
		FromAccountID: acctEURBank, ToAccountID: acctCash, Amount: d("100"),
		FromCurrencyCode: "EUR", ToCurrencyCode: "USD", AsOf: date(2024, 6, 10),
	}, actor)
	suite.ErrorIs(err, apperrors.ErrInvalidAccount)
	suite.Empty(suite.f.store.Entries())
}

func (suite *CurrencyConverterTestSuite) TestCreateConversionEntry_Invalid() {
	cases := map[string]dto.ConversionRequest{
		"zero amount":  {FromAccountID: acctEURBank, ToAccountID: acctCash, Amount: d("0"), FromCurrencyCode: "EUR", ToCurrencyCode: "USD"},
		"same account": {FromAccountID: acctCash, ToAccountID: acctCash, Amount: d("5"), FromCurrencyCode: "EUR", ToCurrencyCode: "USD"},
	}
	for name, req := range cases {
		suite.Run(name, func() {
			_, err := suite.f.svc.Currency.CreateConversionEntry(suite.ctx, req, actor)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (suite *CurrencyConverterTestSuite) TestCreateConversionEntry_InactiveAccount() {
	suite.addRate("EUR", "USD", "1.10")

	_, err := suite.f.svc.Currency.CreateConversionEntry(suite.ctx, dto.ConversionRequest{
		FromAccountID: acctEURBank, ToAccountID: acctClosed, Amount: d("100"),
		FromCurrencyCode: "EUR", ToCurrencyCode: "USD", AsOf: date(2024, 6, 10),
	}, actor)
	suite.ErrorIs(err, apperrors.ErrInvalidAccount)
	suite.Empty(suite.f.store.Entries())
}

func (suite *CurrencyConverterTestSuite) TestCreateConversionEntry_RoundsToNothing() {
	suite.f.store.PutAccount(domain.Account{AccountID: "1020-jpy-bank", Code: "1020", Name: "JPY Bank", AccountType: domain.Asset, Nature: domain.DebitNature, CurrencyCode: "JPY", Level: 1, IsActive: true})
	suite.addRate("USD", "JPY", "100")

	_, err := suite.f.svc.Currency.CreateConversionEntry(suite.ctx, dto.ConversionRequest{
		FromAccountID: acctCash, ToAccountID: "1020-jpy-bank", Amount: d("0.004"),
		FromCurrencyCode: "USD", ToCurrencyCode: "JPY", AsOf: date(2024, 6, 10),
	}, actor)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.Empty(suite.f.store.Entries())
	suite.True(suite.f.balance(acctCash).IsZero())
}

func (suite *CurrencyConverterTestSuite) TestCreateConversionEntry_AccountCurrencyMismatch() {
	suite.addRate("EUR", "USD", "1.10")
	suite.addRate("USD", "JPY", "100")

	cases := map[string]dto.ConversionRequest{
		"source in another currency": {FromAccountID: acctEURBank, ToAccountID: acctCash, Amount: d("10"), FromCurrencyCode: "USD", ToCurrencyCode: "JPY", AsOf: date(2024, 6, 10)},
		"target in another currency": {FromAccountID: acctEURBank, ToAccountID: acctReceivable, Amount: d("10"), FromCurrencyCode: "EUR", ToCurrencyCode: "JPY", AsOf: date(2024, 6, 10)},
	}
	for name, req := range cases {
		suite.Run(name, func() {
			_, err := suite.f.svc.Currency.CreateConversionEntry(suite.ctx, req, actor)
			suite.ErrorIs(err, apperrors.ErrInvalidAccount)
		})
	}
	suite.Empty(suite.f.store.Entries())
	suite.True(suite.f.balance(acctEURBank).IsZero())
}

func TestCurrencyConverter(t *testing.T) {
	suite.Run(t, new(CurrencyConverterTestSuite))
}
