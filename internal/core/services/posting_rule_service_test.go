package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/core/services"
	"github.com/SscSPs/posting_engine/internal/dto"
)

type PostingRuleServiceTestSuite struct {
	suite.Suite
	mockRuleRepo    *MockPostingRuleRepository
	mockAccountRepo *MockAccountReader
	mockRecorder    *MockAuditTrailRecorder
	service         portssvc.PostingRuleSvcFacade
}

func (suite *PostingRuleServiceTestSuite) SetupTest() {
	suite.mockRuleRepo = new(MockPostingRuleRepository)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.mockRecorder = new(MockAuditTrailRecorder)
	suite.service = services.NewPostingRuleService(suite.mockRuleRepo, suite.mockAccountRepo, suite.mockRecorder, domain.DefaultDocumentTypes())
}

func validRuleRequest() dto.RegisterPostingRuleRequest {
	return dto.RegisterPostingRuleRequest{
		DocumentType:   domain.DocTypeSalesInvoice,
		RuleName:       "receivable",
		AmountField:    domain.AmountTotal,
		DebitAccountID: acctReceivable,
		Priority:       1,
	}
}

func (suite *PostingRuleServiceTestSuite) TestRegisterRule_Success() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, acctReceivable).Return(&domain.Account{AccountID: acctReceivable, IsActive: true}, nil).Once()
	suite.mockRuleRepo.On("SaveRule", ctx, mock.MatchedBy(func(r domain.PostingRule) bool {
		return r.RuleID != "" && r.IsActive && r.DebitAccountID == acctReceivable && r.CreatedBy == actor
	})).Return(nil).Once()
	suite.mockRecorder.On("Record", ctx, mock.MatchedBy(func(e domain.AuditLogInput) bool {
		return e.EntityTable == "posting_rules" && e.Action == domain.ActionCreate
	})).Once()

	rule, err := suite.service.RegisterRule(ctx, validRuleRequest(), actor)

	suite.Require().NoError(err)
	suite.True(rule.IsDebit())
	suite.Equal(acctReceivable, rule.AccountID())
	suite.mockRuleRepo.AssertExpectations(suite.T())
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *PostingRuleServiceTestSuite) TestRegisterRule_BothSides() {
	req := validRuleRequest()
	req.CreditAccountID = acctRevenue

	_, err := suite.service.RegisterRule(context.Background(), req, actor)

	suite.ErrorIs(err, apperrors.ErrInvalidRule)
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "SaveRule", mock.Anything, mock.Anything)
}

func (suite *PostingRuleServiceTestSuite) TestRegisterRule_NoSide() {
	req := validRuleRequest()
	req.DebitAccountID = ""

	_, err := suite.service.RegisterRule(context.Background(), req, actor)

	suite.ErrorIs(err, apperrors.ErrInvalidRule)
}

func (suite *PostingRuleServiceTestSuite) TestRegisterRule_UnknownAmountField() {
	req := validRuleRequest()
	req.AmountField = "GRAND_TOTAL"

	_, err := suite.service.RegisterRule(context.Background(), req, actor)

	suite.ErrorIs(err, apperrors.ErrInvalidRule)
}

func (suite *PostingRuleServiceTestSuite) TestRegisterRule_FieldNotOnDocumentType() {
	req := validRuleRequest()
	req.AmountField = domain.AmountPaid

	_, err := suite.service.RegisterRule(context.Background(), req, actor)

	suite.ErrorIs(err, apperrors.ErrInvalidRule)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *PostingRuleServiceTestSuite) TestRegisterRule_UnsupportedDocumentType() {
	req := validRuleRequest()
	req.DocumentType = "DELIVERY_NOTE"

	_, err := suite.service.RegisterRule(context.Background(), req, actor)

	suite.ErrorIs(err, apperrors.ErrUnsupportedDocumentType)
}

func (suite *PostingRuleServiceTestSuite) TestRegisterRule_AccountMissing() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, acctReceivable).Return(nil, apperrors.NewNotFoundError("account")).Once()

	_, err := suite.service.RegisterRule(ctx, validRuleRequest(), actor)

	suite.ErrorIs(err, apperrors.ErrInvalidRule)
}

func (suite *PostingRuleServiceTestSuite) TestRegisterRule_AccountInactive() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, acctReceivable).Return(&domain.Account{AccountID: acctReceivable}, nil).Once()

	_, err := suite.service.RegisterRule(ctx, validRuleRequest(), actor)

	suite.ErrorIs(err, apperrors.ErrInvalidRule)
}

func (suite *PostingRuleServiceTestSuite) TestRegisterRule_Duplicate() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, acctReceivable).Return(&domain.Account{AccountID: acctReceivable, IsActive: true}, nil).Once()
	suite.mockRuleRepo.On("SaveRule", ctx, mock.AnythingOfType("domain.PostingRule")).Return(apperrors.ErrDuplicateRule).Once()

	_, err := suite.service.RegisterRule(ctx, validRuleRequest(), actor)

	suite.ErrorIs(err, apperrors.ErrDuplicateRule)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRecorder.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything)
}

func (suite *PostingRuleServiceTestSuite) TestRulesFor_OrdersByPriorityThenName() {
	ctx := context.Background()
	suite.mockRuleRepo.On("FindActiveRulesByDocumentType", ctx, domain.DocTypeSalesInvoice).Return([]domain.PostingRule{
		{RuleName: "tax", Priority: 2, IsActive: true},
		{RuleName: "stale", Priority: 0, IsActive: false},
		{RuleName: "revenue", Priority: 2, IsActive: true},
		{RuleName: "receivable", Priority: 1, IsActive: true},
	}, nil).Once()

	rules, err := suite.service.RulesFor(ctx, domain.DocTypeSalesInvoice)

	suite.Require().NoError(err)
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.RuleName
	}
	suite.Equal([]string{"receivable", "revenue", "tax"}, names)
}

func (suite *PostingRuleServiceTestSuite) TestRulesFor_RepoError() {
	ctx := context.Background()
	suite.mockRuleRepo.On("FindActiveRulesByDocumentType", ctx, "X").Return(nil, assert.AnError).Once()

	_, err := suite.service.RulesFor(ctx, "X")

	suite.ErrorIs(err, assert.AnError)
}

func (suite *PostingRuleServiceTestSuite) TestDeactivateRule() {
	ctx := context.Background()
	suite.mockRuleRepo.On("FindRuleByID", ctx, "r1").Return(&domain.PostingRule{RuleID: "r1", IsActive: true}, nil).Once()
	suite.mockRuleRepo.On("DeactivateRule", ctx, "r1", actor, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRecorder.On("Record", ctx, mock.MatchedBy(func(e domain.AuditLogInput) bool {
		return e.Action == domain.ActionUpdate && e.Before["is_active"] == true && e.After["is_active"] == false
	})).Once()

	suite.Require().NoError(suite.service.DeactivateRule(ctx, "r1", actor))
	suite.mockRuleRepo.AssertExpectations(suite.T())
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *PostingRuleServiceTestSuite) TestDeactivateRule_AlreadyInactive() {
	ctx := context.Background()
	suite.mockRuleRepo.On("FindRuleByID", ctx, "r1").Return(&domain.PostingRule{RuleID: "r1"}, nil).Once()

	suite.Require().NoError(suite.service.DeactivateRule(ctx, "r1", actor))
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "DeactivateRule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingRuleServiceTestSuite) TestDeactivateRule_NotFound() {
	ctx := context.Background()
	suite.mockRuleRepo.On("FindRuleByID", ctx, "r1").Return(nil, apperrors.ErrNotFound).Once()

	suite.ErrorIs(suite.service.DeactivateRule(ctx, "r1", actor), apperrors.ErrNotFound)
}

func TestPostingRuleService(t *testing.T) {
	suite.Run(t, new(PostingRuleServiceTestSuite))
}
