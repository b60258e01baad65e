package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kassemKu/sibai-transactions/internal/apperrors"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	portssvc "github.com/kassemKu/sibai-transactions/internal/core/ports/services"
	"github.com/kassemKu/sibai-transactions/internal/core/services"
	"github.com/kassemKu/sibai-transactions/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CasherSessionServiceTestSuite struct {
	suite.Suite
	casherRepo   *MockCasherSessionRepository
	sessionRepo  *MockCashSessionRepository
	txnRepo      *MockTransactionRepository
	userRepo     *MockUserRepository
	currencyRepo *MockCurrencyRepository
	service      portssvc.CasherSessionSvcFacade
	ctx          context.Context
	casherID     string
}

func (suite *CasherSessionServiceTestSuite) SetupTest() {
	suite.casherRepo = new(MockCasherSessionRepository)
	suite.sessionRepo = new(MockCashSessionRepository)
	suite.txnRepo = new(MockTransactionRepository)
	suite.userRepo = new(MockUserRepository)
	suite.currencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewCasherSessionService(suite.casherRepo, suite.sessionRepo, suite.txnRepo, suite.userRepo, suite.currencyRepo)
	suite.ctx = context.Background()
	suite.casherID = uuid.NewString()

	suite.currencyRepo.On("ListCurrencies", suite.ctx).Return([]domain.Currency{
		testCurrency("cur-usd", "USD", "1", "1", "1"),
		testCurrency("cur-eur", "EUR", "0.93", "0.925", "0.935"),
	}, nil).Maybe()
	suite.userRepo.On("FindUserByID", suite.ctx, suite.casherID).
		Return(&domain.User{UserID: suite.casherID, Role: domain.RoleCasher, IsActive: true}, nil).Maybe()
}

func (suite *CasherSessionServiceTestSuite) openRequest() dto.OpenCasherSessionRequest {
	return dto.OpenCasherSessionRequest{
		CashSessionID:   "s1",
		CasherID:        suite.casherID,
		OpeningBalances: domain.BalanceMap{"cur-usd": dec("200"), "cur-eur": dec("300")},
	}
}

func (suite *CasherSessionServiceTestSuite) TestOpenCasherCashSession_Success() {
	suite.sessionRepo.expectTx(true)
	suite.sessionRepo.On("FindCashSessionByIDForShare", suite.ctx, mock.Anything, "s1").
		Return(&domain.CashSession{CashSessionID: "s1", Status: domain.SessionActive}, nil).Once()
	suite.casherRepo.On("SaveCasherSessionInTx", suite.ctx, mock.Anything,
		mock.MatchedBy(func(cs domain.CasherCashSession) bool {
			return cs.CashSessionID == "s1" && cs.CasherID == suite.casherID && cs.Status == domain.SessionActive &&
				cs.OpeningBalances["cur-eur"].Equal(dec("300"))
		}),
	).Return(nil).Once()

	cs, err := suite.service.OpenCasherCashSession(suite.ctx, suite.openRequest(), "admin-1")

	suite.Require().NoError(err)
	suite.Equal("admin-1", cs.OpenedBy)
	suite.casherRepo.AssertExpectations(suite.T())
}

func (suite *CasherSessionServiceTestSuite) TestOpenCasherCashSession_DefaultsToCurrentSession() {
	req := suite.openRequest()
	req.CashSessionID = ""

	suite.sessionRepo.On("FindOpenCashSession", suite.ctx).
		Return(&domain.CashSession{CashSessionID: "s-current", Status: domain.SessionActive}, nil).Once()
	suite.sessionRepo.expectTx(true)
	suite.sessionRepo.On("FindCashSessionByIDForShare", suite.ctx, mock.Anything, "s-current").
		Return(&domain.CashSession{CashSessionID: "s-current", Status: domain.SessionActive}, nil).Once()
	suite.casherRepo.On("SaveCasherSessionInTx", suite.ctx, mock.Anything, mock.Anything).Return(nil).Once()

	cs, err := suite.service.OpenCasherCashSession(suite.ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.Equal("s-current", cs.CashSessionID)
}

func (suite *CasherSessionServiceTestSuite) TestOpenCasherCashSession_UserIsNotCasher() {
	adminID := uuid.NewString()
	req := suite.openRequest()
	req.CasherID = adminID
	suite.userRepo.On("FindUserByID", suite.ctx, adminID).
		Return(&domain.User{UserID: adminID, Role: domain.RoleAdmin, IsActive: true}, nil).Once()

	_, err := suite.service.OpenCasherCashSession(suite.ctx, req, "admin-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.sessionRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *CasherSessionServiceTestSuite) TestOpenCasherCashSession_InvalidBalances() {
	negative := suite.openRequest()
	negative.OpeningBalances = domain.BalanceMap{"cur-usd": dec("-1")}
	_, err := suite.service.OpenCasherCashSession(suite.ctx, negative, "admin-1")
	suite.ErrorIs(err, apperrors.ErrValidation)

	unknown := suite.openRequest()
	unknown.OpeningBalances = domain.BalanceMap{"cur-gbp": dec("10")}
	_, err = suite.service.OpenCasherCashSession(suite.ctx, unknown, "admin-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CasherSessionServiceTestSuite) TestOpenCasherCashSession_ParentNotActive() {
	suite.sessionRepo.expectTx(false)
	suite.sessionRepo.On("FindCashSessionByIDForShare", suite.ctx, mock.Anything, "s1").
		Return(&domain.CashSession{CashSessionID: "s1", Status: domain.SessionPending}, nil).Once()

	_, err := suite.service.OpenCasherCashSession(suite.ctx, suite.openRequest(), "admin-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.casherRepo.AssertNotCalled(suite.T(), "SaveCasherSessionInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CasherSessionServiceTestSuite) TestOpenCasherCashSession_SecondOpenSubSession() {
	suite.sessionRepo.expectTx(false)
	suite.sessionRepo.On("FindCashSessionByIDForShare", suite.ctx, mock.Anything, "s1").
		Return(&domain.CashSession{CashSessionID: "s1", Status: domain.SessionActive}, nil).Once()
	suite.casherRepo.On("SaveCasherSessionInTx", suite.ctx, mock.Anything, mock.Anything).
		Return(apperrors.NewConflictError("casher session already open")).Once()

	_, err := suite.service.OpenCasherCashSession(suite.ctx, suite.openRequest(), "admin-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.sessionRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *CasherSessionServiceTestSuite) activeSubSession(status domain.SessionStatus) *domain.CasherCashSession {
	return &domain.CasherCashSession{
		CasherSessionID: "cs1",
		CashSessionID:   "s1",
		CasherID:        suite.casherID,
		Status:          status,
		OpeningBalances: domain.BalanceMap{"cur-usd": dec("200"), "cur-eur": dec("300")},
	}
}

func (suite *CasherSessionServiceTestSuite) sessionTxns() []domain.Transaction {
	return []domain.Transaction{
		{FromCurrencyID: "cur-usd", ToCurrencyID: "cur-eur", OriginalAmount: dec("100"), ConvertedAmount: dec("92.50"),
			Status: domain.TransactionCompleted, AuditFields: domain.AuditFields{CreatedBy: suite.casherID}},
		{FromCurrencyID: "cur-usd", ToCurrencyID: "cur-eur", OriginalAmount: dec("40"), ConvertedAmount: dec("37"),
			Status: domain.TransactionPending, AuditFields: domain.AuditFields{CreatedBy: suite.casherID}},
		{FromCurrencyID: "cur-usd", ToCurrencyID: "cur-eur", OriginalAmount: dec("500"), ConvertedAmount: dec("462.50"),
			Status: domain.TransactionCompleted, AuditFields: domain.AuditFields{CreatedBy: "someone-else"}},
	}
}

func (suite *CasherSessionServiceTestSuite) TestRequestCasherSessionClose_ByOwner() {
	suite.sessionRepo.expectTx(true)
	suite.casherRepo.On("FindCasherSessionByIDForUpdate", suite.ctx, mock.Anything, "cs1").
		Return(suite.activeSubSession(domain.SessionActive), nil).Once()
	suite.txnRepo.On("ListTransactionsBySession", suite.ctx, "s1").Return(suite.sessionTxns(), nil).Once()
	suite.casherRepo.On("UpdateCasherSessionInTx", suite.ctx, mock.Anything,
		mock.MatchedBy(func(cs domain.CasherCashSession) bool { return cs.Status == domain.SessionPending }),
	).Return(nil).Once()

	cs, err := suite.service.RequestCasherSessionClose(suite.ctx, "cs1", suite.casherID, domain.RoleCasher)

	suite.Require().NoError(err)
	suite.Equal(domain.SessionPending, cs.Status)
	suite.Equal("300.00", cs.SystemBalances["cur-usd"].StringFixed(2))
	suite.Equal("207.50", cs.SystemBalances["cur-eur"].StringFixed(2))
	suite.casherRepo.AssertExpectations(suite.T())
}

func (suite *CasherSessionServiceTestSuite) TestRequestCasherSessionClose_OtherCasherForbidden() {
	suite.sessionRepo.expectTx(false)
	suite.casherRepo.On("FindCasherSessionByIDForUpdate", suite.ctx, mock.Anything, "cs1").
		Return(suite.activeSubSession(domain.SessionActive), nil).Once()

	_, err := suite.service.RequestCasherSessionClose(suite.ctx, "cs1", uuid.NewString(), domain.RoleCasher)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CasherSessionServiceTestSuite) TestRequestCasherSessionClose_NotActive() {
	suite.sessionRepo.expectTx(false)
	suite.casherRepo.On("FindCasherSessionByIDForUpdate", suite.ctx, mock.Anything, "cs1").
		Return(suite.activeSubSession(domain.SessionPending), nil).Once()

	_, err := suite.service.RequestCasherSessionClose(suite.ctx, "cs1", "admin-1", domain.RoleAdmin)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CasherSessionServiceTestSuite) TestCloseCasherCashSession_FromPending() {
	suite.sessionRepo.expectTx(true)
	suite.casherRepo.On("FindCasherSessionByIDForUpdate", suite.ctx, mock.Anything, "cs1").
		Return(suite.activeSubSession(domain.SessionPending), nil).Once()
	suite.sessionRepo.On("FindCashSessionByIDForShare", suite.ctx, mock.Anything, "s1").
		Return(&domain.CashSession{CashSessionID: "s1", Status: domain.SessionPending}, nil).Once()
	suite.txnRepo.On("ListTransactionsBySession", suite.ctx, "s1").Return(suite.sessionTxns(), nil).Once()
	suite.casherRepo.On("UpdateCasherSessionInTx", suite.ctx, mock.Anything,
		mock.MatchedBy(func(cs domain.CasherCashSession) bool {
			return cs.Status == domain.SessionClosed && cs.ClosedBy != nil && *cs.ClosedBy == "admin-1"
		}),
	).Return(nil).Once()

	actual := domain.BalanceMap{"cur-usd": dec("300"), "cur-eur": dec("200")}
	cs, err := suite.service.CloseCasherCashSession(suite.ctx, "cs1", actual, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(domain.SessionClosed, cs.Status)
	suite.Equal("200.00", cs.ActualClosingBalances["cur-eur"].StringFixed(2))
	suite.Equal("207.50", cs.SystemBalances["cur-eur"].StringFixed(2))
}

func (suite *CasherSessionServiceTestSuite) TestCloseCasherCashSession_ParentClosed() {
	suite.sessionRepo.expectTx(false)
	suite.casherRepo.On("FindCasherSessionByIDForUpdate", suite.ctx, mock.Anything, "cs1").
		Return(suite.activeSubSession(domain.SessionActive), nil).Once()
	suite.sessionRepo.On("FindCashSessionByIDForShare", suite.ctx, mock.Anything, "s1").
		Return(&domain.CashSession{CashSessionID: "s1", Status: domain.SessionClosed}, nil).Once()

	_, err := suite.service.CloseCasherCashSession(suite.ctx, "cs1", domain.BalanceMap{}, "admin-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CasherSessionServiceTestSuite) TestCloseCasherCashSession_AlreadyClosed() {
	suite.sessionRepo.expectTx(false)
	suite.casherRepo.On("FindCasherSessionByIDForUpdate", suite.ctx, mock.Anything, "cs1").
		Return(suite.activeSubSession(domain.SessionClosed), nil).Once()

	_, err := suite.service.CloseCasherCashSession(suite.ctx, "cs1", domain.BalanceMap{}, "admin-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestCasherSessionService(t *testing.T) {
	suite.Run(t, new(CasherSessionServiceTestSuite))
}
