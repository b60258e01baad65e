package services_test

import (
	"context"
	"testing"

	"github.com/kassemKu/sibai-transactions/internal/apperrors"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	portssvc "github.com/kassemKu/sibai-transactions/internal/core/ports/services"
	"github.com/kassemKu/sibai-transactions/internal/core/services"
	"github.com/kassemKu/sibai-transactions/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	txnRepo      *MockTransactionRepository
	sessionRepo  *MockCashSessionRepository
	currencyRepo *MockCurrencyRepository
	balanceSvc   *MockBalanceService
	service      portssvc.TransactionSvcFacade
	ctx          context.Context
	usd          domain.Currency
	eur          domain.Currency
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.txnRepo = new(MockTransactionRepository)
	suite.sessionRepo = new(MockCashSessionRepository)
	suite.currencyRepo = new(MockCurrencyRepository)
	suite.balanceSvc = new(MockBalanceService)
	suite.service = services.NewTransactionService(suite.txnRepo, suite.sessionRepo, suite.currencyRepo, suite.balanceSvc)
	suite.ctx = context.Background()

	suite.usd = testCurrency("cur-usd", "USD", "1", "1", "1")
	suite.eur = testCurrency("cur-eur", "EUR", "0.93", "0.925", "0.935")
	suite.currencyRepo.On("FindCurrencyByID", suite.ctx, "cur-usd").Return(&suite.usd, nil).Maybe()
	suite.currencyRepo.On("FindCurrencyByID", suite.ctx, "cur-eur").Return(&suite.eur, nil).Maybe()
	for _, id := range []string{"cur-usd", "cur-eur"} {
		suite.sessionRepo.On("FindCashBalance", suite.ctx, "s1", id).
			Return(&domain.CashBalance{CashSessionID: "s1", CurrencyID: id}, nil).Maybe()
	}
}

func (suite *TransactionServiceTestSuite) createRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		FromCurrencyID: "cur-usd",
		ToCurrencyID:   "cur-eur",
		Amount:         dec("100"),
		Notes:          "walk-in",
	}
}

func (suite *TransactionServiceTestSuite) openSession(status domain.SessionStatus) {
	suite.sessionRepo.On("FindOpenCashSession", suite.ctx).
		Return(&domain.CashSession{CashSessionID: "s1", Status: status}, nil).Once()
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	suite.openSession(domain.SessionActive)
	suite.balanceSvc.On("HasSufficientBalance", suite.ctx, "cur-eur",
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.StringFixed(2) == "92.50" }),
		"s1", "casher-1").Return(true, nil).Once()
	suite.txnRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Status == domain.TransactionPending && t.CashSessionID == "s1" && t.CreatedBy == "casher-1"
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, suite.createRequest(), "casher-1")

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionPending, txn.Status)
	suite.Equal("92.50", txn.ConvertedAmount.StringFixed(2))
	suite.Equal("100.00", txn.USDAmount.StringFixed(2))
	suite.Equal("-0.54", txn.TotalProfitUSD.StringFixed(2))
	suite.Equal(suite.eur.Rates(), txn.ToRates)
	suite.Equal("walk-in", txn.Notes)
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InsufficientBalance() {
	suite.openSession(domain.SessionActive)
	suite.balanceSvc.On("HasSufficientBalance", suite.ctx, "cur-eur", mock.Anything, "s1", "casher-1").
		Return(false, nil).Once()

	_, err := suite.service.CreateTransaction(suite.ctx, suite.createRequest(), "casher-1")

	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.txnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NoOpenSession() {
	suite.sessionRepo.On("FindOpenCashSession", suite.ctx).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTransaction(suite.ctx, suite.createRequest(), "casher-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SessionClosing() {
	suite.openSession(domain.SessionPending)

	_, err := suite.service.CreateTransaction(suite.ctx, suite.createRequest(), "casher-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.balanceSvc.AssertNotCalled(suite.T(), "HasSufficientBalance",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownCurrency() {
	suite.openSession(domain.SessionActive)
	suite.currencyRepo.On("FindCurrencyByID", suite.ctx, "cur-xyz").Return(nil, apperrors.ErrNotFound).Once()
	req := suite.createRequest()
	req.ToCurrencyID = "cur-xyz"

	_, err := suite.service.CreateTransaction(suite.ctx, req, "casher-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CurrencyAddedMidSession() {
	suite.openSession(domain.SessionActive)
	gbp := testCurrency("cur-gbp", "GBP", "0.79", "0.785", "0.795")
	suite.currencyRepo.On("FindCurrencyByID", suite.ctx, "cur-gbp").Return(&gbp, nil).Once()
	suite.sessionRepo.On("FindCashBalance", suite.ctx, "s1", "cur-gbp").Return(nil, apperrors.ErrNotFound).Once()
	req := suite.createRequest()
	req.ToCurrencyID = "cur-gbp"

	_, err := suite.service.CreateTransaction(suite.ctx, req, "casher-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "next session")
	suite.balanceSvc.AssertNotCalled(suite.T(), "HasSufficientBalance",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.txnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_PayoutRoundsToZero() {
	suite.openSession(domain.SessionActive)
	req := suite.createRequest()
	req.Amount = dec("0.004")

	_, err := suite.service.CreateTransaction(suite.ctx, req, "casher-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.txnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) pendingTxn(status domain.TransactionStatus) *domain.Transaction {
	return &domain.Transaction{
		TransactionID:   "t1",
		CashSessionID:   "s1",
		FromCurrencyID:  "cur-usd",
		ToCurrencyID:    "cur-eur",
		OriginalAmount:  dec("100.00"),
		ConvertedAmount: dec("92.50"),
		Status:          status,
	}
}

func (suite *TransactionServiceTestSuite) TestConfirmTransaction_WritesMovementPair() {
	suite.txnRepo.expectTx(true)
	suite.txnRepo.On("FindTransactionByIDForUpdate", suite.ctx, mock.Anything, "t1").
		Return(suite.pendingTxn(domain.TransactionPending), nil).Once()
	suite.sessionRepo.On("FindCashSessionByIDForShare", suite.ctx, mock.Anything, "s1").
		Return(&domain.CashSession{CashSessionID: "s1", Status: domain.SessionPending}, nil).Once()
	suite.txnRepo.On("UpdateTransactionStatusInTx", suite.ctx, mock.Anything,
		mock.MatchedBy(func(t domain.Transaction) bool { return t.Status == domain.TransactionCompleted }),
	).Return(nil).Once()
	suite.txnRepo.On("SaveCashMovementsInTx", suite.ctx, mock.Anything,
		mock.MatchedBy(func(m []domain.CashMovement) bool {
			return len(m) == 2 &&
				m[0].Type == domain.MovementIn && m[0].CurrencyID == "cur-usd" && m[0].Amount.Equal(dec("100")) &&
				m[1].Type == domain.MovementOut && m[1].CurrencyID == "cur-eur" && m[1].Amount.Equal(dec("92.5")) &&
				m[0].CashMovementID != "" && m[0].CashMovementID != m[1].CashMovementID &&
				m[0].CreatedBy == "admin-1"
		}),
	).Return(nil).Once()

	txn, err := suite.service.ConfirmTransaction(suite.ctx, "t1", "admin-1")

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionCompleted, txn.Status)
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestConfirmTransaction_NotPending() {
	for _, status := range []domain.TransactionStatus{domain.TransactionCompleted, domain.TransactionCancelled} {
		suite.Run(string(status), func() {
			suite.SetupTest()
			suite.txnRepo.expectTx(false)
			suite.txnRepo.On("FindTransactionByIDForUpdate", suite.ctx, mock.Anything, "t1").
				Return(suite.pendingTxn(status), nil).Once()

			_, err := suite.service.ConfirmTransaction(suite.ctx, "t1", "admin-1")

			suite.ErrorIs(err, apperrors.ErrConflict)
			suite.txnRepo.AssertNotCalled(suite.T(), "SaveCashMovementsInTx", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func (suite *TransactionServiceTestSuite) TestConfirmTransaction_SessionClosed() {
	suite.txnRepo.expectTx(false)
	suite.txnRepo.On("FindTransactionByIDForUpdate", suite.ctx, mock.Anything, "t1").
		Return(suite.pendingTxn(domain.TransactionPending), nil).Once()
	suite.sessionRepo.On("FindCashSessionByIDForShare", suite.ctx, mock.Anything, "s1").
		Return(&domain.CashSession{CashSessionID: "s1", Status: domain.SessionClosed}, nil).Once()

	_, err := suite.service.ConfirmTransaction(suite.ctx, "t1", "admin-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.txnRepo.AssertNotCalled(suite.T(), "UpdateTransactionStatusInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCancelTransaction() {
	suite.txnRepo.expectTx(true)
	suite.txnRepo.On("FindTransactionByIDForUpdate", suite.ctx, mock.Anything, "t1").
		Return(suite.pendingTxn(domain.TransactionPending), nil).Once()
	suite.txnRepo.On("UpdateTransactionStatusInTx", suite.ctx, mock.Anything,
		mock.MatchedBy(func(t domain.Transaction) bool {
			return t.Status == domain.TransactionCancelled && t.LastUpdatedBy == "admin-1"
		}),
	).Return(nil).Once()

	txn, err := suite.service.CancelTransaction(suite.ctx, "t1", "admin-1")

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionCancelled, txn.Status)
	suite.txnRepo.AssertNotCalled(suite.T(), "SaveCashMovementsInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCancelTransaction_AlreadyCancelled() {
	suite.txnRepo.expectTx(false)
	suite.txnRepo.On("FindTransactionByIDForUpdate", suite.ctx, mock.Anything, "t1").
		Return(suite.pendingTxn(domain.TransactionCancelled), nil).Once()

	_, err := suite.service.CancelTransaction(suite.ctx, "t1", "admin-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *TransactionServiceTestSuite) TestListSessionTransactions_Empty() {
	suite.sessionRepo.On("FindCashSessionByID", suite.ctx, "s1").
		Return(&domain.CashSession{CashSessionID: "s1"}, nil).Once()
	suite.txnRepo.On("ListTransactionsBySession", suite.ctx, "s1").Return(nil, nil).Once()

	txns, err := suite.service.ListSessionTransactions(suite.ctx, "s1")

	suite.Require().NoError(err)
	suite.NotNil(txns)
	suite.Empty(txns)
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
