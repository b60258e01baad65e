package services_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency, snapshot domain.CurrencyRateSnapshot) error {
	args := m.Called(ctx, currency, snapshot)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency, snapshot domain.CurrencyRateSnapshot) error {
	args := m.Called(ctx, currency, snapshot)
	return args.Error(0)
}

func (m *MockCurrencyRepository) ListRateSnapshots(ctx context.Context, currencyID string) ([]domain.CurrencyRateSnapshot, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRateSnapshot), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock transaction manager shared by the tx-capable repositories ---
type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *mockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// expectTx wires a successful Begin and a Rollback that may or may not run.
func (m *mockTxManager) expectTx(commit bool) {
	m.On("Begin", mock.Anything).Return(nil, nil).Once()
	m.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	if commit {
		m.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	}
}

// --- Mock CashSessionRepository ---
type MockCashSessionRepository struct {
	mockTxManager
}

func (m *MockCashSessionRepository) FindCashSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionRepository) FindOpenCashSession(ctx context.Context) (*domain.CashSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionRepository) FindCashBalances(ctx context.Context, sessionID string) ([]domain.CashBalance, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashBalance), args.Error(1)
}

func (m *MockCashSessionRepository) FindCashBalance(ctx context.Context, sessionID, currencyID string) (*domain.CashBalance, error) {
	args := m.Called(ctx, sessionID, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashBalance), args.Error(1)
}

func (m *MockCashSessionRepository) FindMovementLines(ctx context.Context, sessionID string) ([]domain.MovementLine, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MovementLine), args.Error(1)
}

func (m *MockCashSessionRepository) LockCashSessionsInTx(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCashSessionRepository) FindOpenCashSessionInTx(ctx context.Context, tx pgx.Tx) (*domain.CashSession, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionRepository) FindCashSessionByIDForUpdate(ctx context.Context, tx pgx.Tx, sessionID string) (*domain.CashSession, error) {
	args := m.Called(ctx, tx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionRepository) FindCashSessionByIDForShare(ctx context.Context, tx pgx.Tx, sessionID string) (*domain.CashSession, error) {
	args := m.Called(ctx, tx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionRepository) FindCashBalancesInTx(ctx context.Context, tx pgx.Tx, sessionID string) ([]domain.CashBalance, error) {
	args := m.Called(ctx, tx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashBalance), args.Error(1)
}

func (m *MockCashSessionRepository) FindMovementLinesInTx(ctx context.Context, tx pgx.Tx, sessionID string) ([]domain.MovementLine, error) {
	args := m.Called(ctx, tx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MovementLine), args.Error(1)
}

func (m *MockCashSessionRepository) FindLatestActualClosingBalancesInTx(ctx context.Context, tx pgx.Tx) (domain.BalanceMap, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.BalanceMap), args.Error(1)
}

func (m *MockCashSessionRepository) SaveCashSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CashSession, balances []domain.CashBalance) error {
	args := m.Called(ctx, tx, session, balances)
	return args.Error(0)
}

func (m *MockCashSessionRepository) UpdateCashSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CashSession) error {
	args := m.Called(ctx, tx, session)
	return args.Error(0)
}

func (m *MockCashSessionRepository) UpdateCashBalancesInTx(ctx context.Context, tx pgx.Tx, balances []domain.CashBalance) error {
	args := m.Called(ctx, tx, balances)
	return args.Error(0)
}

// --- Mock CasherSessionRepository ---
type MockCasherSessionRepository struct {
	mock.Mock
}

func (m *MockCasherSessionRepository) FindCasherSessionByID(ctx context.Context, casherSessionID string) (*domain.CasherCashSession, error) {
	args := m.Called(ctx, casherSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasherCashSession), args.Error(1)
}

func (m *MockCasherSessionRepository) FindOpenCasherSession(ctx context.Context, casherID string) (*domain.CasherCashSession, error) {
	args := m.Called(ctx, casherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasherCashSession), args.Error(1)
}

func (m *MockCasherSessionRepository) ListCasherSessionsBySession(ctx context.Context, cashSessionID string) ([]domain.CasherCashSession, error) {
	args := m.Called(ctx, cashSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CasherCashSession), args.Error(1)
}

func (m *MockCasherSessionRepository) FindCasherSessionByIDForUpdate(ctx context.Context, tx pgx.Tx, casherSessionID string) (*domain.CasherCashSession, error) {
	args := m.Called(ctx, tx, casherSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasherCashSession), args.Error(1)
}

func (m *MockCasherSessionRepository) CountOpenCasherSessionsInTx(ctx context.Context, tx pgx.Tx, cashSessionID string) (int, error) {
	args := m.Called(ctx, tx, cashSessionID)
	return args.Int(0), args.Error(1)
}

func (m *MockCasherSessionRepository) SaveCasherSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CasherCashSession) error {
	args := m.Called(ctx, tx, session)
	return args.Error(0)
}

func (m *MockCasherSessionRepository) UpdateCasherSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CasherCashSession) error {
	args := m.Called(ctx, tx, session)
	return args.Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mockTxManager
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsBySession(ctx context.Context, cashSessionID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, cashSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransactionStatusInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveCashMovementsInTx(ctx context.Context, tx pgx.Tx, movements []domain.CashMovement) error {
	args := m.Called(ctx, tx, movements)
	return args.Error(0)
}

// --- Mock BalanceSvc ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) GetClosingBalances(ctx context.Context, sessionID string) ([]domain.BalanceRow, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceRow), args.Error(1)
}

func (m *MockBalanceService) GetCurrencyAvailableBalance(ctx context.Context, currencyID, sessionID, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, currencyID, sessionID, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceService) HasSufficientBalance(ctx context.Context, currencyID string, amount decimal.Decimal, sessionID, userID string) (bool, error) {
	args := m.Called(ctx, currencyID, amount, sessionID, userID)
	return args.Bool(0), args.Error(1)
}

// --- fixtures ---

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCurrency(id, code, mid, buy, sell string) domain.Currency {
	return domain.Currency{
		CurrencyID:    id,
		Name:          code,
		Code:          code,
		RateToUSD:     dec(mid),
		BuyRateToUSD:  dec(buy),
		SellRateToUSD: dec(sell),
	}
}
