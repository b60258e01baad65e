package handlers_test

import (
	"context"

	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/kassemKu/sibai-transactions/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrency(ctx context.Context, currencyID string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListRateSnapshots(ctx context.Context, currencyID string) ([]domain.CurrencyRateSnapshot, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRateSnapshot), args.Error(1)
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, actorID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) UpdateCurrency(ctx context.Context, currencyID string, req dto.UpdateCurrencyRequest, actorID string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Calculate(ctx context.Context, fromCurrencyID, toCurrencyID string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	args := m.Called(ctx, fromCurrencyID, toCurrencyID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

func (m *MockConversionService) CalculateReverseProfits(ctx context.Context, fromCurrencyID, toCurrencyID string, convertedAmount decimal.Decimal) (*domain.ProfitResult, error) {
	args := m.Called(ctx, fromCurrencyID, toCurrencyID, convertedAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitResult), args.Error(1)
}

// --- Mock BalanceService ---
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

// --- Mock CashSessionService ---
type MockCashSessionService struct {
	mock.Mock
}

func (m *MockCashSessionService) CurrentActiveSession(ctx context.Context) (*domain.CashSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionService) GetCashSession(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionService) OpenCashSession(ctx context.Context, actorID string) (*domain.CashSession, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionService) BeginCloseCashSession(ctx context.Context, sessionID, actorID string) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionService) CloseCashSession(ctx context.Context, sessionID string, actual []domain.ActualClosingBalance, actorID string) (*domain.CashSessionCloseResult, error) {
	args := m.Called(ctx, sessionID, actual, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSessionCloseResult), args.Error(1)
}

// --- Mock CasherSessionService ---
type MockCasherSessionService struct {
	mock.Mock
}

func (m *MockCasherSessionService) GetCasherCashSession(ctx context.Context, casherSessionID string) (*domain.CasherCashSession, error) {
	args := m.Called(ctx, casherSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasherCashSession), args.Error(1)
}

func (m *MockCasherSessionService) CurrentCasherCashSession(ctx context.Context, userID string) (*domain.CasherCashSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasherCashSession), args.Error(1)
}

func (m *MockCasherSessionService) ListCasherCashSessions(ctx context.Context, cashSessionID string) ([]domain.CasherCashSession, error) {
	args := m.Called(ctx, cashSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CasherCashSession), args.Error(1)
}

func (m *MockCasherSessionService) OpenCasherCashSession(ctx context.Context, req dto.OpenCasherSessionRequest, actorID string) (*domain.CasherCashSession, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasherCashSession), args.Error(1)
}

func (m *MockCasherSessionService) RequestCasherSessionClose(ctx context.Context, casherSessionID, actorID string, actorRole domain.UserRole) (*domain.CasherCashSession, error) {
	args := m.Called(ctx, casherSessionID, actorID, actorRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasherCashSession), args.Error(1)
}

func (m *MockCasherSessionService) CloseCasherCashSession(ctx context.Context, casherSessionID string, actual domain.BalanceMap, actorID string) (*domain.CasherCashSession, error) {
	args := m.Called(ctx, casherSessionID, actual, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasherCashSession), args.Error(1)
}

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListSessionTransactions(ctx context.Context, cashSessionID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, cashSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, actorID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ConfirmTransaction(ctx context.Context, transactionID, actorID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) CancelTransaction(ctx context.Context, transactionID, actorID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
