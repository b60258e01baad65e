package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kassemKu/sibai-transactions/internal/apperrors"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	portsrepo "github.com/kassemKu/sibai-transactions/internal/core/ports/repositories"
	portssvc "github.com/kassemKu/sibai-transactions/internal/core/ports/services"
	"github.com/kassemKu/sibai-transactions/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type balanceService struct {
	BaseService
	sessionRepo  portsrepo.CashSessionReader
	txnRepo      portsrepo.TransactionReader
	currencyRepo portsrepo.CurrencyReader
}

// NewBalanceService creates the balance accountant.
func NewBalanceService(
	sessionRepo portsrepo.CashSessionReader,
	txnRepo portsrepo.TransactionReader,
	currencyRepo portsrepo.CurrencyReader,
) portssvc.BalanceSvc {
	return &balanceService{
		sessionRepo:  sessionRepo,
		txnRepo:      txnRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

// GetClosingBalances is the session-wide view: every operator's completed movements count.
func (s *balanceService) GetClosingBalances(ctx context.Context, sessionID string) ([]domain.BalanceRow, error) {
	if _, err := s.sessionRepo.FindCashSessionByID(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("failed to get cash session %s: %w", sessionID, err)
	}

	balances, err := s.sessionRepo.FindCashBalances(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances of session %s: %w", sessionID, err)
	}
	lines, err := s.sessionRepo.FindMovementLines(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get movements of session %s: %w", sessionID, err)
	}
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}

	return buildBalanceRows(balances, accounting.SumCompletedMovements(lines), currencies), nil
}

// GetCurrencyAvailableBalance is the per-operator view: only userID's completed transactions count.
func (s *balanceService) GetCurrencyAvailableBalance(ctx context.Context, currencyID, sessionID, userID string) (decimal.Decimal, error) {
	opening := decimal.Zero
	balance, err := s.sessionRepo.FindCashBalance(ctx, sessionID, currencyID)
	switch {
	case err == nil:
		opening = balance.OpeningBalance
	case errors.Is(err, apperrors.ErrNotFound):
		// Currency added after the session opened.
	default:
		return decimal.Zero, fmt.Errorf("failed to get opening balance of %s: %w", currencyID, err)
	}

	txns, err := s.txnRepo.ListTransactionsBySession(ctx, sessionID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list transactions of session %s: %w", sessionID, err)
	}

	totals := accounting.SumOperatorTransactions(txns, userID)
	return accounting.SystemClosing(opening, totals[currencyID]), nil
}

func (s *balanceService) HasSufficientBalance(ctx context.Context, currencyID string, amount decimal.Decimal, sessionID, userID string) (bool, error) {
	available, err := s.GetCurrencyAvailableBalance(ctx, currencyID, sessionID, userID)
	if err != nil {
		return false, err
	}
	return available.GreaterThanOrEqual(amount), nil
}

// buildBalanceRows produces one row per balance row of the session, ordered by currency code.
func buildBalanceRows(balances []domain.CashBalance, totals map[string]accounting.Totals, currencies []domain.Currency) []domain.BalanceRow {
	byID := make(map[string]domain.Currency, len(currencies))
	for _, c := range currencies {
		byID[c.CurrencyID] = c
	}

	rows := make([]domain.BalanceRow, 0, len(balances))
	for _, b := range balances {
		t := totals[b.CurrencyID]
		c := byID[b.CurrencyID]
		rows = append(rows, domain.BalanceRow{
			CurrencyID:           b.CurrencyID,
			CurrencyCode:         c.Code,
			CurrencyName:         c.Name,
			OpeningBalance:       b.OpeningBalance,
			TotalIn:              t.In,
			TotalOut:             t.Out,
			SystemClosingBalance: accounting.SystemClosing(b.OpeningBalance, t),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CurrencyCode < rows[j].CurrencyCode
	})
	return rows
}
