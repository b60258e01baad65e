package services

import (
	"context"

	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSvc aggregates cash positions. The session-wide and per-operator views
// are separate operations.
type BalanceSvc interface {
	// GetClosingBalances returns the system closing balance of every currency in the session.
	GetClosingBalances(ctx context.Context, sessionID string) ([]domain.BalanceRow, error)

	// GetCurrencyAvailableBalance returns one operator's float in a currency within the session.
	GetCurrencyAvailableBalance(ctx context.Context, currencyID, sessionID, userID string) (decimal.Decimal, error)

	// HasSufficientBalance reports whether the operator's float covers amount.
	HasSufficientBalance(ctx context.Context, currencyID string, amount decimal.Decimal, sessionID, userID string) (bool, error)
}
