package dto

import (
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ActualClosingBalanceRequest is one counted amount submitted at session close.
type ActualClosingBalanceRequest struct {
	CurrencyID string          `json:"currencyID" binding:"required,uuid"`
	Amount     decimal.Decimal `json:"amount" binding:"dgte0"`
}

// CloseCashSessionRequest carries the admin's counted closing balances.
type CloseCashSessionRequest struct {
	ActualClosingBalances []ActualClosingBalanceRequest `json:"actualClosingBalances" binding:"required,min=1,dive"`
}

// ToActualClosingBalances converts the request lines to domain values, preserving order.
func (r CloseCashSessionRequest) ToActualClosingBalances() []domain.ActualClosingBalance {
	res := make([]domain.ActualClosingBalance, len(r.ActualClosingBalances))
	for i, line := range r.ActualClosingBalances {
		res[i] = domain.ActualClosingBalance{CurrencyID: line.CurrencyID, Amount: line.Amount}
	}
	return res
}

// ClosingBalancesResponse is the system view of a session's balances.
type ClosingBalancesResponse struct {
	CashSessionID string              `json:"cashSessionID"`
	Balances      []domain.BalanceRow `json:"balances"`
}

// AvailableBalanceResponse is the calling operator's float in one currency.
type AvailableBalanceResponse struct {
	CashSessionID string          `json:"cashSessionID"`
	CurrencyID    string          `json:"currencyID"`
	UserID        string          `json:"userID"`
	Available     decimal.Decimal `json:"available"`
}
