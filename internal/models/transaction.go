package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table. Both rate triples are copied into columns
// so the stored profit can be recomputed after the currency rates change.
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	CashSessionID     string          `db:"cash_session_id"`
	FromCurrencyID    string          `db:"from_currency_id"`
	ToCurrencyID      string          `db:"to_currency_id"`
	OriginalAmount    decimal.Decimal `db:"original_amount"`
	ConvertedAmount   decimal.Decimal `db:"converted_amount"`
	USDAmount         decimal.Decimal `db:"usd_amount"`
	ProfitFromUSD     decimal.Decimal `db:"profit_from_usd"`
	ProfitToUSD       decimal.Decimal `db:"profit_to_usd"`
	TotalProfitUSD    decimal.Decimal `db:"total_profit_usd"`
	FromRateToUSD     decimal.Decimal `db:"from_rate_to_usd"`
	FromBuyRateToUSD  decimal.Decimal `db:"from_buy_rate_to_usd"`
	FromSellRateToUSD decimal.Decimal `db:"from_sell_rate_to_usd"`
	ToRateToUSD       decimal.Decimal `db:"to_rate_to_usd"`
	ToBuyRateToUSD    decimal.Decimal `db:"to_buy_rate_to_usd"`
	ToSellRateToUSD   decimal.Decimal `db:"to_sell_rate_to_usd"`
	AssignedTo        *string         `db:"assigned_to"`
	Status            string          `db:"status"`
	Notes             string          `db:"notes"`
	AuditFields
}

// CashMovement is a row of cash_movements.
type CashMovement struct {
	CashMovementID string          `db:"cash_movement_id"`
	TransactionID  string          `db:"transaction_id"`
	CashSessionID  string          `db:"cash_session_id"`
	CurrencyID     string          `db:"currency_id"`
	Type           string          `db:"type"`
	Amount         decimal.Decimal `db:"amount"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}
