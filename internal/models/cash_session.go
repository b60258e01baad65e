package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashSession is a row of cash_sessions. Rate snapshots are stored as JSONB documents.
type CashSession struct {
	CashSessionID      string     `db:"cash_session_id"`
	Status             string     `db:"status"`
	OpenedAt           time.Time  `db:"opened_at"`
	OpenedBy           string     `db:"opened_by"`
	ClosedAt           *time.Time `db:"closed_at"`
	ClosedBy           *string    `db:"closed_by"`
	OpenExchangeRates  []byte     `db:"open_exchange_rates"`
	CloseExchangeRates []byte     `db:"close_exchange_rates"` // Nullable
	AuditFields
}

// CashBalance is a row of cash_balances, unique on (cash_session_id, currency_id).
type CashBalance struct {
	CashBalanceID        string              `db:"cash_balance_id"`
	CashSessionID        string              `db:"cash_session_id"`
	CurrencyID           string              `db:"currency_id"`
	OpeningBalance       decimal.Decimal     `db:"opening_balance"`
	TotalIn              decimal.Decimal     `db:"total_in"`
	TotalOut             decimal.Decimal     `db:"total_out"`
	ClosingBalance       decimal.Decimal     `db:"closing_balance"`
	ActualClosingBalance decimal.NullDecimal `db:"actual_closing_balance"`
	Difference           decimal.NullDecimal `db:"difference"`
	AuditFields
}

// CasherCashSession is a row of casher_cash_sessions. Balance maps are stored as JSONB documents.
type CasherCashSession struct {
	CasherSessionID       string     `db:"casher_session_id"`
	CashSessionID         string     `db:"cash_session_id"`
	CasherID              string     `db:"casher_id"`
	Status                string     `db:"status"`
	OpeningBalances       []byte     `db:"opening_balances"`
	SystemBalances        []byte     `db:"system_balances"`
	ActualClosingBalances []byte     `db:"actual_closing_balances"`
	OpenedAt              time.Time  `db:"opened_at"`
	OpenedBy              string     `db:"opened_by"`
	ClosedAt              *time.Time `db:"closed_at"`
	ClosedBy              *string    `db:"closed_by"`
	AuditFields
}
