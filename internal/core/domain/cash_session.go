package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus is the lifecycle state shared by cash sessions and cashier sub-sessions.
type SessionStatus string

const (
	SessionActive  SessionStatus = "active"
	SessionPending SessionStatus = "pending"
	SessionClosed  SessionStatus = "closed"
)

// IsOpen reports whether the session has not been closed yet.
func (s SessionStatus) IsOpen() bool {
	return s == SessionActive || s == SessionPending
}

// RateSnapshot maps a currency ID to its mid rate (rate_to_usd) at a point in time.
type RateSnapshot map[string]decimal.Decimal

// BalanceMap maps a currency ID to an amount of that currency.
type BalanceMap map[string]decimal.Decimal

// CashSession is the shop-wide cash session. At most one session is open at a time.
type CashSession struct {
	CashSessionID      string        `json:"cashSessionID"`
	Status             SessionStatus `json:"status"`
	OpenedAt           time.Time     `json:"openedAt"`
	OpenedBy           string        `json:"openedBy"`
	ClosedAt           *time.Time    `json:"closedAt,omitempty"`
	ClosedBy           *string       `json:"closedBy,omitempty"`
	OpenExchangeRates  RateSnapshot  `json:"openExchangeRates"`
	CloseExchangeRates RateSnapshot  `json:"closeExchangeRates,omitempty"`
	AuditFields
}

// CashBalance is the reconciliation row of one currency within one cash session.
type CashBalance struct {
	CashBalanceID        string           `json:"cashBalanceID"`
	CashSessionID        string           `json:"cashSessionID"`
	CurrencyID           string           `json:"currencyID"`
	OpeningBalance       decimal.Decimal  `json:"openingBalance"`
	TotalIn              decimal.Decimal  `json:"totalIn"`
	TotalOut             decimal.Decimal  `json:"totalOut"`
	ClosingBalance       decimal.Decimal  `json:"closingBalance"`                 // System computed: opening + in - out
	ActualClosingBalance *decimal.Decimal `json:"actualClosingBalance,omitempty"` // Admin entered at close
	Difference           *decimal.Decimal `json:"difference,omitempty"`           // actual - system
	AuditFields
}

// IsReconciled reports whether an actual closing balance has been recorded for this row.
func (b CashBalance) IsReconciled() bool {
	return b.ActualClosingBalance != nil
}

// BalanceRow is the system view of one currency's balance within a session.
type BalanceRow struct {
	CurrencyID           string          `json:"currencyID"`
	CurrencyCode         string          `json:"currencyCode"`
	CurrencyName         string          `json:"currencyName"`
	OpeningBalance       decimal.Decimal `json:"openingBalance"`
	TotalIn              decimal.Decimal `json:"totalIn"`
	TotalOut             decimal.Decimal `json:"totalOut"`
	SystemClosingBalance decimal.Decimal `json:"systemClosingBalance"`
}

// ActualClosingBalance is one admin-submitted counted amount at session close.
type ActualClosingBalance struct {
	CurrencyID string
	Amount     decimal.Decimal
}

// CashSessionCloseResult is the outcome of reconciling and closing a cash session.
type CashSessionCloseResult struct {
	Session  CashSession   `json:"session"`
	Balances []CashBalance `json:"balances"`
}
