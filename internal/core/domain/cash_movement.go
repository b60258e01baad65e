package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType is the direction of a cash movement relative to the till.
type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// CashMovement is the accounting entry emitted when a transaction is confirmed.
type CashMovement struct {
	CashMovementID string          `json:"cashMovementID"`
	TransactionID  string          `json:"transactionID"`
	CashSessionID  string          `json:"cashSessionID"`
	CurrencyID     string          `json:"currencyID"`
	Type           MovementType    `json:"type"`
	Amount         decimal.Decimal `json:"amount"` // Always positive
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// MovementLine is a movement joined with the status of the transaction that produced it.
type MovementLine struct {
	CurrencyID        string
	Type              MovementType
	Amount            decimal.Decimal
	TransactionStatus TransactionStatus
}
