package domain

import (
	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a currency-exchange transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionCancelled TransactionStatus = "cancelled"
)

// CanTransitionTo reports whether the status machine allows moving to next.
// Only pending transactions move, and only to completed or cancelled.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if s != TransactionPending {
		return false
	}
	return next == TransactionCompleted || next == TransactionCancelled
}

// ConversionResult is the output of the forward calculation, including the
// rate snapshots of both currencies at calculation time.
type ConversionResult struct {
	FromCurrencyID  string          `json:"fromCurrencyID"`
	ToCurrencyID    string          `json:"toCurrencyID"`
	FromRates       RateTriple      `json:"fromRates"`
	ToRates         RateTriple      `json:"toRates"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	USDAmount       decimal.Decimal `json:"usdAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ProfitFromUSD   decimal.Decimal `json:"profitFromUSD"`
	ProfitToUSD     decimal.Decimal `json:"profitToUSD"`
	TotalProfitUSD  decimal.Decimal `json:"totalProfitUSD"`
}

// ProfitResult is the output of the reverse calculation, which starts from the converted amount.
type ProfitResult struct {
	FromCurrencyID  string          `json:"fromCurrencyID"`
	ToCurrencyID    string          `json:"toCurrencyID"`
	FromRates       RateTriple      `json:"fromRates"`
	ToRates         RateTriple      `json:"toRates"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	USDAmount       decimal.Decimal `json:"usdAmount"`
	ProfitFromUSD   decimal.Decimal `json:"profitFromUSD"`
	ProfitToUSD     decimal.Decimal `json:"profitToUSD"`
	TotalProfitUSD  decimal.Decimal `json:"totalProfitUSD"`
}

// Transaction is one currency-conversion event recorded within a cash session.
type Transaction struct {
	TransactionID   string            `json:"transactionID"`
	CashSessionID   string            `json:"cashSessionID"`
	FromCurrencyID  string            `json:"fromCurrencyID"`
	ToCurrencyID    string            `json:"toCurrencyID"`
	OriginalAmount  decimal.Decimal   `json:"originalAmount"`
	ConvertedAmount decimal.Decimal   `json:"convertedAmount"`
	USDAmount       decimal.Decimal   `json:"usdAmount"`
	ProfitFromUSD   decimal.Decimal   `json:"profitFromUSD"`
	ProfitToUSD     decimal.Decimal   `json:"profitToUSD"`
	TotalProfitUSD  decimal.Decimal   `json:"totalProfitUSD"`
	FromRates       RateTriple        `json:"fromRates"`
	ToRates         RateTriple        `json:"toRates"`
	AssignedTo      *string           `json:"assignedTo,omitempty"`
	Status          TransactionStatus `json:"status"`
	Notes           string            `json:"notes"`
	AuditFields
}

// Movements returns the in/out pair a confirmed transaction contributes to the till.
// The shop receives the original amount in the source currency and pays out the
// converted amount in the target currency.
func (t Transaction) Movements() []CashMovement {
	return []CashMovement{
		{
			TransactionID: t.TransactionID,
			CashSessionID: t.CashSessionID,
			CurrencyID:    t.FromCurrencyID,
			Type:          MovementIn,
			Amount:        t.OriginalAmount,
		},
		{
			TransactionID: t.TransactionID,
			CashSessionID: t.CashSessionID,
			CurrencyID:    t.ToCurrencyID,
			Type:          MovementOut,
			Amount:        t.ConvertedAmount,
		},
	}
}
