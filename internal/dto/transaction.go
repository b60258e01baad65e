package dto

import (
	"time"

	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a customer exchange in the current cash session.
type CreateTransactionRequest struct {
	FromCurrencyID string          `json:"fromCurrencyID" binding:"required,uuid"`
	ToCurrencyID   string          `json:"toCurrencyID" binding:"required,uuid,nefield=FromCurrencyID"`
	Amount         decimal.Decimal `json:"amount" binding:"dgt0"`
	AssignedTo     *string         `json:"assignedTo" binding:"omitempty,uuid"`
	Notes          string          `json:"notes" binding:"max=500"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                   `json:"transactionID"`
	CashSessionID   string                   `json:"cashSessionID"`
	FromCurrencyID  string                   `json:"fromCurrencyID"`
	ToCurrencyID    string                   `json:"toCurrencyID"`
	OriginalAmount  decimal.Decimal          `json:"originalAmount"`
	ConvertedAmount decimal.Decimal          `json:"convertedAmount"`
	USDAmount       decimal.Decimal          `json:"usdAmount"`
	ProfitFromUSD   decimal.Decimal          `json:"profitFromUSD"`
	ProfitToUSD     decimal.Decimal          `json:"profitToUSD"`
	TotalProfitUSD  decimal.Decimal          `json:"totalProfitUSD"`
	FromRates       domain.RateTriple        `json:"fromRates"`
	ToRates         domain.RateTriple        `json:"toRates"`
	AssignedTo      *string                  `json:"assignedTo,omitempty"`
	Status          domain.TransactionStatus `json:"status"`
	Notes           string                   `json:"notes"`
	CreatedAt       time.Time                `json:"createdAt"`
	CreatedBy       string                   `json:"createdBy"`
	LastUpdatedAt   time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy   string                   `json:"lastUpdatedBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		CashSessionID:   txn.CashSessionID,
		FromCurrencyID:  txn.FromCurrencyID,
		ToCurrencyID:    txn.ToCurrencyID,
		OriginalAmount:  txn.OriginalAmount,
		ConvertedAmount: txn.ConvertedAmount,
		USDAmount:       txn.USDAmount,
		ProfitFromUSD:   txn.ProfitFromUSD,
		ProfitToUSD:     txn.ProfitToUSD,
		TotalProfitUSD:  txn.TotalProfitUSD,
		FromRates:       txn.FromRates,
		ToRates:         txn.ToRates,
		AssignedTo:      txn.AssignedTo,
		Status:          txn.Status,
		Notes:           txn.Notes,
		CreatedAt:       txn.CreatedAt,
		CreatedBy:       txn.CreatedBy,
		LastUpdatedAt:   txn.LastUpdatedAt,
		LastUpdatedBy:   txn.LastUpdatedBy,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to response DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsResponse wraps the transactions of a session.
type ListTransactionsResponse struct {
	CashSessionID string                `json:"cashSessionID"`
	Transactions  []TransactionResponse `json:"transactions"`
}
