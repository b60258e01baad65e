package dto

import "github.com/shopspring/decimal"

// CalculateConversionRequest asks for a forward quote: how much of the target currency
// the customer receives for amount of the source currency.
type CalculateConversionRequest struct {
	FromCurrencyID string          `json:"fromCurrencyID" binding:"required,uuid"`
	ToCurrencyID   string          `json:"toCurrencyID" binding:"required,uuid,nefield=FromCurrencyID"`
	Amount         decimal.Decimal `json:"amount" binding:"dgt0"`
}

// ReverseProfitsRequest asks for the profit breakdown of paying out convertedAmount
// of the target currency.
type ReverseProfitsRequest struct {
	FromCurrencyID  string          `json:"fromCurrencyID" binding:"required,uuid"`
	ToCurrencyID    string          `json:"toCurrencyID" binding:"required,uuid,nefield=FromCurrencyID"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount" binding:"dgt0"`
}
