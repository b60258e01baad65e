package services

import (
	"context"

	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConversionSvc quotes conversions against the currencies' current rates.
// Both currencies are re-read on every call.
type ConversionSvc interface {
	// Calculate performs the forward calculation for amount of the source currency.
	Calculate(ctx context.Context, fromCurrencyID, toCurrencyID string, amount decimal.Decimal) (*domain.ConversionResult, error)

	// CalculateReverseProfits performs the reverse calculation for a known converted amount.
	CalculateReverseProfits(ctx context.Context, fromCurrencyID, toCurrencyID string, convertedAmount decimal.Decimal) (*domain.ProfitResult, error)
}
