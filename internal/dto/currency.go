package dto

import (
	"time"

	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	Name          string          `json:"name" binding:"required,max=100"`
	Code          string          `json:"code" binding:"required,uppercase,alpha,len=3"`
	RateToUSD     decimal.Decimal `json:"rateToUSD" binding:"dgt0"`
	BuyRateToUSD  decimal.Decimal `json:"buyRateToUSD" binding:"dgt0"`
	SellRateToUSD decimal.Decimal `json:"sellRateToUSD" binding:"dgt0"`
}

// UpdateCurrencyRequest defines the fields an admin may change on a currency.
// The code is immutable once created.
type UpdateCurrencyRequest struct {
	Name          string          `json:"name" binding:"required,max=100"`
	RateToUSD     decimal.Decimal `json:"rateToUSD" binding:"dgt0"`
	BuyRateToUSD  decimal.Decimal `json:"buyRateToUSD" binding:"dgt0"`
	SellRateToUSD decimal.Decimal `json:"sellRateToUSD" binding:"dgt0"`
}

// Rates returns the request's rate triple.
func (r UpdateCurrencyRequest) Rates() domain.RateTriple {
	return domain.RateTriple{RateToUSD: r.RateToUSD, BuyRateToUSD: r.BuyRateToUSD, SellRateToUSD: r.SellRateToUSD}
}

// Rates returns the request's rate triple.
func (r CreateCurrencyRequest) Rates() domain.RateTriple {
	return domain.RateTriple{RateToUSD: r.RateToUSD, BuyRateToUSD: r.BuyRateToUSD, SellRateToUSD: r.SellRateToUSD}
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID          string          `json:"currencyID"`
	Name                string          `json:"name"`
	Code                string          `json:"code"`
	RateToUSD           decimal.Decimal `json:"rateToUSD"`
	BuyRateToUSD        decimal.Decimal `json:"buyRateToUSD"`
	SellRateToUSD       decimal.Decimal `json:"sellRateToUSD"`
	ProfitMarginPercent decimal.Decimal `json:"profitMarginPercent"`
	CreatedAt           time.Time       `json:"createdAt"`
	CreatedBy           string          `json:"createdBy"`
	LastUpdatedAt       time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy       string          `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO.
// The margin is passed in so the DTO layer stays free of business arithmetic.
func ToCurrencyResponse(curr *domain.Currency, margin decimal.Decimal) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID:          curr.CurrencyID,
		Name:                curr.Name,
		Code:                curr.Code,
		RateToUSD:           curr.RateToUSD,
		BuyRateToUSD:        curr.BuyRateToUSD,
		SellRateToUSD:       curr.SellRateToUSD,
		ProfitMarginPercent: margin,
		CreatedAt:           curr.CreatedAt,
		CreatedBy:           curr.CreatedBy,
		LastUpdatedAt:       curr.LastUpdatedAt,
		LastUpdatedBy:       curr.LastUpdatedBy,
	}
}

// ListCurrenciesResponse wraps the list of currencies.
type ListCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

// ListRateSnapshotsResponse wraps a currency's rate history.
type ListRateSnapshotsResponse struct {
	CurrencyID string                        `json:"currencyID"`
	Snapshots  []domain.CurrencyRateSnapshot `json:"snapshots"`
}
