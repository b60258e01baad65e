package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a currency the shop trades, with its rates expressed as units per USD.
type Currency struct {
	CurrencyID    string          `json:"currencyID"`    // Primary Key (UUID)
	Name          string          `json:"name"`          // e.g., "Euro"
	Code          string          `json:"code"`          // Unique 3-letter code, e.g., "EUR"
	RateToUSD     decimal.Decimal `json:"rateToUSD"`     // Mid / reference rate
	BuyRateToUSD  decimal.Decimal `json:"buyRateToUSD"`  // Rate at which the shop buys this currency
	SellRateToUSD decimal.Decimal `json:"sellRateToUSD"` // Rate at which the shop sells this currency
	AuditFields
}

// Rates returns the currency's current rate triple.
func (c Currency) Rates() RateTriple {
	return RateTriple{
		RateToUSD:     c.RateToUSD,
		BuyRateToUSD:  c.BuyRateToUSD,
		SellRateToUSD: c.SellRateToUSD,
	}
}

// RateTriple is an immutable copy of a currency's three rates at a point in time.
type RateTriple struct {
	RateToUSD     decimal.Decimal `json:"rateToUSD"`
	BuyRateToUSD  decimal.Decimal `json:"buyRateToUSD"`
	SellRateToUSD decimal.Decimal `json:"sellRateToUSD"`
}

// IsUsable reports whether every rate is strictly positive and can be divided by.
func (r RateTriple) IsUsable() bool {
	return r.RateToUSD.IsPositive() && r.BuyRateToUSD.IsPositive() && r.SellRateToUSD.IsPositive()
}

// CurrencyRateSnapshot is the dated history record of a currency's mid rate and margin.
// There is at most one snapshot per currency per date.
type CurrencyRateSnapshot struct {
	SnapshotID          string          `json:"snapshotID"`
	CurrencyID          string          `json:"currencyID"`
	SnapshotDate        time.Time       `json:"snapshotDate"`
	RateToUSD           decimal.Decimal `json:"rateToUSD"`
	ProfitMarginPercent decimal.Decimal `json:"profitMarginPercent"`
	AuditFields
}
