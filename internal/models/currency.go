package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is a row of the currencies table.
type Currency struct {
	CurrencyID    string          `db:"currency_id"`
	Name          string          `db:"name"`
	Code          string          `db:"code"` // Unique
	RateToUSD     decimal.Decimal `db:"rate_to_usd"`
	BuyRateToUSD  decimal.Decimal `db:"buy_rate_to_usd"`
	SellRateToUSD decimal.Decimal `db:"sell_rate_to_usd"`
	AuditFields
}

// CurrencyRateSnapshot is a row of currency_rate_snapshots, unique on (currency_id, snapshot_date).
type CurrencyRateSnapshot struct {
	SnapshotID          string          `db:"snapshot_id"`
	CurrencyID          string          `db:"currency_id"`
	SnapshotDate        time.Time       `db:"snapshot_date"`
	RateToUSD           decimal.Decimal `db:"rate_to_usd"`
	ProfitMarginPercent decimal.Decimal `db:"profit_margin_percent"`
	AuditFields
}
