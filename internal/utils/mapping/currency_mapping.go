package mapping

import (
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/kassemKu/sibai-transactions/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyID:    d.CurrencyID,
		Name:          d.Name,
		Code:          d.Code,
		RateToUSD:     d.RateToUSD,
		BuyRateToUSD:  d.BuyRateToUSD,
		SellRateToUSD: d.SellRateToUSD,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyID:    m.CurrencyID,
		Name:          m.Name,
		Code:          m.Code,
		RateToUSD:     m.RateToUSD,
		BuyRateToUSD:  m.BuyRateToUSD,
		SellRateToUSD: m.SellRateToUSD,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to a slice of domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}

func ToModelCurrencyRateSnapshot(d domain.CurrencyRateSnapshot) models.CurrencyRateSnapshot {
	return models.CurrencyRateSnapshot{
		SnapshotID:          d.SnapshotID,
		CurrencyID:          d.CurrencyID,
		SnapshotDate:        d.SnapshotDate,
		RateToUSD:           d.RateToUSD,
		ProfitMarginPercent: d.ProfitMarginPercent,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCurrencyRateSnapshot(m models.CurrencyRateSnapshot) domain.CurrencyRateSnapshot {
	return domain.CurrencyRateSnapshot{
		SnapshotID:          m.SnapshotID,
		CurrencyID:          m.CurrencyID,
		SnapshotDate:        m.SnapshotDate,
		RateToUSD:           m.RateToUSD,
		ProfitMarginPercent: m.ProfitMarginPercent,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCurrencyRateSnapshotSlice(ms []models.CurrencyRateSnapshot) []domain.CurrencyRateSnapshot {
	ds := make([]domain.CurrencyRateSnapshot, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrencyRateSnapshot(m)
	}
	return ds
}
