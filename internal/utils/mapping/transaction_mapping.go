package mapping

import (
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/kassemKu/sibai-transactions/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		CashSessionID:     d.CashSessionID,
		FromCurrencyID:    d.FromCurrencyID,
		ToCurrencyID:      d.ToCurrencyID,
		OriginalAmount:    d.OriginalAmount,
		ConvertedAmount:   d.ConvertedAmount,
		USDAmount:         d.USDAmount,
		ProfitFromUSD:     d.ProfitFromUSD,
		ProfitToUSD:       d.ProfitToUSD,
		TotalProfitUSD:    d.TotalProfitUSD,
		FromRateToUSD:     d.FromRates.RateToUSD,
		FromBuyRateToUSD:  d.FromRates.BuyRateToUSD,
		FromSellRateToUSD: d.FromRates.SellRateToUSD,
		ToRateToUSD:       d.ToRates.RateToUSD,
		ToBuyRateToUSD:    d.ToRates.BuyRateToUSD,
		ToSellRateToUSD:   d.ToRates.SellRateToUSD,
		AssignedTo:        d.AssignedTo,
		Status:            string(d.Status),
		Notes:             d.Notes,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		CashSessionID:   m.CashSessionID,
		FromCurrencyID:  m.FromCurrencyID,
		ToCurrencyID:    m.ToCurrencyID,
		OriginalAmount:  m.OriginalAmount,
		ConvertedAmount: m.ConvertedAmount,
		USDAmount:       m.USDAmount,
		ProfitFromUSD:   m.ProfitFromUSD,
		ProfitToUSD:     m.ProfitToUSD,
		TotalProfitUSD:  m.TotalProfitUSD,
		FromRates: domain.RateTriple{
			RateToUSD:     m.FromRateToUSD,
			BuyRateToUSD:  m.FromBuyRateToUSD,
			SellRateToUSD: m.FromSellRateToUSD,
		},
		ToRates: domain.RateTriple{
			RateToUSD:     m.ToRateToUSD,
			BuyRateToUSD:  m.ToBuyRateToUSD,
			SellRateToUSD: m.ToSellRateToUSD,
		},
		AssignedTo:  m.AssignedTo,
		Status:      domain.TransactionStatus(m.Status),
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

func ToModelCashMovement(d domain.CashMovement) models.CashMovement {
	return models.CashMovement{
		CashMovementID: d.CashMovementID,
		TransactionID:  d.TransactionID,
		CashSessionID:  d.CashSessionID,
		CurrencyID:     d.CurrencyID,
		Type:           string(d.Type),
		Amount:         d.Amount,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}
