package mapping

import (
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/kassemKu/sibai-transactions/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelCashSession converts a domain CashSession to a model CashSession
func ToModelCashSession(d domain.CashSession) (models.CashSession, error) {
	openRates, err := EncodeRateSnapshot(d.OpenExchangeRates)
	if err != nil {
		return models.CashSession{}, err
	}
	closeRates, err := EncodeRateSnapshot(d.CloseExchangeRates)
	if err != nil {
		return models.CashSession{}, err
	}
	return models.CashSession{
		CashSessionID:      d.CashSessionID,
		Status:             string(d.Status),
		OpenedAt:           d.OpenedAt,
		OpenedBy:           d.OpenedBy,
		ClosedAt:           d.ClosedAt,
		ClosedBy:           d.ClosedBy,
		OpenExchangeRates:  openRates,
		CloseExchangeRates: closeRates,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainCashSession converts a model CashSession to a domain CashSession
func ToDomainCashSession(m models.CashSession) (domain.CashSession, error) {
	openRates, err := DecodeRateSnapshot(m.OpenExchangeRates)
	if err != nil {
		return domain.CashSession{}, err
	}
	if openRates == nil {
		openRates = domain.RateSnapshot{}
	}
	closeRates, err := DecodeRateSnapshot(m.CloseExchangeRates)
	if err != nil {
		return domain.CashSession{}, err
	}
	return domain.CashSession{
		CashSessionID:      m.CashSessionID,
		Status:             domain.SessionStatus(m.Status),
		OpenedAt:           m.OpenedAt,
		OpenedBy:           m.OpenedBy,
		ClosedAt:           m.ClosedAt,
		ClosedBy:           m.ClosedBy,
		OpenExchangeRates:  openRates,
		CloseExchangeRates: closeRates,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}, nil
}

func ToModelCashBalance(d domain.CashBalance) models.CashBalance {
	return models.CashBalance{
		CashBalanceID:        d.CashBalanceID,
		CashSessionID:        d.CashSessionID,
		CurrencyID:           d.CurrencyID,
		OpeningBalance:       d.OpeningBalance,
		TotalIn:              d.TotalIn,
		TotalOut:             d.TotalOut,
		ClosingBalance:       d.ClosingBalance,
		ActualClosingBalance: toNullDecimal(d.ActualClosingBalance),
		Difference:           toNullDecimal(d.Difference),
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCashBalance(m models.CashBalance) domain.CashBalance {
	return domain.CashBalance{
		CashBalanceID:        m.CashBalanceID,
		CashSessionID:        m.CashSessionID,
		CurrencyID:           m.CurrencyID,
		OpeningBalance:       m.OpeningBalance,
		TotalIn:              m.TotalIn,
		TotalOut:             m.TotalOut,
		ClosingBalance:       m.ClosingBalance,
		ActualClosingBalance: fromNullDecimal(m.ActualClosingBalance),
		Difference:           fromNullDecimal(m.Difference),
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCashBalanceSlice(ms []models.CashBalance) []domain.CashBalance {
	ds := make([]domain.CashBalance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCashBalance(m)
	}
	return ds
}

// ToModelCasherCashSession converts a domain CasherCashSession to a model CasherCashSession
func ToModelCasherCashSession(d domain.CasherCashSession) (models.CasherCashSession, error) {
	opening, err := EncodeBalanceMap(d.OpeningBalances)
	if err != nil {
		return models.CasherCashSession{}, err
	}
	system, err := EncodeBalanceMap(d.SystemBalances)
	if err != nil {
		return models.CasherCashSession{}, err
	}
	actual, err := EncodeBalanceMap(d.ActualClosingBalances)
	if err != nil {
		return models.CasherCashSession{}, err
	}
	return models.CasherCashSession{
		CasherSessionID:       d.CasherSessionID,
		CashSessionID:         d.CashSessionID,
		CasherID:              d.CasherID,
		Status:                string(d.Status),
		OpeningBalances:       opening,
		SystemBalances:        system,
		ActualClosingBalances: actual,
		OpenedAt:              d.OpenedAt,
		OpenedBy:              d.OpenedBy,
		ClosedAt:              d.ClosedAt,
		ClosedBy:              d.ClosedBy,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainCasherCashSession converts a model CasherCashSession to a domain CasherCashSession
func ToDomainCasherCashSession(m models.CasherCashSession) (domain.CasherCashSession, error) {
	opening, err := DecodeBalanceMap(m.OpeningBalances)
	if err != nil {
		return domain.CasherCashSession{}, err
	}
	system, err := DecodeBalanceMap(m.SystemBalances)
	if err != nil {
		return domain.CasherCashSession{}, err
	}
	actual, err := DecodeBalanceMap(m.ActualClosingBalances)
	if err != nil {
		return domain.CasherCashSession{}, err
	}
	return domain.CasherCashSession{
		CasherSessionID:       m.CasherSessionID,
		CashSessionID:         m.CashSessionID,
		CasherID:              m.CasherID,
		Status:                domain.SessionStatus(m.Status),
		OpeningBalances:       opening,
		SystemBalances:        system,
		ActualClosingBalances: actual,
		OpenedAt:              m.OpenedAt,
		OpenedBy:              m.OpenedBy,
		ClosedAt:              m.ClosedAt,
		ClosedBy:              m.ClosedBy,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}, nil
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
