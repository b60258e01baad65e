package accounting_test

import (
	"testing"

	"github.com/kassemKu/sibai-transactions/internal/apperrors"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/kassemKu/sibai-transactions/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func currency(id, code, mid, buy, sell string) domain.Currency {
	return domain.Currency{
		CurrencyID:    id,
		Code:          code,
		RateToUSD:     dec(mid),
		BuyRateToUSD:  dec(buy),
		SellRateToUSD: dec(sell),
	}
}

var (
	usd = currency("cur-usd", "USD", "1", "1", "1")
	eur = currency("cur-eur", "EUR", "0.93", "0.925", "0.935")
	try = currency("cur-try", "TRY", "32.5", "32.2", "32.8")
)

func TestCalculateCore_USDToEUR(t *testing.T) {
	res, err := accounting.CalculateCore(usd, eur, dec("100"))
	require.NoError(t, err)

	assert.Equal(t, "100.00", res.USDAmount.StringFixed(2))
	assert.Equal(t, "92.50", res.ConvertedAmount.StringFixed(2))
	assert.Equal(t, "0.00", res.ProfitFromUSD.StringFixed(2))
	assert.Equal(t, "-0.54", res.ProfitToUSD.StringFixed(2))
	assert.Equal(t, "-0.54", res.TotalProfitUSD.StringFixed(2))
	assert.Equal(t, usd.Rates(), res.FromRates)
	assert.Equal(t, eur.Rates(), res.ToRates)
	assert.Equal(t, "cur-usd", res.FromCurrencyID)
	assert.Equal(t, "cur-eur", res.ToCurrencyID)
}

func TestCalculateCore_EURToUSD(t *testing.T) {
	res, err := accounting.CalculateCore(eur, usd, dec("100"))
	require.NoError(t, err)

	assert.Equal(t, "106.95", res.USDAmount.StringFixed(2))
	assert.Equal(t, "106.95", res.ConvertedAmount.StringFixed(2))
	assert.Equal(t, "-0.58", res.ProfitFromUSD.StringFixed(2))
	assert.Equal(t, "0.00", res.ProfitToUSD.StringFixed(2))
	assert.Equal(t, "-0.58", res.TotalProfitUSD.StringFixed(2))
}

func TestCalculateCore_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.Currency
		to     domain.Currency
		amount decimal.Decimal
	}{
		{name: "zero amount", from: usd, to: eur, amount: decimal.Zero},
		{name: "negative amount", from: usd, to: eur, amount: dec("-5")},
		{name: "zero sell rate on source", from: currency("x", "XXX", "1", "1", "0"), to: eur, amount: dec("10")},
		{name: "zero mid rate on target", from: usd, to: currency("y", "YYY", "0", "1", "1"), amount: dec("10")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := accounting.CalculateCore(tt.from, tt.to, tt.amount)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

// Recomputing the total from the returned rate snapshots must give back the stored figure.
func TestCalculateCore_TotalReproducibleFromSnapshots(t *testing.T) {
	pairs := [][2]domain.Currency{{usd, eur}, {eur, usd}, {eur, try}, {try, eur}, {usd, try}, {try, usd}}
	amounts := []string{"0.5", "1", "73.25", "100", "2500.5", "999999.99"}

	for _, pair := range pairs {
		for _, a := range amounts {
			res, err := accounting.CalculateCore(pair[0], pair[1], dec(a))
			require.NoError(t, err)

			fr, tr := res.FromRates, res.ToRates
			usdAmount := res.OriginalAmount.Div(fr.SellRateToUSD)
			profitFrom := fr.RateToUSD.Sub(fr.SellRateToUSD).Mul(usdAmount).Div(fr.RateToUSD)
			profitTo := tr.BuyRateToUSD.Sub(tr.RateToUSD).Mul(usdAmount).Div(tr.RateToUSD)

			recomputed := profitFrom.Add(profitTo).Round(2)
			assert.True(t, recomputed.Equal(res.TotalProfitUSD),
				"%s->%s %s: recomputed %s, stored %s", pair[0].Code, pair[1].Code, a, recomputed, res.TotalProfitUSD)
		}
	}
}

func TestCalculateProfitsFromConvertedAmount(t *testing.T) {
	res, err := accounting.CalculateProfitsFromConvertedAmount(usd, eur, dec("92.5"))
	require.NoError(t, err)

	assert.Equal(t, "92.50", res.ConvertedAmount.StringFixed(2))
	assert.Equal(t, "98.93", res.USDAmount.StringFixed(2))
	assert.Equal(t, "0.00", res.ProfitFromUSD.StringFixed(2))
	assert.Equal(t, "0.53", res.ProfitToUSD.StringFixed(2))
	assert.Equal(t, "0.53", res.TotalProfitUSD.StringFixed(2))
}

func TestCalculateProfitsFromConvertedAmount_UsesBuyRateOnSource(t *testing.T) {
	// EUR -> USD, 100 USD paid out: usd = 100, from margin = 0.93 - 0.925 = 0.005.
	res, err := accounting.CalculateProfitsFromConvertedAmount(eur, usd, dec("100"))
	require.NoError(t, err)

	assert.Equal(t, "100.00", res.USDAmount.StringFixed(2))
	assert.Equal(t, "0.54", res.ProfitFromUSD.StringFixed(2))
	assert.Equal(t, "0.00", res.ProfitToUSD.StringFixed(2))
	assert.Equal(t, "0.54", res.TotalProfitUSD.StringFixed(2))
}

func TestCalculateProfitsFromConvertedAmount_RejectsNonPositive(t *testing.T) {
	_, err := accounting.CalculateProfitsFromConvertedAmount(usd, eur, decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = accounting.CalculateProfitsFromConvertedAmount(usd, eur, dec("0.004"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCalculateCore_RejectsAmountsRoundingToZero(t *testing.T) {
	jpy := currency("cur-jpy", "JPY", "150", "149", "151")

	tests := []struct {
		name   string
		from   domain.Currency
		to     domain.Currency
		amount string
	}{
		// 0.004 rounds to 0.00 on the customer side.
		{name: "original below one cent", from: usd, to: eur, amount: "0.004"},
		// 0.5 JPY / 151 * 0.925 = 0.0031 EUR paid out.
		{name: "payout below one cent", from: jpy, to: eur, amount: "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := accounting.CalculateCore(tt.from, tt.to, dec(tt.amount))
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	// Smallest amounts that survive rounding on both sides are still accepted.
	res, err := accounting.CalculateCore(usd, eur, dec("0.01"))
	require.NoError(t, err)
	assert.Equal(t, "0.01", res.OriginalAmount.StringFixed(2))
	assert.Equal(t, "0.01", res.ConvertedAmount.StringFixed(2))
}

func TestProfitMarginPercent(t *testing.T) {
	assert.Equal(t, "1.0753", accounting.ProfitMarginPercent(eur.Rates()).StringFixed(4))
	assert.True(t, accounting.ProfitMarginPercent(usd.Rates()).IsZero())
	assert.True(t, accounting.ProfitMarginPercent(domain.RateTriple{}).IsZero())
}
