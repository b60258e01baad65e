package accounting_test

import (
	"testing"

	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/kassemKu/sibai-transactions/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSumCompletedMovements_SkipsPendingAndCancelled(t *testing.T) {
	lines := []domain.MovementLine{
		{CurrencyID: "usd", Type: domain.MovementIn, Amount: dec("100"), TransactionStatus: domain.TransactionCompleted},
		{CurrencyID: "eur", Type: domain.MovementOut, Amount: dec("92.50"), TransactionStatus: domain.TransactionCompleted},
		{CurrencyID: "usd", Type: domain.MovementIn, Amount: dec("40"), TransactionStatus: domain.TransactionPending},
		{CurrencyID: "eur", Type: domain.MovementOut, Amount: dec("37"), TransactionStatus: domain.TransactionCancelled},
		{CurrencyID: "eur", Type: domain.MovementIn, Amount: dec("10"), TransactionStatus: domain.TransactionCompleted},
	}

	totals := accounting.SumCompletedMovements(lines)

	assert.Equal(t, "100.00", totals["usd"].In.StringFixed(2))
	assert.True(t, totals["usd"].Out.IsZero())
	assert.Equal(t, "10.00", totals["eur"].In.StringFixed(2))
	assert.Equal(t, "92.50", totals["eur"].Out.StringFixed(2))
}

func TestSumCompletedMovements_Empty(t *testing.T) {
	totals := accounting.SumCompletedMovements(nil)
	assert.Empty(t, totals)

	// A currency with no movements closes at its opening balance.
	opening := dec("1234.56")
	assert.True(t, accounting.SystemClosing(opening, totals["usd"]).Equal(opening))
}

func TestSumOperatorTransactions_OnlyOwnCompleted(t *testing.T) {
	txns := []domain.Transaction{
		{FromCurrencyID: "usd", ToCurrencyID: "eur", OriginalAmount: dec("100"), ConvertedAmount: dec("92.50"),
			Status: domain.TransactionCompleted, AuditFields: domain.AuditFields{CreatedBy: "alice"}},
		{FromCurrencyID: "eur", ToCurrencyID: "usd", OriginalAmount: dec("50"), ConvertedAmount: dec("53.48"),
			Status: domain.TransactionCompleted, AuditFields: domain.AuditFields{CreatedBy: "alice"}},
		{FromCurrencyID: "usd", ToCurrencyID: "eur", OriginalAmount: dec("500"), ConvertedAmount: dec("462.50"),
			Status: domain.TransactionCompleted, AuditFields: domain.AuditFields{CreatedBy: "bob"}},
		{FromCurrencyID: "usd", ToCurrencyID: "eur", OriginalAmount: dec("10"), ConvertedAmount: dec("9.25"),
			Status: domain.TransactionPending, AuditFields: domain.AuditFields{CreatedBy: "alice"}},
	}

	alice := accounting.SumOperatorTransactions(txns, "alice")
	assert.Equal(t, "100.00", alice["usd"].In.StringFixed(2))
	assert.Equal(t, "53.48", alice["usd"].Out.StringFixed(2))
	assert.Equal(t, "50.00", alice["eur"].In.StringFixed(2))
	assert.Equal(t, "92.50", alice["eur"].Out.StringFixed(2))

	bob := accounting.SumOperatorTransactions(txns, "bob")
	assert.Equal(t, "500.00", bob["usd"].In.StringFixed(2))
	assert.Equal(t, "462.50", bob["eur"].Out.StringFixed(2))
	assert.NotContains(t, bob, "gbp")
}

func TestSystemClosingAndDifference(t *testing.T) {
	system := accounting.SystemClosing(dec("1000"), accounting.Totals{In: dec("250"), Out: dec("100.25")})
	assert.Equal(t, "1149.75", system.StringFixed(2))

	tests := []struct {
		name   string
		actual decimal.Decimal
		want   string
	}{
		{name: "surplus", actual: dec("1150"), want: "0.25"},
		{name: "shortage", actual: dec("1140"), want: "-9.75"},
		{name: "balanced", actual: dec("1149.75"), want: "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.Difference(tt.actual, system).StringFixed(2))
		})
	}
}

func TestOperatorSystemBalances(t *testing.T) {
	opening := domain.BalanceMap{"usd": dec("500"), "eur": dec("300"), "try": dec("1000")}
	totals := map[string]accounting.Totals{
		"usd": {In: dec("100")},
		"eur": {Out: dec("92.50")},
		"gbp": {In: dec("20")},
	}

	system := accounting.OperatorSystemBalances(opening, totals)

	assert.Len(t, system, 4)
	assert.Equal(t, "600.00", system["usd"].StringFixed(2))
	assert.Equal(t, "207.50", system["eur"].StringFixed(2))
	assert.Equal(t, "1000.00", system["try"].StringFixed(2))
	assert.Equal(t, "20.00", system["gbp"].StringFixed(2))
}
