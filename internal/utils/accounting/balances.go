package accounting

import (
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Totals holds the inbound and outbound sums of one currency.
type Totals struct {
	In  decimal.Decimal
	Out decimal.Decimal
}

// SumCompletedMovements totals movement lines per currency. Lines whose transaction is not
// completed are skipped, so pending and cancelled transactions never affect balances.
func SumCompletedMovements(lines []domain.MovementLine) map[string]Totals {
	totals := make(map[string]Totals)
	for _, line := range lines {
		if line.TransactionStatus != domain.TransactionCompleted {
			continue
		}
		t := totals[line.CurrencyID]
		switch line.Type {
		case domain.MovementIn:
			t.In = t.In.Add(line.Amount)
		case domain.MovementOut:
			t.Out = t.Out.Add(line.Amount)
		}
		totals[line.CurrencyID] = t
	}
	return totals
}

// SumOperatorTransactions totals one operator's completed transactions per currency.
// A currency's in is the original amount of transactions where it was the source side;
// its out is the converted amount of transactions where it was the target side.
func SumOperatorTransactions(txns []domain.Transaction, userID string) map[string]Totals {
	totals := make(map[string]Totals)
	for _, txn := range txns {
		if txn.Status != domain.TransactionCompleted || txn.CreatedBy != userID {
			continue
		}
		from := totals[txn.FromCurrencyID]
		from.In = from.In.Add(txn.OriginalAmount)
		totals[txn.FromCurrencyID] = from

		to := totals[txn.ToCurrencyID]
		to.Out = to.Out.Add(txn.ConvertedAmount)
		totals[txn.ToCurrencyID] = to
	}
	return totals
}

// SystemClosing is the balance the till should hold: opening + in - out.
func SystemClosing(opening decimal.Decimal, totals Totals) decimal.Decimal {
	return opening.Add(totals.In).Sub(totals.Out)
}

// Difference is actual - system. Positive means a surplus, negative a shortage.
func Difference(actual, system decimal.Decimal) decimal.Decimal {
	return actual.Sub(system)
}

// OperatorSystemBalances is the cashier's expected drawer per currency: the declared opening
// plus the operator's completed in minus out. Currencies traded without a declared opening
// start from zero.
func OperatorSystemBalances(opening domain.BalanceMap, totals map[string]Totals) domain.BalanceMap {
	system := make(domain.BalanceMap, len(opening)+len(totals))
	for currencyID, amount := range opening {
		system[currencyID] = SystemClosing(amount, totals[currencyID])
	}
	for currencyID, t := range totals {
		if _, ok := opening[currencyID]; !ok {
			system[currencyID] = SystemClosing(decimal.Zero, t)
		}
	}
	return system
}
