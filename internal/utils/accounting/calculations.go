package accounting

import (
	"fmt"

	"github.com/kassemKu/sibai-transactions/internal/apperrors"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places every monetary output is rounded to.
const MoneyPlaces int32 = 2

// RoundMoney rounds an amount to MoneyPlaces, half away from zero.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// CalculateCore converts amount of from into to through USD and attributes the shop's
// profit to each side.
//
// The source side is priced at from's sell rate and the target side at to's buy rate.
// Each side's margin is normalised into USD by dividing by that currency's own mid rate.
// Everything is computed at full precision and only the outputs are rounded.
func CalculateCore(from, to domain.Currency, amount decimal.Decimal) (domain.ConversionResult, error) {
	if !amount.IsPositive() {
		return domain.ConversionResult{}, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if err := checkRates(from, to); err != nil {
		return domain.ConversionResult{}, err
	}

	usdAmount := amount.Div(from.SellRateToUSD)
	convertedAmount := usdAmount.Mul(to.BuyRateToUSD)

	fromMargin := from.RateToUSD.Sub(from.SellRateToUSD)
	toMargin := to.BuyRateToUSD.Sub(to.RateToUSD)

	profitFromUSD := fromMargin.Mul(usdAmount).Div(from.RateToUSD)
	profitToUSD := toMargin.Mul(usdAmount).Div(to.RateToUSD)

	original, converted := RoundMoney(amount), RoundMoney(convertedAmount)
	if !original.IsPositive() {
		return domain.ConversionResult{}, fmt.Errorf("%w: amount %s rounds to zero", apperrors.ErrValidation, amount)
	}
	if !converted.IsPositive() {
		return domain.ConversionResult{}, fmt.Errorf("%w: %s %s converts to less than one cent of %s",
			apperrors.ErrValidation, amount, from.Code, to.Code)
	}

	return domain.ConversionResult{
		FromCurrencyID:  from.CurrencyID,
		ToCurrencyID:    to.CurrencyID,
		FromRates:       from.Rates(),
		ToRates:         to.Rates(),
		OriginalAmount:  original,
		USDAmount:       RoundMoney(usdAmount),
		ConvertedAmount: converted,
		ProfitFromUSD:   RoundMoney(profitFromUSD),
		ProfitToUSD:     RoundMoney(profitToUSD),
		TotalProfitUSD:  RoundMoney(profitFromUSD.Add(profitToUSD)),
	}, nil
}

// CalculateProfitsFromConvertedAmount mirrors CalculateCore when the known quantity is the
// target-side amount. Buy and sell are swapped relative to the forward direction.
func CalculateProfitsFromConvertedAmount(from, to domain.Currency, convertedAmount decimal.Decimal) (domain.ProfitResult, error) {
	if !convertedAmount.IsPositive() {
		return domain.ProfitResult{}, fmt.Errorf("%w: converted amount must be positive", apperrors.ErrValidation)
	}
	if err := checkRates(from, to); err != nil {
		return domain.ProfitResult{}, err
	}

	usdAmount := convertedAmount.Div(to.SellRateToUSD)

	fromMargin := from.RateToUSD.Sub(from.BuyRateToUSD)
	toMargin := to.SellRateToUSD.Sub(to.RateToUSD)

	profitFromUSD := fromMargin.Mul(usdAmount).Div(from.RateToUSD)
	profitToUSD := toMargin.Mul(usdAmount).Div(to.RateToUSD)

	converted := RoundMoney(convertedAmount)
	if !converted.IsPositive() {
		return domain.ProfitResult{}, fmt.Errorf("%w: converted amount %s rounds to zero", apperrors.ErrValidation, convertedAmount)
	}

	return domain.ProfitResult{
		FromCurrencyID:  from.CurrencyID,
		ToCurrencyID:    to.CurrencyID,
		FromRates:       from.Rates(),
		ToRates:         to.Rates(),
		ConvertedAmount: converted,
		USDAmount:       RoundMoney(usdAmount),
		ProfitFromUSD:   RoundMoney(profitFromUSD),
		ProfitToUSD:     RoundMoney(profitToUSD),
		TotalProfitUSD:  RoundMoney(profitFromUSD.Add(profitToUSD)),
	}, nil
}

// ProfitMarginPercent is the spread between sell and buy expressed as a percentage of the mid rate.
func ProfitMarginPercent(rates domain.RateTriple) decimal.Decimal {
	if !rates.RateToUSD.IsPositive() {
		return decimal.Zero
	}
	return rates.SellRateToUSD.Sub(rates.BuyRateToUSD).
		Div(rates.RateToUSD).
		Mul(decimal.NewFromInt(100)).
		Round(4)
}

func checkRates(from, to domain.Currency) error {
	if !from.Rates().IsUsable() {
		return fmt.Errorf("%w: currency %s has a non-positive rate", apperrors.ErrValidation, from.Code)
	}
	if !to.Rates().IsUsable() {
		return fmt.Errorf("%w: currency %s has a non-positive rate", apperrors.ErrValidation, to.Code)
	}
	return nil
}
