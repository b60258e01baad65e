package services

import (
	"context"
	"fmt"

	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	portsrepo "github.com/kassemKu/sibai-transactions/internal/core/ports/repositories"
	portssvc "github.com/kassemKu/sibai-transactions/internal/core/ports/services"
	"github.com/kassemKu/sibai-transactions/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type conversionService struct {
	BaseService
	currencyRepo portsrepo.CurrencyReader
}

// NewConversionService creates the conversion calculator service.
func NewConversionService(currencyRepo portsrepo.CurrencyReader) portssvc.ConversionSvc {
	return &conversionService{currencyRepo: currencyRepo}
}

var _ portssvc.ConversionSvc = (*conversionService)(nil)

func (s *conversionService) Calculate(ctx context.Context, fromCurrencyID, toCurrencyID string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	from, to, err := loadPair(ctx, s.currencyRepo, fromCurrencyID, toCurrencyID)
	if err != nil {
		return nil, err
	}
	res, err := accounting.CalculateCore(*from, *to, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate conversion: %w", err)
	}
	return &res, nil
}

func (s *conversionService) CalculateReverseProfits(ctx context.Context, fromCurrencyID, toCurrencyID string, convertedAmount decimal.Decimal) (*domain.ProfitResult, error) {
	from, to, err := loadPair(ctx, s.currencyRepo, fromCurrencyID, toCurrencyID)
	if err != nil {
		return nil, err
	}
	res, err := accounting.CalculateProfitsFromConvertedAmount(*from, *to, convertedAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate reverse profits: %w", err)
	}
	return &res, nil
}

// loadPair reads both currencies fresh from the store.
func loadPair(ctx context.Context, repo portsrepo.CurrencyReader, fromID, toID string) (*domain.Currency, *domain.Currency, error) {
	from, err := repo.FindCurrencyByID(ctx, fromID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get source currency %s: %w", fromID, err)
	}
	to, err := repo.FindCurrencyByID(ctx, toID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get target currency %s: %w", toID, err)
	}
	return from, to, nil
}
