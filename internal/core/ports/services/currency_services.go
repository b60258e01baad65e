package services

import (
	"context"

	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/kassemKu/sibai-transactions/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrency retrieves a specific currency by its ID.
	GetCurrency(ctx context.Context, currencyID string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// ListRateSnapshots retrieves a currency's rate history, newest first.
	ListRateSnapshots(ctx context.Context, currencyID string) ([]domain.CurrencyRateSnapshot, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency and records today's rate snapshot.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, actorID string) (*domain.Currency, error)

	// UpdateCurrency changes a currency's name and rates and records today's rate snapshot.
	UpdateCurrency(ctx context.Context, currencyID string, req dto.UpdateCurrencyRequest, actorID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
