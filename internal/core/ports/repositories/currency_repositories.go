package repositories

import (
	"context"

	"github.com/kassemKu/sibai-transactions/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByID retrieves a specific currency by its ID.
	FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data.
// Both methods persist the currency and upsert its rate snapshot for the snapshot's date atomically.
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency, snapshot domain.CurrencyRateSnapshot) error

	// UpdateCurrency updates an existing currency's name and rates.
	UpdateCurrency(ctx context.Context, currency domain.Currency, snapshot domain.CurrencyRateSnapshot) error
}

// CurrencyRateSnapshotReader defines read operations for the rate history
type CurrencyRateSnapshotReader interface {
	// ListRateSnapshots retrieves a currency's rate history, newest first.
	ListRateSnapshots(ctx context.Context, currencyID string) ([]domain.CurrencyRateSnapshot, error)
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
// This is a facade for clients that need access to all operations
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
	CurrencyRateSnapshotReader
}
