package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kassemKu/sibai-transactions/internal/apperrors"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	portsrepo "github.com/kassemKu/sibai-transactions/internal/core/ports/repositories"
	portssvc "github.com/kassemKu/sibai-transactions/internal/core/ports/services"
	"github.com/kassemKu/sibai-transactions/internal/dto"
	"github.com/kassemKu/sibai-transactions/internal/utils/accounting"
)

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates the currency ledger service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, actorID string) (*domain.Currency, error) {
	rates := req.Rates()
	if !rates.IsUsable() {
		return nil, fmt.Errorf("%w: all rates must be positive", apperrors.ErrValidation)
	}

	_, err := s.currencyRepo.FindCurrencyByCode(ctx, req.Code)
	if err == nil {
		return nil, fmt.Errorf("%w: currency code %s already exists", apperrors.ErrConflict, req.Code)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check currency code", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	ts := now()
	currency := domain.Currency{
		CurrencyID:    uuid.NewString(),
		Name:          req.Name,
		Code:          req.Code,
		RateToUSD:     rates.RateToUSD,
		BuyRateToUSD:  rates.BuyRateToUSD,
		SellRateToUSD: rates.SellRateToUSD,
		AuditFields: domain.AuditFields{
			CreatedAt:     ts,
			CreatedBy:     actorID,
			LastUpdatedAt: ts,
			LastUpdatedBy: actorID,
		},
	}
	s.warnOnInvertedSpread(ctx, currency)

	if err := s.currencyRepo.SaveCurrency(ctx, currency, rateSnapshot(currency, ts, actorID)); err != nil {
		s.LogError(ctx, err, "Failed to save currency", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	s.LogInfo(ctx, "Currency created", slog.String("currency_id", currency.CurrencyID), slog.String("code", currency.Code))
	return &currency, nil
}

func (s *currencyService) UpdateCurrency(ctx context.Context, currencyID string, req dto.UpdateCurrencyRequest, actorID string) (*domain.Currency, error) {
	rates := req.Rates()
	if !rates.IsUsable() {
		return nil, fmt.Errorf("%w: all rates must be positive", apperrors.ErrValidation)
	}

	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency %s: %w", currencyID, err)
	}

	ts := now()
	currency.Name = req.Name
	currency.RateToUSD = rates.RateToUSD
	currency.BuyRateToUSD = rates.BuyRateToUSD
	currency.SellRateToUSD = rates.SellRateToUSD
	currency.LastUpdatedAt = ts
	currency.LastUpdatedBy = actorID
	s.warnOnInvertedSpread(ctx, *currency)

	if err := s.currencyRepo.UpdateCurrency(ctx, *currency, rateSnapshot(*currency, ts, actorID)); err != nil {
		s.LogError(ctx, err, "Failed to update currency", slog.String("currency_id", currencyID))
		return nil, fmt.Errorf("failed to update currency %s: %w", currencyID, err)
	}

	s.LogInfo(ctx, "Currency rates updated", slog.String("currency_id", currencyID),
		slog.String("rate_to_usd", currency.RateToUSD.String()))
	return currency, nil
}

func (s *currencyService) GetCurrency(ctx context.Context, currencyID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency %s: %w", currencyID, err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

func (s *currencyService) ListRateSnapshots(ctx context.Context, currencyID string) ([]domain.CurrencyRateSnapshot, error) {
	if _, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID); err != nil {
		return nil, fmt.Errorf("failed to get currency %s: %w", currencyID, err)
	}
	snapshots, err := s.currencyRepo.ListRateSnapshots(ctx, currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate snapshots for %s: %w", currencyID, err)
	}
	if snapshots == nil {
		return []domain.CurrencyRateSnapshot{}, nil
	}
	return snapshots, nil
}

// warnOnInvertedSpread logs currencies whose rates do not satisfy buy <= mid <= sell.
// Such rates are accepted and produce negative margins.
func (s *currencyService) warnOnInvertedSpread(ctx context.Context, c domain.Currency) {
	if c.BuyRateToUSD.GreaterThan(c.RateToUSD) || c.RateToUSD.GreaterThan(c.SellRateToUSD) {
		s.LogWarn(ctx, "Currency rates are not ordered buy <= mid <= sell",
			slog.String("code", c.Code),
			slog.String("buy", c.BuyRateToUSD.String()),
			slog.String("mid", c.RateToUSD.String()),
			slog.String("sell", c.SellRateToUSD.String()))
	}
}

func rateSnapshot(c domain.Currency, ts time.Time, actorID string) domain.CurrencyRateSnapshot {
	return domain.CurrencyRateSnapshot{
		SnapshotID:          uuid.NewString(),
		CurrencyID:          c.CurrencyID,
		SnapshotDate:        ts.Truncate(24 * time.Hour),
		RateToUSD:           c.RateToUSD,
		ProfitMarginPercent: accounting.ProfitMarginPercent(c.Rates()),
		AuditFields: domain.AuditFields{
			CreatedAt:     ts,
			CreatedBy:     actorID,
			LastUpdatedAt: ts,
			LastUpdatedBy: actorID,
		},
	}
}
