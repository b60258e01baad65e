package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kassemKu/sibai-transactions/internal/apperrors"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	portsrepo "github.com/kassemKu/sibai-transactions/internal/core/ports/repositories"
	"github.com/kassemKu/sibai-transactions/internal/models"
	"github.com/kassemKu/sibai-transactions/internal/utils/mapping"
)

const currencyColumns = `currency_id, name, code, rate_to_usd, buy_rate_to_usd, sell_rate_to_usd,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

func scanCurrency(row scanner) (models.Currency, error) {
	var c models.Currency
	err := row.Scan(
		&c.CurrencyID,
		&c.Name,
		&c.Code,
		&c.RateToUSD,
		&c.BuyRateToUSD,
		&c.SellRateToUSD,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// SaveCurrency inserts a currency and its first rate snapshot in one transaction.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency, snapshot domain.CurrencyRateSnapshot) error {
	m := mapping.ToModelCurrency(currency)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err = tx.Exec(ctx, query,
		m.CurrencyID,
		m.Name,
		m.Code,
		m.RateToUSD,
		m.BuyRateToUSD,
		m.SellRateToUSD,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("currency code " + m.Code + " already exists")
		}
		return fmt.Errorf("failed to save currency %s: %w", m.Code, err)
	}

	if err := upsertRateSnapshot(ctx, tx, snapshot); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateCurrency updates a currency's name and rates and upserts the day's snapshot.
func (r *PgxCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency, snapshot domain.CurrencyRateSnapshot) error {
	m := mapping.ToModelCurrency(currency)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE currencies
		SET name = $2, rate_to_usd = $3, buy_rate_to_usd = $4, sell_rate_to_usd = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE currency_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.CurrencyID,
		m.Name,
		m.RateToUSD,
		m.BuyRateToUSD,
		m.SellRateToUSD,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update currency %s: %w", m.CurrencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := upsertRateSnapshot(ctx, tx, snapshot); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// upsertRateSnapshot keeps at most one snapshot per currency per date; the latest write of the day wins.
func upsertRateSnapshot(ctx context.Context, tx pgx.Tx, snapshot domain.CurrencyRateSnapshot) error {
	m := mapping.ToModelCurrencyRateSnapshot(snapshot)
	query := `
		INSERT INTO currency_rate_snapshots (snapshot_id, currency_id, snapshot_date, rate_to_usd, profit_margin_percent,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (currency_id, snapshot_date) DO UPDATE SET
			rate_to_usd = EXCLUDED.rate_to_usd,
			profit_margin_percent = EXCLUDED.profit_margin_percent,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := tx.Exec(ctx, query,
		m.SnapshotID,
		m.CurrencyID,
		m.SnapshotDate,
		m.RateToUSD,
		m.ProfitMarginPercent,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rate snapshot of %s: %w", m.CurrencyID, err)
	}
	return nil
}

// FindCurrencyByID retrieves a currency by its ID.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_id = $1;`
	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, currencyID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find currency %s", currencyID)
	}
	d := mapping.ToDomainCurrency(m)
	return &d, nil
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE code = $1;`
	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		return nil, notFoundOr(err, "failed to find currency by code %s", code)
	}
	d := mapping.ToDomainCurrency(m)
	return &d, nil
}

// ListCurrencies retrieves all currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}
	return mapping.ToDomainCurrencySlice(ms), nil
}

// ListRateSnapshots retrieves a currency's rate history, newest first.
func (r *PgxCurrencyRepository) ListRateSnapshots(ctx context.Context, currencyID string) ([]domain.CurrencyRateSnapshot, error) {
	query := `
		SELECT snapshot_id, currency_id, snapshot_date, rate_to_usd, profit_margin_percent,
			created_at, created_by, last_updated_at, last_updated_by
		FROM currency_rate_snapshots
		WHERE currency_id = $1
		ORDER BY snapshot_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate snapshots of %s: %w", currencyID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CurrencyRateSnapshot, error) {
		var s models.CurrencyRateSnapshot
		err := row.Scan(
			&s.SnapshotID,
			&s.CurrencyID,
			&s.SnapshotDate,
			&s.RateToUSD,
			&s.ProfitMarginPercent,
			&s.CreatedAt,
			&s.CreatedBy,
			&s.LastUpdatedAt,
			&s.LastUpdatedBy,
		)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan rate snapshots of %s: %w", currencyID, err)
	}
	return mapping.ToDomainCurrencyRateSnapshotSlice(ms), nil
}
