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

const transactionColumns = `transaction_id, cash_session_id, from_currency_id, to_currency_id,
	original_amount, converted_amount, usd_amount, profit_from_usd, profit_to_usd, total_profit_usd,
	from_rate_to_usd, from_buy_rate_to_usd, from_sell_rate_to_usd,
	to_rate_to_usd, to_buy_rate_to_usd, to_sell_rate_to_usd,
	assigned_to, status, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for exchange transactions and cash movements.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func scanTransaction(row scanner) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.CashSessionID,
		&t.FromCurrencyID,
		&t.ToCurrencyID,
		&t.OriginalAmount,
		&t.ConvertedAmount,
		&t.USDAmount,
		&t.ProfitFromUSD,
		&t.ProfitToUSD,
		&t.TotalProfitUSD,
		&t.FromRateToUSD,
		&t.FromBuyRateToUSD,
		&t.FromSellRateToUSD,
		&t.ToRateToUSD,
		&t.ToBuyRateToUSD,
		&t.ToSellRateToUSD,
		&t.AssignedTo,
		&t.Status,
		&t.Notes,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

func findTransaction(ctx context.Context, q querier, suffix string, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ` + suffix
	m, err := scanTransaction(q.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find transaction %s", transactionID)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// SaveTransaction inserts a new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.CashSessionID,
		m.FromCurrencyID,
		m.ToCurrencyID,
		m.OriginalAmount,
		m.ConvertedAmount,
		m.USDAmount,
		m.ProfitFromUSD,
		m.ProfitToUSD,
		m.TotalProfitUSD,
		m.FromRateToUSD,
		m.FromBuyRateToUSD,
		m.FromSellRateToUSD,
		m.ToRateToUSD,
		m.ToBuyRateToUSD,
		m.ToSellRateToUSD,
		m.AssignedTo,
		m.Status,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return findTransaction(ctx, r.Pool, `WHERE transaction_id = $1;`, transactionID)
}

// ListTransactionsBySession retrieves every transaction of a cash session, newest first.
func (r *PgxTransactionRepository) ListTransactionsBySession(ctx context.Context, cashSessionID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE cash_session_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, cashSessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions of %s: %w", cashSessionID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions of %s: %w", cashSessionID, err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

func (r *PgxTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error) {
	return findTransaction(ctx, tx, `WHERE transaction_id = $1 FOR UPDATE;`, transactionID)
}

func (r *PgxTransactionRepository) UpdateTransactionStatusInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	query := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, query, txn.TransactionID, string(txn.Status), txn.LastUpdatedAt, txn.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveCashMovementsInTx inserts the movements in one batch.
func (r *PgxTransactionRepository) SaveCashMovementsInTx(ctx context.Context, tx pgx.Tx, movements []domain.CashMovement) error {
	if len(movements) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO cash_movements (cash_movement_id, transaction_id, cash_session_id, currency_id, type, amount, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, mv := range movements {
		m := mapping.ToModelCashMovement(mv)
		batch.Queue(query,
			m.CashMovementID,
			m.TransactionID,
			m.CashSessionID,
			m.CurrencyID,
			m.Type,
			m.Amount,
			m.CreatedAt,
			m.CreatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert cash movements: %w", err)
	}
	return nil
}
