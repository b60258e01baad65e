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
	"github.com/shopspring/decimal"
)

// cashSessionLockKey is the pg_advisory_xact_lock key shared by every open/close of a cash session.
const cashSessionLockKey int64 = 0x5151_0001

const cashSessionColumns = `cash_session_id, status, opened_at, opened_by, closed_at, closed_by,
	open_exchange_rates, close_exchange_rates, created_at, created_by, last_updated_at, last_updated_by`

const cashBalanceColumns = `cash_balance_id, cash_session_id, currency_id, opening_balance, total_in, total_out,
	closing_balance, actual_closing_balance, difference, created_at, created_by, last_updated_at, last_updated_by`

type PgxCashSessionRepository struct {
	BaseRepository
}

// newPgxCashSessionRepository creates a new repository for cash sessions and their balance rows.
func newPgxCashSessionRepository(pool *pgxpool.Pool) portsrepo.CashSessionRepositoryWithTx {
	return &PgxCashSessionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CashSessionRepositoryWithTx = (*PgxCashSessionRepository)(nil)

func scanCashSession(row scanner) (*domain.CashSession, error) {
	var m models.CashSession
	err := row.Scan(
		&m.CashSessionID,
		&m.Status,
		&m.OpenedAt,
		&m.OpenedBy,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.OpenExchangeRates,
		&m.CloseExchangeRates,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d, err := mapping.ToDomainCashSession(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func scanCashBalance(row scanner) (models.CashBalance, error) {
	var b models.CashBalance
	err := row.Scan(
		&b.CashBalanceID,
		&b.CashSessionID,
		&b.CurrencyID,
		&b.OpeningBalance,
		&b.TotalIn,
		&b.TotalOut,
		&b.ClosingBalance,
		&b.ActualClosingBalance,
		&b.Difference,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	return b, err
}

func findCashSession(ctx context.Context, q querier, suffix string, args ...any) (*domain.CashSession, error) {
	query := `SELECT ` + cashSessionColumns + ` FROM cash_sessions ` + suffix
	s, err := scanCashSession(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFoundOr(err, "failed to find cash session")
	}
	return s, nil
}

func findCashBalances(ctx context.Context, q querier, sessionID string) ([]domain.CashBalance, error) {
	query := `SELECT ` + cashBalanceColumns + ` FROM cash_balances WHERE cash_session_id = $1 ORDER BY currency_id;`
	rows, err := q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash balances of %s: %w", sessionID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CashBalance, error) {
		return scanCashBalance(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan cash balances of %s: %w", sessionID, err)
	}
	return mapping.ToDomainCashBalanceSlice(ms), nil
}

// findMovementLines joins every movement with its transaction status in a single query.
func findMovementLines(ctx context.Context, q querier, sessionID string) ([]domain.MovementLine, error) {
	query := `
		SELECT m.currency_id, m.type, m.amount, t.status
		FROM cash_movements m
		JOIN transactions t ON t.transaction_id = m.transaction_id
		WHERE m.cash_session_id = $1;
	`
	rows, err := q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements of %s: %w", sessionID, err)
	}
	defer rows.Close()

	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MovementLine, error) {
		var (
			l         domain.MovementLine
			moveType  string
			txnStatus string
		)
		err := row.Scan(&l.CurrencyID, &moveType, &l.Amount, &txnStatus)
		l.Type = domain.MovementType(moveType)
		l.TransactionStatus = domain.TransactionStatus(txnStatus)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan movements of %s: %w", sessionID, err)
	}
	return lines, nil
}

const openSessionFilter = `WHERE status IN ('active', 'pending') ORDER BY opened_at DESC LIMIT 1`

// FindCashSessionByID retrieves a cash session by its ID.
func (r *PgxCashSessionRepository) FindCashSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	return findCashSession(ctx, r.Pool, `WHERE cash_session_id = $1;`, sessionID)
}

// FindOpenCashSession retrieves the session that is active or pending.
func (r *PgxCashSessionRepository) FindOpenCashSession(ctx context.Context) (*domain.CashSession, error) {
	return findCashSession(ctx, r.Pool, openSessionFilter+`;`)
}

// FindCashBalances retrieves the balance rows of a session.
func (r *PgxCashSessionRepository) FindCashBalances(ctx context.Context, sessionID string) ([]domain.CashBalance, error) {
	return findCashBalances(ctx, r.Pool, sessionID)
}

// FindCashBalance retrieves one currency's balance row of a session.
func (r *PgxCashSessionRepository) FindCashBalance(ctx context.Context, sessionID, currencyID string) (*domain.CashBalance, error) {
	query := `SELECT ` + cashBalanceColumns + ` FROM cash_balances WHERE cash_session_id = $1 AND currency_id = $2;`
	m, err := scanCashBalance(r.Pool.QueryRow(ctx, query, sessionID, currencyID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find balance of %s in session %s", currencyID, sessionID)
	}
	d := mapping.ToDomainCashBalance(m)
	return &d, nil
}

// FindMovementLines retrieves the movement lines of a session.
func (r *PgxCashSessionRepository) FindMovementLines(ctx context.Context, sessionID string) ([]domain.MovementLine, error) {
	return findMovementLines(ctx, r.Pool, sessionID)
}

// LockCashSessionsInTx serialises session open and close across connections until tx ends.
func (r *PgxCashSessionRepository) LockCashSessionsInTx(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, cashSessionLockKey); err != nil {
		return fmt.Errorf("failed to lock cash sessions: %w", err)
	}
	return nil
}

func (r *PgxCashSessionRepository) FindOpenCashSessionInTx(ctx context.Context, tx pgx.Tx) (*domain.CashSession, error) {
	return findCashSession(ctx, tx, openSessionFilter+`;`)
}

func (r *PgxCashSessionRepository) FindCashSessionByIDForUpdate(ctx context.Context, tx pgx.Tx, sessionID string) (*domain.CashSession, error) {
	return findCashSession(ctx, tx, `WHERE cash_session_id = $1 FOR UPDATE;`, sessionID)
}

func (r *PgxCashSessionRepository) FindCashSessionByIDForShare(ctx context.Context, tx pgx.Tx, sessionID string) (*domain.CashSession, error) {
	return findCashSession(ctx, tx, `WHERE cash_session_id = $1 FOR SHARE;`, sessionID)
}

func (r *PgxCashSessionRepository) FindCashBalancesInTx(ctx context.Context, tx pgx.Tx, sessionID string) ([]domain.CashBalance, error) {
	return findCashBalances(ctx, tx, sessionID)
}

func (r *PgxCashSessionRepository) FindMovementLinesInTx(ctx context.Context, tx pgx.Tx, sessionID string) ([]domain.MovementLine, error) {
	return findMovementLines(ctx, tx, sessionID)
}

// FindLatestActualClosingBalancesInTx returns the most recent counted amount per currency
// across closed sessions. Currencies never reconciled are absent from the map.
func (r *PgxCashSessionRepository) FindLatestActualClosingBalancesInTx(ctx context.Context, tx pgx.Tx) (domain.BalanceMap, error) {
	query := `
		SELECT DISTINCT ON (b.currency_id) b.currency_id, b.actual_closing_balance
		FROM cash_balances b
		JOIN cash_sessions s ON s.cash_session_id = b.cash_session_id
		WHERE s.status = 'closed' AND b.actual_closing_balance IS NOT NULL
		ORDER BY b.currency_id, s.closed_at DESC;
	`
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query carried balances: %w", err)
	}
	defer rows.Close()

	balances := domain.BalanceMap{}
	for rows.Next() {
		var (
			currencyID string
			amount     decimal.Decimal
		)
		if err := rows.Scan(&currencyID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan carried balance: %w", err)
		}
		balances[currencyID] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read carried balances: %w", err)
	}
	return balances, nil
}

// SaveCashSessionInTx inserts the session and its opening balance rows in one batch.
func (r *PgxCashSessionRepository) SaveCashSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CashSession, balances []domain.CashBalance) error {
	m, err := mapping.ToModelCashSession(session)
	if err != nil {
		return err
	}

	sessionQuery := `INSERT INTO cash_sessions (` + cashSessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err = tx.Exec(ctx, sessionQuery,
		m.CashSessionID,
		m.Status,
		m.OpenedAt,
		m.OpenedBy,
		m.ClosedAt,
		m.ClosedBy,
		m.OpenExchangeRates,
		m.CloseExchangeRates,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("another cash session is already open")
		}
		return fmt.Errorf("failed to insert cash session %s: %w", m.CashSessionID, err)
	}

	if len(balances) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	balanceQuery := `INSERT INTO cash_balances (` + cashBalanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`
	for _, b := range balances {
		mb := mapping.ToModelCashBalance(b)
		batch.Queue(balanceQuery,
			mb.CashBalanceID,
			mb.CashSessionID,
			mb.CurrencyID,
			mb.OpeningBalance,
			mb.TotalIn,
			mb.TotalOut,
			mb.ClosingBalance,
			mb.ActualClosingBalance,
			mb.Difference,
			mb.CreatedAt,
			mb.CreatedBy,
			mb.LastUpdatedAt,
			mb.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert opening balances of %s: %w", m.CashSessionID, err)
	}
	return nil
}

func (r *PgxCashSessionRepository) UpdateCashSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CashSession) error {
	m, err := mapping.ToModelCashSession(session)
	if err != nil {
		return err
	}
	query := `
		UPDATE cash_sessions
		SET status = $2, closed_at = $3, closed_by = $4, close_exchange_rates = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE cash_session_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.CashSessionID,
		m.Status,
		m.ClosedAt,
		m.ClosedBy,
		m.CloseExchangeRates,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update cash session %s: %w", m.CashSessionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateCashBalancesInTx writes the totals and reconciliation columns of each row in one batch.
func (r *PgxCashSessionRepository) UpdateCashBalancesInTx(ctx context.Context, tx pgx.Tx, balances []domain.CashBalance) error {
	if len(balances) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		UPDATE cash_balances
		SET total_in = $2, total_out = $3, closing_balance = $4, actual_closing_balance = $5, difference = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE cash_balance_id = $1;
	`
	for _, b := range balances {
		mb := mapping.ToModelCashBalance(b)
		batch.Queue(query,
			mb.CashBalanceID,
			mb.TotalIn,
			mb.TotalOut,
			mb.ClosingBalance,
			mb.ActualClosingBalance,
			mb.Difference,
			mb.LastUpdatedAt,
			mb.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to update cash balances: %w", err)
	}
	return nil
}
