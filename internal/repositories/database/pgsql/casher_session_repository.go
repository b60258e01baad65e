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

const casherSessionColumns = `casher_session_id, cash_session_id, casher_id, status, opening_balances,
	system_balances, actual_closing_balances, opened_at, opened_by, closed_at, closed_by,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCasherSessionRepository struct {
	pool *pgxpool.Pool
}

// newPgxCasherSessionRepository creates a new repository for cashier sub-sessions.
func newPgxCasherSessionRepository(pool *pgxpool.Pool) portsrepo.CasherSessionRepositoryFacade {
	return &PgxCasherSessionRepository{pool: pool}
}

var _ portsrepo.CasherSessionRepositoryFacade = (*PgxCasherSessionRepository)(nil)

func scanCasherSession(row scanner) (domain.CasherCashSession, error) {
	var m models.CasherCashSession
	err := row.Scan(
		&m.CasherSessionID,
		&m.CashSessionID,
		&m.CasherID,
		&m.Status,
		&m.OpeningBalances,
		&m.SystemBalances,
		&m.ActualClosingBalances,
		&m.OpenedAt,
		&m.OpenedBy,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.CasherCashSession{}, err
	}
	return mapping.ToDomainCasherCashSession(m)
}

func findCasherSession(ctx context.Context, q querier, suffix string, args ...any) (*domain.CasherCashSession, error) {
	query := `SELECT ` + casherSessionColumns + ` FROM casher_cash_sessions ` + suffix
	cs, err := scanCasherSession(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFoundOr(err, "failed to find casher session")
	}
	return &cs, nil
}

// FindCasherSessionByID retrieves a sub-session by its ID.
func (r *PgxCasherSessionRepository) FindCasherSessionByID(ctx context.Context, casherSessionID string) (*domain.CasherCashSession, error) {
	return findCasherSession(ctx, r.pool, `WHERE casher_session_id = $1;`, casherSessionID)
}

// FindOpenCasherSession retrieves the cashier's active or pending sub-session.
func (r *PgxCasherSessionRepository) FindOpenCasherSession(ctx context.Context, casherID string) (*domain.CasherCashSession, error) {
	return findCasherSession(ctx, r.pool,
		`WHERE casher_id = $1 AND status IN ('active', 'pending') ORDER BY opened_at DESC LIMIT 1;`, casherID)
}

// ListCasherSessionsBySession retrieves the sub-sessions of a cash session, oldest first.
func (r *PgxCasherSessionRepository) ListCasherSessionsBySession(ctx context.Context, cashSessionID string) ([]domain.CasherCashSession, error) {
	query := `SELECT ` + casherSessionColumns + ` FROM casher_cash_sessions WHERE cash_session_id = $1 ORDER BY opened_at;`
	rows, err := r.pool.Query(ctx, query, cashSessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query casher sessions of %s: %w", cashSessionID, err)
	}
	defer rows.Close()

	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CasherCashSession, error) {
		return scanCasherSession(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan casher sessions of %s: %w", cashSessionID, err)
	}
	return sessions, nil
}

func (r *PgxCasherSessionRepository) FindCasherSessionByIDForUpdate(ctx context.Context, tx pgx.Tx, casherSessionID string) (*domain.CasherCashSession, error) {
	return findCasherSession(ctx, tx, `WHERE casher_session_id = $1 FOR UPDATE;`, casherSessionID)
}

func (r *PgxCasherSessionRepository) CountOpenCasherSessionsInTx(ctx context.Context, tx pgx.Tx, cashSessionID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM casher_cash_sessions
		WHERE cash_session_id = $1 AND status IN ('active', 'pending');
	`
	var count int
	if err := tx.QueryRow(ctx, query, cashSessionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count open casher sessions of %s: %w", cashSessionID, err)
	}
	return count, nil
}

// SaveCasherSessionInTx inserts a sub-session. The partial unique index on casher_id
// rejects a second open sub-session for the same cashier.
func (r *PgxCasherSessionRepository) SaveCasherSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CasherCashSession) error {
	m, err := mapping.ToModelCasherCashSession(session)
	if err != nil {
		return err
	}
	query := `INSERT INTO casher_cash_sessions (` + casherSessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`
	_, err = tx.Exec(ctx, query,
		m.CasherSessionID,
		m.CashSessionID,
		m.CasherID,
		m.Status,
		m.OpeningBalances,
		m.SystemBalances,
		m.ActualClosingBalances,
		m.OpenedAt,
		m.OpenedBy,
		m.ClosedAt,
		m.ClosedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("casher " + m.CasherID + " already has an open casher session")
		}
		return fmt.Errorf("failed to insert casher session %s: %w", m.CasherSessionID, err)
	}
	return nil
}

func (r *PgxCasherSessionRepository) UpdateCasherSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CasherCashSession) error {
	m, err := mapping.ToModelCasherCashSession(session)
	if err != nil {
		return err
	}
	query := `
		UPDATE casher_cash_sessions
		SET status = $2, system_balances = $3, actual_closing_balances = $4, closed_at = $5, closed_by = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE casher_session_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.CasherSessionID,
		m.Status,
		m.SystemBalances,
		m.ActualClosingBalances,
		m.ClosedAt,
		m.ClosedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update casher session %s: %w", m.CasherSessionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
