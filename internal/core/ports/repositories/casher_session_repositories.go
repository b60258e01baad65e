package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
)

// CasherSessionReader defines read operations for cashier sub-sessions
type CasherSessionReader interface {
	// FindCasherSessionByID retrieves a sub-session by its ID.
	FindCasherSessionByID(ctx context.Context, casherSessionID string) (*domain.CasherCashSession, error)

	// FindOpenCasherSession retrieves the cashier's active or pending sub-session.
	// Returns apperrors.ErrNotFound when the cashier has none.
	FindOpenCasherSession(ctx context.Context, casherID string) (*domain.CasherCashSession, error)

	// ListCasherSessionsBySession retrieves all sub-sessions nested in a cash session.
	ListCasherSessionsBySession(ctx context.Context, cashSessionID string) ([]domain.CasherCashSession, error)
}

// CasherSessionTxOperator defines the operations that run inside a caller-managed transaction
type CasherSessionTxOperator interface {
	// FindCasherSessionByIDForUpdate selects a sub-session and locks its row for update.
	FindCasherSessionByIDForUpdate(ctx context.Context, tx pgx.Tx, casherSessionID string) (*domain.CasherCashSession, error)

	// CountOpenCasherSessionsInTx counts the active or pending sub-sessions of a cash session.
	CountOpenCasherSessionsInTx(ctx context.Context, tx pgx.Tx, cashSessionID string) (int, error)

	// SaveCasherSessionInTx inserts a new sub-session. A second open sub-session for the same
	// cashier surfaces as apperrors.ErrConflict.
	SaveCasherSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CasherCashSession) error

	// UpdateCasherSessionInTx persists status, balances and closing fields of a sub-session.
	UpdateCasherSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CasherCashSession) error
}

// CasherSessionRepositoryFacade combines all sub-session repository interfaces
type CasherSessionRepositoryFacade interface {
	CasherSessionReader
	CasherSessionTxOperator
}
