package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
)

// CashSessionReader defines read operations for cash sessions and their balances
type CashSessionReader interface {
	// FindCashSessionByID retrieves a cash session by its ID.
	FindCashSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error)

	// FindOpenCashSession retrieves the single session that is active or pending.
	// Returns apperrors.ErrNotFound when every session is closed.
	FindOpenCashSession(ctx context.Context) (*domain.CashSession, error)

	// FindCashBalances retrieves the per-currency balance rows of a session.
	FindCashBalances(ctx context.Context, sessionID string) ([]domain.CashBalance, error)

	// FindCashBalance retrieves one currency's balance row of a session.
	FindCashBalance(ctx context.Context, sessionID, currencyID string) (*domain.CashBalance, error)

	// FindMovementLines retrieves every movement of a session joined with its transaction status,
	// in a single query.
	FindMovementLines(ctx context.Context, sessionID string) ([]domain.MovementLine, error)
}

// CashSessionTxOperator defines the operations that run inside a caller-managed transaction
type CashSessionTxOperator interface {
	// LockCashSessionsInTx takes the transaction-scoped advisory lock that serialises
	// opening and closing sessions.
	LockCashSessionsInTx(ctx context.Context, tx pgx.Tx) error

	// FindOpenCashSessionInTx is FindOpenCashSession within tx.
	FindOpenCashSessionInTx(ctx context.Context, tx pgx.Tx) (*domain.CashSession, error)

	// FindCashSessionByIDForUpdate selects a session and locks its row for update.
	FindCashSessionByIDForUpdate(ctx context.Context, tx pgx.Tx, sessionID string) (*domain.CashSession, error)

	// FindCashSessionByIDForShare selects a session and locks its row against concurrent updates.
	FindCashSessionByIDForShare(ctx context.Context, tx pgx.Tx, sessionID string) (*domain.CashSession, error)

	// FindCashBalancesInTx is FindCashBalances within tx.
	FindCashBalancesInTx(ctx context.Context, tx pgx.Tx, sessionID string) ([]domain.CashBalance, error)

	// FindMovementLinesInTx is FindMovementLines within tx.
	FindMovementLinesInTx(ctx context.Context, tx pgx.Tx, sessionID string) ([]domain.MovementLine, error)

	// FindLatestActualClosingBalancesInTx returns, per currency, the most recent reconciled
	// actual closing balance across closed sessions.
	FindLatestActualClosingBalancesInTx(ctx context.Context, tx pgx.Tx) (domain.BalanceMap, error)

	// SaveCashSessionInTx inserts a session together with its opening balance rows.
	// A second open session surfaces as apperrors.ErrConflict.
	SaveCashSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CashSession, balances []domain.CashBalance) error

	// UpdateCashSessionInTx persists status, closing fields and closing rates of a session.
	UpdateCashSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CashSession) error

	// UpdateCashBalancesInTx persists the reconciliation fields of the given balance rows.
	UpdateCashBalancesInTx(ctx context.Context, tx pgx.Tx, balances []domain.CashBalance) error
}

// CashSessionRepositoryFacade combines all cash session repository interfaces
// This is a facade for clients that need access to all operations
type CashSessionRepositoryFacade interface {
	CashSessionReader
	CashSessionTxOperator
}

// CashSessionRepositoryWithTx extends CashSessionRepositoryFacade with transaction capabilities
type CashSessionRepositoryWithTx interface {
	CashSessionRepositoryFacade
	TransactionManager
}
