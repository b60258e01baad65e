package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
)

// TransactionReader defines read operations for exchange transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsBySession retrieves every transaction of a cash session, newest first.
	ListTransactionsBySession(ctx context.Context, cashSessionID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for exchange transactions
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionTxOperator defines the operations that run inside a caller-managed transaction
type TransactionTxOperator interface {
	// FindTransactionByIDForUpdate selects a transaction and locks its row for update.
	FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error)

	// UpdateTransactionStatusInTx persists a transaction's status and audit fields.
	UpdateTransactionStatusInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// SaveCashMovementsInTx inserts the given movements in one batch.
	SaveCashMovementsInTx(ctx context.Context, tx pgx.Tx, movements []domain.CashMovement) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionTxOperator
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
