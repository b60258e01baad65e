package services

import (
	"context"

	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/kassemKu/sibai-transactions/internal/dto"
)

// TransactionReaderSvc defines read operations for exchange transactions
type TransactionReaderSvc interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListSessionTransactions retrieves every transaction of a cash session.
	ListSessionTransactions(ctx context.Context, cashSessionID string) ([]domain.Transaction, error)
}

// TransactionLifecycleSvc defines creation and status transitions of transactions
type TransactionLifecycleSvc interface {
	// CreateTransaction quotes and records a pending transaction in the current session.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, actorID string) (*domain.Transaction, error)

	// ConfirmTransaction completes a pending transaction and emits its cash movements.
	ConfirmTransaction(ctx context.Context, transactionID, actorID string) (*domain.Transaction, error)

	// CancelTransaction cancels a pending transaction.
	CancelTransaction(ctx context.Context, transactionID, actorID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionLifecycleSvc
}
