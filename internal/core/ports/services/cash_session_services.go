package services

import (
	"context"

	"github.com/kassemKu/sibai-transactions/internal/core/domain"
)

// CashSessionReaderSvc defines read operations for cash sessions
type CashSessionReaderSvc interface {
	// CurrentActiveSession returns the session that is not closed yet.
	CurrentActiveSession(ctx context.Context) (*domain.CashSession, error)

	// GetCashSession retrieves a cash session by its ID.
	GetCashSession(ctx context.Context, sessionID string) (*domain.CashSession, error)
}

// CashSessionLifecycleSvc defines the state transitions of a cash session
type CashSessionLifecycleSvc interface {
	// OpenCashSession opens a new session with balances carried forward from the last close.
	OpenCashSession(ctx context.Context, actorID string) (*domain.CashSession, error)

	// BeginCloseCashSession moves an active session to pending; no new transactions are accepted.
	BeginCloseCashSession(ctx context.Context, sessionID, actorID string) (*domain.CashSession, error)

	// CloseCashSession reconciles the submitted actual balances and closes the session.
	CloseCashSession(ctx context.Context, sessionID string, actual []domain.ActualClosingBalance, actorID string) (*domain.CashSessionCloseResult, error)
}

// CashSessionSvcFacade combines all cash session service interfaces
type CashSessionSvcFacade interface {
	CashSessionReaderSvc
	CashSessionLifecycleSvc
}
