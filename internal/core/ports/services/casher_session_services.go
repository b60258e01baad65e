package services

import (
	"context"

	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/kassemKu/sibai-transactions/internal/dto"
)

// CasherSessionReaderSvc defines read operations for cashier sub-sessions
type CasherSessionReaderSvc interface {
	// GetCasherCashSession retrieves a sub-session by its ID.
	GetCasherCashSession(ctx context.Context, casherSessionID string) (*domain.CasherCashSession, error)

	// CurrentCasherCashSession retrieves the user's sub-session that is not closed yet.
	CurrentCasherCashSession(ctx context.Context, userID string) (*domain.CasherCashSession, error)

	// ListCasherCashSessions retrieves the sub-sessions of a cash session.
	ListCasherCashSessions(ctx context.Context, cashSessionID string) ([]domain.CasherCashSession, error)
}

// CasherSessionLifecycleSvc defines the state transitions of a cashier sub-session
type CasherSessionLifecycleSvc interface {
	// OpenCasherCashSession opens a sub-session for a cashier with declared opening balances.
	OpenCasherCashSession(ctx context.Context, req dto.OpenCasherSessionRequest, actorID string) (*domain.CasherCashSession, error)

	// RequestCasherSessionClose moves an active sub-session to pending and records its system balances.
	RequestCasherSessionClose(ctx context.Context, casherSessionID, actorID string, actorRole domain.UserRole) (*domain.CasherCashSession, error)

	// CloseCasherCashSession records the counted balances and closes the sub-session.
	CloseCasherCashSession(ctx context.Context, casherSessionID string, actual domain.BalanceMap, actorID string) (*domain.CasherCashSession, error)
}

// CasherSessionSvcFacade combines all sub-session service interfaces
type CasherSessionSvcFacade interface {
	CasherSessionReaderSvc
	CasherSessionLifecycleSvc
}
