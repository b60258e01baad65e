package dto

import (
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
)

// OpenCasherSessionRequest opens a cashier's sub-session. When CashSessionID is empty
// the current open cash session is used.
type OpenCasherSessionRequest struct {
	CashSessionID   string            `json:"cashSessionID" binding:"omitempty,uuid"`
	CasherID        string            `json:"casherID" binding:"required,uuid"`
	OpeningBalances domain.BalanceMap `json:"openingBalances" binding:"required,dive,keys,uuid,endkeys,dgte0"`
}

// CloseCasherSessionRequest carries the amounts counted in the cashier's drawer.
type CloseCasherSessionRequest struct {
	ActualClosingBalances domain.BalanceMap `json:"actualClosingBalances" binding:"required,dive,keys,uuid,endkeys,dgte0"`
}

// ListCasherSessionsResponse wraps the sub-sessions of a cash session.
type ListCasherSessionsResponse struct {
	CashSessionID  string                     `json:"cashSessionID"`
	CasherSessions []domain.CasherCashSession `json:"casherSessions"`
}
