package domain

import "time"

// CasherCashSession is one cashier's shift nested inside a shop-wide CashSession.
type CasherCashSession struct {
	CasherSessionID       string        `json:"casherSessionID"`
	CashSessionID         string        `json:"cashSessionID"`
	CasherID              string        `json:"casherID"`
	Status                SessionStatus `json:"status"`
	OpeningBalances       BalanceMap    `json:"openingBalances"`       // Operator declared
	SystemBalances        BalanceMap    `json:"systemBalances"`        // Computed when closing is requested
	ActualClosingBalances BalanceMap    `json:"actualClosingBalances"` // Admin confirmed
	OpenedAt              time.Time     `json:"openedAt"`
	OpenedBy              string        `json:"openedBy"`
	ClosedAt              *time.Time    `json:"closedAt,omitempty"`
	ClosedBy              *string       `json:"closedBy,omitempty"`
	AuditFields
}
