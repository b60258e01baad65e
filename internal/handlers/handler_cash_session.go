package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	portssvc "github.com/kassemKu/sibai-transactions/internal/core/ports/services"
	"github.com/kassemKu/sibai-transactions/internal/dto"
	"github.com/kassemKu/sibai-transactions/internal/middleware"
)

// cashSessionHandler handles the shop-wide cash session and its per-session views.
type cashSessionHandler struct {
	sessionService     portssvc.CashSessionSvcFacade
	balanceService     portssvc.BalanceSvc
	transactionService portssvc.TransactionSvcFacade
	casherService      portssvc.CasherSessionSvcFacade
}

// RegisterCashSessionRoutes registers routes under /cash-sessions.
func RegisterCashSessionRoutes(
	rg *gin.RouterGroup,
	sessionService portssvc.CashSessionSvcFacade,
	balanceService portssvc.BalanceSvc,
	transactionService portssvc.TransactionSvcFacade,
	casherService portssvc.CasherSessionSvcFacade,
) {
	h := &cashSessionHandler{
		sessionService:     sessionService,
		balanceService:     balanceService,
		transactionService: transactionService,
		casherService:      casherService,
	}
	admin := middleware.RequireRole(domain.RoleAdmin)

	sessions := rg.Group("/cash-sessions")
	{
		sessions.POST("", admin, h.openCashSession)
		sessions.GET("/current", h.currentCashSession)
		sessions.GET("/:sessionID", h.getCashSession)
		sessions.GET("/:sessionID/closing-balances", h.getClosingBalances)
		sessions.GET("/:sessionID/available-balance/:currencyID", h.getAvailableBalance)
		sessions.POST("/:sessionID/begin-close", admin, h.beginCloseCashSession)
		sessions.POST("/:sessionID/close", admin, h.closeCashSession)
		sessions.GET("/:sessionID/transactions", h.listSessionTransactions)
		sessions.GET("/:sessionID/casher-sessions", h.listCasherSessions)
	}
}

// openCashSession godoc
// @Summary Open the shop-wide cash session
// @Description Opens a session carrying forward the last counted balance of every currency
// @Tags cash-sessions
// @Produce  json
// @Success 201 {object} domain.CashSession
// @Failure 409 {object} map[string]string "A session is already open"
// @Security BearerAuth
// @Router /cash-sessions [post]
func (h *cashSessionHandler) openCashSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	session, err := h.sessionService.OpenCashSession(c.Request.Context(), actorID)
	if err != nil {
		respondWithError(c, logger, err, "Cash session", "open cash session")
		return
	}
	c.JSON(http.StatusCreated, session)
}

// currentCashSession godoc
// @Summary Get the open cash session
// @Tags cash-sessions
// @Produce  json
// @Success 200 {object} domain.CashSession
// @Failure 404 {object} map[string]string "No session is open"
// @Security BearerAuth
// @Router /cash-sessions/current [get]
func (h *cashSessionHandler) currentCashSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, err := h.sessionService.CurrentActiveSession(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Cash session", "retrieve current cash session")
		return
	}
	c.JSON(http.StatusOK, session)
}

// getCashSession godoc
// @Summary Get a cash session by ID
// @Tags cash-sessions
// @Produce  json
// @Param   sessionID path string true "Cash session ID"
// @Success 200 {object} domain.CashSession
// @Failure 404 {object} map[string]string "Cash session not found"
// @Security BearerAuth
// @Router /cash-sessions/{sessionID} [get]
func (h *cashSessionHandler) getCashSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := uuidParam(c, "sessionID")
	if !ok {
		return
	}

	session, err := h.sessionService.GetCashSession(c.Request.Context(), sessionID)
	if err != nil {
		respondWithError(c, logger, err, "Cash session", "retrieve cash session")
		return
	}
	c.JSON(http.StatusOK, session)
}

// getClosingBalances godoc
// @Summary System balances of a session
// @Description Opening, completed in/out and system closing balance per currency
// @Tags cash-sessions
// @Produce  json
// @Param   sessionID path string true "Cash session ID"
// @Success 200 {object} dto.ClosingBalancesResponse
// @Failure 404 {object} map[string]string "Cash session not found"
// @Security BearerAuth
// @Router /cash-sessions/{sessionID}/closing-balances [get]
func (h *cashSessionHandler) getClosingBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := uuidParam(c, "sessionID")
	if !ok {
		return
	}

	rows, err := h.balanceService.GetClosingBalances(c.Request.Context(), sessionID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("session_id", sessionID)), err, "Cash session", "compute closing balances")
		return
	}
	c.JSON(http.StatusOK, dto.ClosingBalancesResponse{CashSessionID: sessionID, Balances: rows})
}

// getAvailableBalance godoc
// @Summary The caller's float in one currency
// @Tags cash-sessions
// @Produce  json
// @Param   sessionID path string true "Cash session ID"
// @Param   currencyID path string true "Currency ID"
// @Success 200 {object} dto.AvailableBalanceResponse
// @Security BearerAuth
// @Router /cash-sessions/{sessionID}/available-balance/{currencyID} [get]
func (h *cashSessionHandler) getAvailableBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := uuidParam(c, "sessionID")
	if !ok {
		return
	}
	currencyID, ok := uuidParam(c, "currencyID")
	if !ok {
		return
	}
	userID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	available, err := h.balanceService.GetCurrencyAvailableBalance(c.Request.Context(), currencyID, sessionID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Cash session", "compute available balance")
		return
	}
	c.JSON(http.StatusOK, dto.AvailableBalanceResponse{
		CashSessionID: sessionID,
		CurrencyID:    currencyID,
		UserID:        userID,
		Available:     available,
	})
}

// beginCloseCashSession godoc
// @Summary Move the session to pending
// @Description New transactions are refused while the session is pending
// @Tags cash-sessions
// @Produce  json
// @Param   sessionID path string true "Cash session ID"
// @Success 200 {object} domain.CashSession
// @Failure 409 {object} map[string]string "Session is not active"
// @Security BearerAuth
// @Router /cash-sessions/{sessionID}/begin-close [post]
func (h *cashSessionHandler) beginCloseCashSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := uuidParam(c, "sessionID")
	if !ok {
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	session, err := h.sessionService.BeginCloseCashSession(c.Request.Context(), sessionID, actorID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("session_id", sessionID)), err, "Cash session", "begin closing cash session")
		return
	}
	c.JSON(http.StatusOK, session)
}

// closeCashSession godoc
// @Summary Reconcile and close a session
// @Tags cash-sessions
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Cash session ID"
// @Param   request body dto.CloseCashSessionRequest true "Counted balances"
// @Success 200 {object} domain.CashSessionCloseResult
// @Failure 400 {object} map[string]string "Invalid balances"
// @Failure 409 {object} map[string]string "Session already closed or casher sessions still open"
// @Security BearerAuth
// @Router /cash-sessions/{sessionID}/close [post]
func (h *cashSessionHandler) closeCashSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := uuidParam(c, "sessionID")
	if !ok {
		return
	}
	var req dto.CloseCashSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CloseCashSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	res, err := h.sessionService.CloseCashSession(c.Request.Context(), sessionID, req.ToActualClosingBalances(), actorID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("session_id", sessionID)), err, "Cash session", "close cash session")
		return
	}
	c.JSON(http.StatusOK, res)
}

// listSessionTransactions godoc
// @Summary Transactions of a session, newest first
// @Tags cash-sessions
// @Produce  json
// @Param   sessionID path string true "Cash session ID"
// @Success 200 {object} dto.ListTransactionsResponse
// @Security BearerAuth
// @Router /cash-sessions/{sessionID}/transactions [get]
func (h *cashSessionHandler) listSessionTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := uuidParam(c, "sessionID")
	if !ok {
		return
	}

	txns, err := h.transactionService.ListSessionTransactions(c.Request.Context(), sessionID)
	if err != nil {
		respondWithError(c, logger, err, "Cash session", "list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		CashSessionID: sessionID,
		Transactions:  dto.ToListTransactionResponse(txns),
	})
}

// listCasherSessions godoc
// @Summary Casher sub-sessions of a session
// @Tags cash-sessions
// @Produce  json
// @Param   sessionID path string true "Cash session ID"
// @Success 200 {object} dto.ListCasherSessionsResponse
// @Security BearerAuth
// @Router /cash-sessions/{sessionID}/casher-sessions [get]
func (h *cashSessionHandler) listCasherSessions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := uuidParam(c, "sessionID")
	if !ok {
		return
	}

	sessions, err := h.casherService.ListCasherCashSessions(c.Request.Context(), sessionID)
	if err != nil {
		respondWithError(c, logger, err, "Cash session", "list casher sessions")
		return
	}
	c.JSON(http.StatusOK, dto.ListCasherSessionsResponse{CashSessionID: sessionID, CasherSessions: sessions})
}
