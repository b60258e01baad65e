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

type casherSessionHandler struct {
	casherService portssvc.CasherSessionSvcFacade
}

// RegisterCasherSessionRoutes registers routes under /casher-sessions.
func RegisterCasherSessionRoutes(rg *gin.RouterGroup, casherService portssvc.CasherSessionSvcFacade) {
	h := &casherSessionHandler{casherService: casherService}
	admin := middleware.RequireRole(domain.RoleAdmin)

	sessions := rg.Group("/casher-sessions")
	{
		sessions.POST("", admin, h.openCasherSession)
		sessions.GET("/current", h.currentCasherSession)
		sessions.GET("/:casherSessionID", h.getCasherSession)
		sessions.POST("/:casherSessionID/request-close", h.requestClose)
		sessions.POST("/:casherSessionID/close", admin, h.closeCasherSession)
	}
}

// openCasherSession godoc
// @Summary Open a cashier's sub-session
// @Tags casher-sessions
// @Accept  json
// @Produce  json
// @Param   request body dto.OpenCasherSessionRequest true "Cashier and declared opening balances"
// @Success 201 {object} domain.CasherCashSession
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Cashier already has an open sub-session"
// @Security BearerAuth
// @Router /casher-sessions [post]
func (h *casherSessionHandler) openCasherSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenCasherSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenCasherSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	cs, err := h.casherService.OpenCasherCashSession(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("casher_id", req.CasherID)), err, "Casher", "open casher session")
		return
	}
	c.JSON(http.StatusCreated, cs)
}

// currentCasherSession godoc
// @Summary The caller's open sub-session
// @Tags casher-sessions
// @Produce  json
// @Success 200 {object} domain.CasherCashSession
// @Failure 404 {object} map[string]string "No open sub-session"
// @Security BearerAuth
// @Router /casher-sessions/current [get]
func (h *casherSessionHandler) currentCasherSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	cs, err := h.casherService.CurrentCasherCashSession(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Casher session", "retrieve current casher session")
		return
	}
	c.JSON(http.StatusOK, cs)
}

// getCasherSession godoc
// @Summary Get a sub-session by ID
// @Tags casher-sessions
// @Produce  json
// @Param   casherSessionID path string true "Casher session ID"
// @Success 200 {object} domain.CasherCashSession
// @Failure 404 {object} map[string]string "Casher session not found"
// @Security BearerAuth
// @Router /casher-sessions/{casherSessionID} [get]
func (h *casherSessionHandler) getCasherSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := uuidParam(c, "casherSessionID")
	if !ok {
		return
	}

	cs, err := h.casherService.GetCasherCashSession(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, logger, err, "Casher session", "retrieve casher session")
		return
	}
	c.JSON(http.StatusOK, cs)
}

// requestClose godoc
// @Summary Ask to close a sub-session
// @Description The owning cashier or an admin moves the sub-session to pending and freezes its system balances
// @Tags casher-sessions
// @Produce  json
// @Param   casherSessionID path string true "Casher session ID"
// @Success 200 {object} domain.CasherCashSession
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 409 {object} map[string]string "Sub-session is not active"
// @Security BearerAuth
// @Router /casher-sessions/{casherSessionID}/request-close [post]
func (h *casherSessionHandler) requestClose(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := uuidParam(c, "casherSessionID")
	if !ok {
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	cs, err := h.casherService.RequestCasherSessionClose(c.Request.Context(), id, actorID, role)
	if err != nil {
		respondWithError(c, logger.With(slog.String("casher_session_id", id)), err, "Casher session", "request casher session close")
		return
	}
	c.JSON(http.StatusOK, cs)
}

// closeCasherSession godoc
// @Summary Confirm the counted drawer and close a sub-session
// @Tags casher-sessions
// @Accept  json
// @Produce  json
// @Param   casherSessionID path string true "Casher session ID"
// @Param   request body dto.CloseCasherSessionRequest true "Counted balances"
// @Success 200 {object} domain.CasherCashSession
// @Failure 409 {object} map[string]string "Already closed"
// @Security BearerAuth
// @Router /casher-sessions/{casherSessionID}/close [post]
func (h *casherSessionHandler) closeCasherSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := uuidParam(c, "casherSessionID")
	if !ok {
		return
	}
	var req dto.CloseCasherSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CloseCasherSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	cs, err := h.casherService.CloseCasherCashSession(c.Request.Context(), id, req.ActualClosingBalances, actorID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("casher_session_id", id)), err, "Casher session", "close casher session")
		return
	}
	c.JSON(http.StatusOK, cs)
}
