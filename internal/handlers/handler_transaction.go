package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	portssvc "github.com/kassemKu/sibai-transactions/internal/core/ports/services"
	"github.com/kassemKu/sibai-transactions/internal/dto"
	"github.com/kassemKu/sibai-transactions/internal/middleware"
)

type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// RegisterTransactionRoutes registers routes under /transactions.
func RegisterTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{transactionService: transactionService}

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("/:transactionID", h.getTransaction)
		txns.POST("/:transactionID/confirm", h.confirmTransaction)
		txns.POST("/:transactionID/cancel", h.cancelTransaction)
	}
}

// createTransaction godoc
// @Summary Record an exchange in the current session
// @Description Quotes against current rates and stores a pending transaction
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateTransactionRequest true "Exchange details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "No active session"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, logger, err, "Currency", "create transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := uuidParam(c, "transactionID")
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, logger, err, "Transaction", "retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// confirmTransaction godoc
// @Summary Complete a pending transaction
// @Description Marks the transaction completed and books its in/out cash movements
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 409 {object} map[string]string "Not pending or session closed"
// @Security BearerAuth
// @Router /transactions/{transactionID}/confirm [post]
func (h *transactionHandler) confirmTransaction(c *gin.Context) {
	h.transition(c, "confirm transaction", h.transactionService.ConfirmTransaction)
}

// cancelTransaction godoc
// @Summary Cancel a pending transaction
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 409 {object} map[string]string "Not pending"
// @Security BearerAuth
// @Router /transactions/{transactionID}/cancel [post]
func (h *transactionHandler) cancelTransaction(c *gin.Context) {
	h.transition(c, "cancel transaction", h.transactionService.CancelTransaction)
}

func (h *transactionHandler) transition(c *gin.Context, action string, apply func(ctx context.Context, id, actorID string) (*domain.Transaction, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := uuidParam(c, "transactionID")
	if !ok {
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	txn, err := apply(c.Request.Context(), id, actorID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("transaction_id", id)), err, "Transaction", action)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
