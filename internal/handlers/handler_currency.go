package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	portssvc "github.com/kassemKu/sibai-transactions/internal/core/ports/services"
	"github.com/kassemKu/sibai-transactions/internal/dto"
	"github.com/kassemKu/sibai-transactions/internal/middleware"
	"github.com/kassemKu/sibai-transactions/internal/utils/accounting"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
	}
}

// RegisterCurrencyRoutes registers routes related to currencies. Writes are admin only.
func RegisterCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)
	admin := middleware.RequireRole(domain.RoleAdmin)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.POST("", admin, h.createCurrency)
		currencies.GET("/:currencyID", h.getCurrency)
		currencies.PUT("/:currencyID", admin, h.updateCurrency)
		currencies.GET("/:currencyID/rate-snapshots", h.listRateSnapshots)
	}
}

func toCurrencyResponse(curr *domain.Currency) dto.CurrencyResponse {
	return dto.ToCurrencyResponse(curr, accounting.ProfitMarginPercent(curr.Rates()))
}

// createCurrency godoc
// @Summary Create a new currency
// @Description Adds a currency with its mid, buy and sell rates to USD (admin operation)
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Admin only"
// @Failure 409 {object} map[string]string "Currency code already exists"
// @Security BearerAuth
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create currency", slog.String("code", req.Code))
	created, err := h.currencyService.CreateCurrency(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, logger, err, "Currency", "create currency")
		return
	}

	c.JSON(http.StatusCreated, toCurrencyResponse(created))
}

// updateCurrency godoc
// @Summary Update a currency's name and rates
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currencyID path string true "Currency ID"
// @Param   currency body dto.UpdateCurrencyRequest true "New name and rates"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{currencyID} [put]
func (h *currencyHandler) updateCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyID, ok := uuidParam(c, "currencyID")
	if !ok {
		return
	}
	var req dto.UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	updated, err := h.currencyService.UpdateCurrency(c.Request.Context(), currencyID, req, actorID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("currency_id", currencyID)), err, "Currency", "update currency")
		return
	}

	c.JSON(http.StatusOK, toCurrencyResponse(updated))
}

// getCurrency godoc
// @Summary Get a currency by ID
// @Tags currencies
// @Produce  json
// @Param   currencyID path string true "Currency ID"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{currencyID} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyID, ok := uuidParam(c, "currencyID")
	if !ok {
		return
	}

	currency, err := h.currencyService.GetCurrency(c.Request.Context(), currencyID)
	if err != nil {
		respondWithError(c, logger, err, "Currency", "retrieve currency")
		return
	}

	c.JSON(http.StatusOK, toCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List all currencies
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.ListCurrenciesResponse
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Currency", "list currencies")
		return
	}

	res := dto.ListCurrenciesResponse{Currencies: make([]dto.CurrencyResponse, len(currencies))}
	for i := range currencies {
		res.Currencies[i] = toCurrencyResponse(&currencies[i])
	}
	logger.Debug("Currencies listed", slog.Int("count", len(currencies)))
	c.JSON(http.StatusOK, res)
}

// listRateSnapshots godoc
// @Summary List a currency's daily rate history
// @Tags currencies
// @Produce  json
// @Param   currencyID path string true "Currency ID"
// @Success 200 {object} dto.ListRateSnapshotsResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{currencyID}/rate-snapshots [get]
func (h *currencyHandler) listRateSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyID, ok := uuidParam(c, "currencyID")
	if !ok {
		return
	}

	snapshots, err := h.currencyService.ListRateSnapshots(c.Request.Context(), currencyID)
	if err != nil {
		respondWithError(c, logger, err, "Currency", "list rate snapshots")
		return
	}

	c.JSON(http.StatusOK, dto.ListRateSnapshotsResponse{CurrencyID: currencyID, Snapshots: snapshots})
}
