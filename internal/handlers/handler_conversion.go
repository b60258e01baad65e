package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kassemKu/sibai-transactions/internal/core/ports/services"
	"github.com/kassemKu/sibai-transactions/internal/dto"
	"github.com/kassemKu/sibai-transactions/internal/middleware"
)

type conversionHandler struct {
	conversionService portssvc.ConversionSvc
}

// RegisterConversionRoutes registers the quote endpoints. Quotes never write.
func RegisterConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvc) {
	h := &conversionHandler{conversionService: conversionService}

	conversions := rg.Group("/conversions")
	{
		conversions.POST("/calculate", h.calculateConversion)
		conversions.POST("/reverse-profits", h.calculateReverseProfits)
	}
}

// calculateConversion godoc
// @Summary Quote a forward conversion
// @Description Returns the converted amount, the USD leg and the shop's profit per side
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   request body dto.CalculateConversionRequest true "Currencies and amount"
// @Success 200 {object} domain.ConversionResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /conversions/calculate [post]
func (h *conversionHandler) calculateConversion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CalculateConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CalculateConversion", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	res, err := h.conversionService.Calculate(c.Request.Context(), req.FromCurrencyID, req.ToCurrencyID, req.Amount)
	if err != nil {
		respondWithError(c, logger, err, "Currency", "calculate conversion")
		return
	}
	c.JSON(http.StatusOK, res)
}

// calculateReverseProfits godoc
// @Summary Profit breakdown from a known payout
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   request body dto.ReverseProfitsRequest true "Currencies and converted amount"
// @Success 200 {object} domain.ProfitResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /conversions/reverse-profits [post]
func (h *conversionHandler) calculateReverseProfits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReverseProfitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseProfits", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	res, err := h.conversionService.CalculateReverseProfits(c.Request.Context(), req.FromCurrencyID, req.ToCurrencyID, req.ConvertedAmount)
	if err != nil {
		respondWithError(c, logger, err, "Currency", "calculate profits")
		return
	}
	c.JSON(http.StatusOK, res)
}
