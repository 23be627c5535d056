package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/apperrors"
	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	portssvc "github.com/SscSPs/dkk_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/dkk_exchange_service/internal/dto"
	"github.com/SscSPs/dkk_exchange_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyRateHandler handles HTTP requests related to currency rates.
type currencyRateHandler struct {
	rateService       portssvc.CurrencyRateReaderSvc
	rateSync          portssvc.RateSyncTrigger
	referenceCurrency string
}

func newCurrencyRateHandler(rs portssvc.CurrencyRateReaderSvc, sync portssvc.RateSyncTrigger, referenceCurrency string) *currencyRateHandler {
	return &currencyRateHandler{
		rateService:       rs,
		rateSync:          sync,
		referenceCurrency: referenceCurrency,
	}
}

// registerCurrencyRateRoutes registers routes related to currency rates.
func registerCurrencyRateRoutes(rg *gin.RouterGroup, rs portssvc.CurrencyRateReaderSvc, sync portssvc.RateSyncTrigger, referenceCurrency string) {
	h := newCurrencyRateHandler(rs, sync, referenceCurrency)

	rates := rg.Group("/currency-rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/:currencyCode", h.getRate)
		rates.POST("/update", h.updateRates)
	}
}

// listRates godoc
// @Summary List currency rates
// @Description Retrieves every stored rate against the reference currency, ordered by currency code
// @Tags currency rates
// @Produce  json
// @Success 200 {object} dto.ListCurrencyRatesResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list currency rates"
// @Security BearerAuth
// @Router /currency-rates [get]
func (h *currencyRateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.ListRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list currency rates from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list currency rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCurrencyRatesResponse(h.referenceCurrency, rates))
}

// getRate godoc
// @Summary Get a currency rate
// @Description Retrieves the stored rate of one currency against the reference currency
// @Tags currency rates
// @Produce  json
// @Param   currencyCode path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.CurrencyRateResponse
// @Failure 400 {object} ErrorResponse "Invalid currency code format"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} CurrencyErrorResponse "Currency not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve currency rate"
// @Security BearerAuth
// @Router /currency-rates/{currencyCode} [get]
func (h *currencyRateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("currencyCode")

	if !domain.IsValidCurrencyCode(code) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Currency code must be exactly 3 letters"})
		return
	}

	rate, err := h.rateService.GetRateByCode(c.Request.Context(), code)
	if err != nil {
		var notFound *apperrors.CurrencyNotFoundError
		switch {
		case errors.As(err, &notFound):
			c.JSON(http.StatusNotFound, CurrencyErrorResponse{Error: err.Error(), CurrencyCode: notFound.Code})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to get currency rate from service", slog.String("currencyCode", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve currency rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrencyRateResponse(rate))
}

// updateRates godoc
// @Summary Update currency rates now
// @Description Fetches the external rate feed and reconciles it into the rate store. Joins a run already in progress.
// @Tags currency rates
// @Produce  json
// @Success 200 {object} dto.UpdateRatesResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 502 {object} ErrorResponse "Rate feed unavailable or malformed"
// @Failure 500 {object} ErrorResponse "Failed to update currency rates"
// @Security BearerAuth
// @Router /currency-rates/update [post]
func (h *currencyRateHandler) updateRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to update currency rates")

	count, err := h.rateSync.TriggerNow(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrFetch) || errors.Is(err, apperrors.ErrParse) {
			logger.Warn("Rate feed failed during manual update", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Rate feed unavailable or malformed"})
			return
		}
		logger.Error("Failed to update currency rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update currency rates"})
		return
	}

	c.JSON(http.StatusOK, dto.UpdateRatesResponse{
		Message:      "Currency rates updated",
		UpdatedCount: count,
		Timestamp:    time.Now().UTC(),
	})
}
