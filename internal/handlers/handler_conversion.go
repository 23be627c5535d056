package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/apperrors"
	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	portssvc "github.com/SscSPs/dkk_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/dkk_exchange_service/internal/dto"
	"github.com/SscSPs/dkk_exchange_service/internal/middleware"
	"github.com/SscSPs/dkk_exchange_service/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

const queryDateLayout = "2006-01-02"

// conversionHandler handles HTTP requests related to conversions.
type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

func newConversionHandler(cs portssvc.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{conversionService: cs}
}

// registerConversionRoutes registers routes related to conversions.
// convertLimit guards the write path; pass nil to disable it.
func registerConversionRoutes(rg *gin.RouterGroup, cs portssvc.ConversionSvcFacade, convertLimit gin.HandlerFunc) {
	h := newConversionHandler(cs)

	conversions := rg.Group("/conversions")
	{
		if convertLimit != nil {
			conversions.POST("/convert", convertLimit, h.convert)
		} else {
			conversions.POST("/convert", h.convert)
		}
		conversions.GET("/history", h.getHistory)
	}
}

// convert godoc
// @Summary Convert an amount to the reference currency
// @Description Converts an amount of a foreign currency using the stored rate and records the conversion
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Conversion details"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} AmountErrorResponse "Invalid input or non-positive amount"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} CurrencyErrorResponse "Currency not found"
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Failure 500 {object} ErrorResponse "Failed to convert amount"
// @Security BearerAuth
// @Router /conversions/convert [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if !req.Amount.Equal(domain.RoundAmount(req.Amount)) {
		c.JSON(http.StatusBadRequest, AmountErrorResponse{
			Error:  fmt.Sprintf("amount must have at most %d decimal places", domain.AmountPrecision),
			Amount: req.Amount.String(),
		})
		return
	}

	logger.Info("Received request to convert amount",
		slog.String("fromCurrency", req.FromCurrency),
		slog.String("amount", req.Amount.String()),
	)

	result, err := h.conversionService.ConvertToReference(c.Request.Context(), req.FromCurrency, req.Amount)
	if err != nil {
		var invalidAmount *apperrors.InvalidAmountError
		var notFound *apperrors.CurrencyNotFoundError
		switch {
		case errors.As(err, &invalidAmount):
			c.JSON(http.StatusBadRequest, AmountErrorResponse{Error: err.Error(), Amount: invalidAmount.Amount.String()})
		case errors.As(err, &notFound):
			c.JSON(http.StatusNotFound, CurrencyErrorResponse{Error: err.Error(), CurrencyCode: notFound.Code})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to convert amount in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to convert amount"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponse(result))
}

// getHistory godoc
// @Summary Get conversion history
// @Description Lists recorded conversions, most recent first, optionally filtered by currency and date range
// @Tags conversions
// @Produce  json
// @Param   fromCurrency query string false "Source currency code (3 letters)"
// @Param   startDate query string false "Inclusive lower bound (RFC 3339 or YYYY-MM-DD)"
// @Param   endDate query string false "Inclusive upper bound (RFC 3339 or YYYY-MM-DD, a date covers the whole day)"
// @Param   limit query int false "Maximum number of entries per page" minimum(1) maximum(500)
// @Param   nextToken query string false "Token from a previous page"
// @Success 200 {object} dto.ConversionHistoryResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters or startDate after endDate"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to retrieve conversion history"
// @Security BearerAuth
// @Router /conversions/history [get]
func (h *conversionHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.ConversionHistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter, err := buildConversionFilter(query)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	conversions, err := h.conversionService.GetConversionHistory(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to get conversion history from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve conversion history"})
		return
	}

	// One extra entry was requested to learn whether another page exists.
	var nextToken *string
	if query.Limit > 0 && len(conversions) > query.Limit {
		conversions = conversions[:query.Limit]
		last := conversions[len(conversions)-1]
		token := pagination.EncodeConversionToken(last.ConversionDate, last.ConversionID)
		nextToken = &token
	}

	c.JSON(http.StatusOK, dto.ToConversionHistoryResponse(conversions, nextToken))
}

func buildConversionFilter(query dto.ConversionHistoryQuery) (domain.ConversionFilter, error) {
	var filter domain.ConversionFilter

	if query.FromCurrency != "" {
		code := domain.NormalizeCurrencyCode(query.FromCurrency)
		filter.FromCurrency = &code
	}

	start, err := parseQueryTime(query.StartDate, false)
	if err != nil {
		return filter, fmt.Errorf("invalid startDate: %w", err)
	}
	filter.StartDate = start

	end, err := parseQueryTime(query.EndDate, true)
	if err != nil {
		return filter, fmt.Errorf("invalid endDate: %w", err)
	}
	filter.EndDate = end

	if query.Limit > 0 {
		filter.Limit = query.Limit + 1
	}

	if query.NextToken != "" {
		cursor, err := pagination.DecodeConversionToken(query.NextToken)
		if err != nil {
			return filter, fmt.Errorf("invalid nextToken")
		}
		filter.Before = cursor
	}
	return filter, nil
}

// parseQueryTime accepts RFC 3339 or YYYY-MM-DD. A bare date used as an upper bound
// extends to the last instant of that day.
func parseQueryTime(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(queryDateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%q is neither RFC 3339 nor YYYY-MM-DD", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
