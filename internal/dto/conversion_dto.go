package dto

import (
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	"github.com/SscSPs/dkk_exchange_service/internal/utils"
	"github.com/shopspring/decimal"
)

// ConvertRequest defines the body of a conversion request.
type ConvertRequest struct {
	FromCurrency string          `json:"fromCurrency" binding:"required,currencycode" example:"USD"`
	Amount       decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"100.00"`
}

// ConversionHistoryQuery holds the query parameters of the history endpoint.
// Dates accept RFC 3339 timestamps or plain YYYY-MM-DD dates.
type ConversionHistoryQuery struct {
	FromCurrency string `form:"fromCurrency" binding:"omitempty,currencycode"`
	StartDate    string `form:"startDate"`
	EndDate      string `form:"endDate"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken    string `form:"nextToken"`
}

// ConversionResponse defines the structure for API responses containing one ledger entry.
type ConversionResponse struct {
	ConversionID    string    `json:"conversionId"`
	FromCurrency    string    `json:"fromCurrency"`
	ToCurrency      string    `json:"toCurrency"`
	OriginalAmount  string    `json:"originalAmount" example:"100.00"`
	ConvertedAmount string    `json:"convertedAmount" example:"685.00"`
	ExchangeRate    string    `json:"exchangeRate" example:"6.850000"`
	ConversionDate  time.Time `json:"conversionDate"`
}

// ConversionHistoryResponse wraps a page of ledger entries.
type ConversionHistoryResponse struct {
	Conversions []ConversionResponse `json:"conversions"`
	Count       int                  `json:"count"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// ToConversionResponse converts a domain.CurrencyConversion to ConversionResponse DTO
func ToConversionResponse(c *domain.CurrencyConversion) ConversionResponse {
	return ConversionResponse{
		ConversionID:    c.ConversionID,
		FromCurrency:    c.FromCurrency,
		ToCurrency:      c.ToCurrency,
		OriginalAmount:  utils.FormatAmount(c.OriginalAmount),
		ConvertedAmount: utils.FormatAmount(c.ConvertedAmount),
		ExchangeRate:    utils.FormatRate(c.ExchangeRate),
		ConversionDate:  c.ConversionDate,
	}
}

// ToConversionHistoryResponse converts ledger entries to ConversionHistoryResponse
func ToConversionHistoryResponse(conversions []domain.CurrencyConversion, nextToken *string) ConversionHistoryResponse {
	responses := make([]ConversionResponse, len(conversions))
	for i := range conversions {
		responses[i] = ToConversionResponse(&conversions[i])
	}
	return ConversionHistoryResponse{
		Conversions: responses,
		Count:       len(responses),
		NextToken:   nextToken,
	}
}
