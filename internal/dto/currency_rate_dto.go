package dto

import (
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	"github.com/SscSPs/dkk_exchange_service/internal/utils"
)

// CurrencyRateResponse defines the structure for API responses containing a currency rate.
type CurrencyRateResponse struct {
	CurrencyCode    string     `json:"currencyCode"`
	CurrencyName    string     `json:"currencyName"`
	RateToReference string     `json:"rateToReference" example:"6.850000"`
	FetchedAt       time.Time  `json:"fetchedAt"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// ListCurrencyRatesResponse wraps all stored rates.
type ListCurrencyRatesResponse struct {
	ReferenceCurrency string                 `json:"referenceCurrency"`
	Rates             []CurrencyRateResponse `json:"rates"`
	Count             int                    `json:"count"`
}

// UpdateRatesResponse is returned by the manual reconciliation trigger.
type UpdateRatesResponse struct {
	Message      string    `json:"message"`
	UpdatedCount int       `json:"updatedCount"`
	Timestamp    time.Time `json:"timestamp"`
}

// ToCurrencyRateResponse converts a domain.CurrencyRate to CurrencyRateResponse DTO
func ToCurrencyRateResponse(rate *domain.CurrencyRate) CurrencyRateResponse {
	return CurrencyRateResponse{
		CurrencyCode:    rate.CurrencyCode,
		CurrencyName:    rate.CurrencyName,
		RateToReference: utils.FormatRate(rate.RateToReference),
		FetchedAt:       rate.FetchedAt,
		UpdatedAt:       rate.UpdatedAt,
	}
}

// ToListCurrencyRatesResponse converts a slice of domain.CurrencyRate to ListCurrencyRatesResponse
func ToListCurrencyRatesResponse(referenceCurrency string, rates []domain.CurrencyRate) ListCurrencyRatesResponse {
	responses := make([]CurrencyRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToCurrencyRateResponse(&rates[i])
	}
	return ListCurrencyRatesResponse{
		ReferenceCurrency: referenceCurrency,
		Rates:             responses,
		Count:             len(responses),
	}
}
