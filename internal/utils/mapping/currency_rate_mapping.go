package mapping

import (
	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	"github.com/SscSPs/dkk_exchange_service/internal/models"
)

// ToModelCurrencyRate converts a domain CurrencyRate to a model CurrencyRate
func ToModelCurrencyRate(d domain.CurrencyRate) models.CurrencyRate {
	return models.CurrencyRate{
		CurrencyRateID:  d.CurrencyRateID,
		CurrencyCode:    d.CurrencyCode,
		CurrencyName:    d.CurrencyName,
		RateToReference: d.RateToReference,
		FetchedAt:       d.FetchedAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ToDomainCurrencyRate converts a model CurrencyRate to a domain CurrencyRate
func ToDomainCurrencyRate(m models.CurrencyRate) domain.CurrencyRate {
	return domain.CurrencyRate{
		CurrencyRateID:  m.CurrencyRateID,
		CurrencyCode:    m.CurrencyCode,
		CurrencyName:    m.CurrencyName,
		RateToReference: m.RateToReference,
		FetchedAt:       m.FetchedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ToDomainCurrencyRateSlice converts a slice of model CurrencyRates to domain CurrencyRates
func ToDomainCurrencyRateSlice(ms []models.CurrencyRate) []domain.CurrencyRate {
	if ms == nil {
		return []domain.CurrencyRate{}
	}
	ds := make([]domain.CurrencyRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrencyRate(m)
	}
	return ds
}
