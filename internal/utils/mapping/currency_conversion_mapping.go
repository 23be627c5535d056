package mapping

import (
	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	"github.com/SscSPs/dkk_exchange_service/internal/models"
)

// ToModelCurrencyConversion converts a domain CurrencyConversion to a model CurrencyConversion
func ToModelCurrencyConversion(d domain.CurrencyConversion) models.CurrencyConversion {
	return models.CurrencyConversion{
		ConversionID:    d.ConversionID,
		FromCurrency:    d.FromCurrency,
		ToCurrency:      d.ToCurrency,
		OriginalAmount:  d.OriginalAmount,
		ConvertedAmount: d.ConvertedAmount,
		ExchangeRate:    d.ExchangeRate,
		ConversionDate:  d.ConversionDate,
	}
}

// ToDomainCurrencyConversion converts a model CurrencyConversion to a domain CurrencyConversion
func ToDomainCurrencyConversion(m models.CurrencyConversion) domain.CurrencyConversion {
	return domain.CurrencyConversion{
		ConversionID:    m.ConversionID,
		FromCurrency:    m.FromCurrency,
		ToCurrency:      m.ToCurrency,
		OriginalAmount:  m.OriginalAmount,
		ConvertedAmount: m.ConvertedAmount,
		ExchangeRate:    m.ExchangeRate,
		ConversionDate:  m.ConversionDate,
	}
}

// ToDomainCurrencyConversionSlice converts a slice of model CurrencyConversions to domain CurrencyConversions
func ToDomainCurrencyConversionSlice(ms []models.CurrencyConversion) []domain.CurrencyConversion {
	if ms == nil {
		return []domain.CurrencyConversion{}
	}
	ds := make([]domain.CurrencyConversion, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrencyConversion(m)
	}
	return ds
}
