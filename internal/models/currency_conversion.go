package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyConversion is the stored representation of one ledger entry.
type CurrencyConversion struct {
	ConversionID    string          `json:"conversionID"` // Primary Key (UUID)
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"` // NUMERIC(18,2)
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`    // NUMERIC(18,6)
	ConversionDate  time.Time       `json:"conversionDate"`
}
