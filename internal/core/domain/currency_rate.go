package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RatePrecision is the number of fractional digits kept for exchange rates.
const RatePrecision int32 = 6

// CurrencyRate is the latest known rate of one currency against the reference currency.
// CurrencyCode is the natural key: at most one CurrencyRate exists per code.
type CurrencyRate struct {
	CurrencyRateID  string          `json:"currencyRateID"`  // Primary Key (e.g., UUID)
	CurrencyCode    string          `json:"currencyCode"`    // Unique, upper-case (e.g., "USD")
	CurrencyName    string          `json:"currencyName"`    // e.g., "Amerikanske dollar"
	RateToReference decimal.Decimal `json:"rateToReference"` // Reference units per 1 unit of CurrencyCode
	FetchedAt       time.Time       `json:"fetchedAt"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       *time.Time      `json:"updatedAt,omitempty"`
}

// RateCandidate is a parsed but not yet reconciled record from the external feed.
// Rate is already normalized to reference units per 1 unit of the currency.
type RateCandidate struct {
	CurrencyCode string
	CurrencyName string
	Rate         decimal.Decimal
	FetchedAt    time.Time
}

// NormalizeCurrencyCode trims and upper-cases a currency code.
func NormalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidCurrencyCode reports whether code is exactly three ASCII letters.
func IsValidCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// RoundRate rounds a rate to RatePrecision fractional digits.
func RoundRate(rate decimal.Decimal) decimal.Decimal {
	return rate.Round(RatePrecision)
}
