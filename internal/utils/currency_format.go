package utils

import (
	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount renders a monetary amount with exactly two fractional digits.
// Example: 685 returns "685.00", 12.345 returns "12.35"
func FormatAmount(amount decimal.Decimal) string {
	return FormatWithPrecision(amount, domain.AmountPrecision)
}

// FormatRate renders an exchange rate with exactly six fractional digits.
// Example: 6.85 returns "6.850000"
func FormatRate(rate decimal.Decimal) string {
	return FormatWithPrecision(rate, domain.RatePrecision)
}

// FormatWithPrecision formats an amount with the given precision, rounding half away from zero
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.Round(precision).StringFixed(precision)
}
