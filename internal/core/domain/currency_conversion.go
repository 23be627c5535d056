package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmountPrecision is the number of fractional digits kept for monetary amounts.
const AmountPrecision int32 = 2

// CurrencyConversion is an immutable ledger entry describing one completed conversion.
// ExchangeRate is copied by value so later rate updates never alter history.
type CurrencyConversion struct {
	ConversionID    string          `json:"conversionID"` // Primary Key (e.g., UUID)
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"` // Always the reference currency
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	ConversionDate  time.Time       `json:"conversionDate"`
}

// ConversionFilter narrows a ledger query. Nil fields impose no constraint.
// StartDate and EndDate are inclusive.
type ConversionFilter struct {
	FromCurrency *string
	StartDate    *time.Time
	EndDate      *time.Time

	// Limit caps the number of returned entries; zero means no cap.
	Limit int
	// Before, when set, only returns entries strictly older than this cursor.
	Before *ConversionCursor
}

// ConversionCursor identifies a position in the ledger's descending order.
type ConversionCursor struct {
	ConversionDate time.Time
	ConversionID   string
}

// RoundAmount rounds a monetary amount to AmountPrecision digits, half away from zero.
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(AmountPrecision)
}

// After reports whether c sorts after the cursor position in descending ledger order,
// i.e. whether it is older than the cursor.
func (c CurrencyConversion) After(cursor ConversionCursor) bool {
	if c.ConversionDate.Equal(cursor.ConversionDate) {
		return c.ConversionID < cursor.ConversionID
	}
	return c.ConversionDate.Before(cursor.ConversionDate)
}

// Matches reports whether c satisfies every constraint of f except Limit.
func (f ConversionFilter) Matches(c CurrencyConversion) bool {
	if f.FromCurrency != nil && c.FromCurrency != *f.FromCurrency {
		return false
	}
	if f.StartDate != nil && c.ConversionDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && c.ConversionDate.After(*f.EndDate) {
		return false
	}
	if f.Before != nil && !c.After(*f.Before) {
		return false
	}
	return true
}
