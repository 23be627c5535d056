package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyRate is the stored representation of the latest rate for one currency.
type CurrencyRate struct {
	CurrencyRateID  string          `json:"currencyRateID"` // Primary Key (UUID)
	CurrencyCode    string          `json:"currencyCode"`   // Unique
	CurrencyName    string          `json:"currencyName"`
	RateToReference decimal.Decimal `json:"rateToReference"` // NUMERIC(18,6)
	FetchedAt       time.Time       `json:"fetchedAt"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       *time.Time      `json:"updatedAt,omitempty"`
}
