package repositories

import (
	"context"

	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
)

// CurrencyRateReader defines read operations for currency rate data
type CurrencyRateReader interface {
	// FindRateByCode retrieves the current rate for a currency code.
	// Returns apperrors.ErrNotFound when no rate is stored for the code.
	FindRateByCode(ctx context.Context, currencyCode string) (*domain.CurrencyRate, error)

	// ListRates retrieves all rates ordered by currency code ascending.
	ListRates(ctx context.Context) ([]domain.CurrencyRate, error)
}

// CurrencyRateWriter defines write operations for currency rate data
type CurrencyRateWriter interface {
	// UpsertRate inserts a new rate or overwrites the rate, name and fetched time of the
	// existing one. It reports whether a new row was inserted.
	UpsertRate(ctx context.Context, candidate domain.RateCandidate) (bool, error)

	// BulkUpsertRates applies UpsertRate for every candidate and returns how many
	// rows were inserted or updated. A failed batch returns a zero count.
	BulkUpsertRates(ctx context.Context, candidates []domain.RateCandidate) (int, error)
}

// CurrencyRateRepositoryFacade combines all currency rate-related repository interfaces
type CurrencyRateRepositoryFacade interface {
	CurrencyRateReader
	CurrencyRateWriter
}
