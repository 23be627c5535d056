package services

import (
	"context"

	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
)

// CurrencyRateReaderSvc defines read operations for currency rates
type CurrencyRateReaderSvc interface {
	// GetRateByCode retrieves the current rate for a currency code.
	GetRateByCode(ctx context.Context, currencyCode string) (*domain.CurrencyRate, error)

	// ListRates retrieves all rates ordered by currency code.
	ListRates(ctx context.Context) ([]domain.CurrencyRate, error)
}

// RateReconcilerSvc defines the rate synchronization operations
type RateReconcilerSvc interface {
	// ReconcileRates merges fetched candidates into the rate store and returns how many
	// rates were inserted or updated.
	ReconcileRates(ctx context.Context, candidates []domain.RateCandidate) (int, error)

	// UpdateRatesFromSource fetches the external feed and reconciles it.
	UpdateRatesFromSource(ctx context.Context) (int, error)
}

// CurrencyRateSvcFacade combines all currency rate-related service interfaces
type CurrencyRateSvcFacade interface {
	CurrencyRateReaderSvc
	RateReconcilerSvc
}

// RateSyncTrigger runs reconciliation on demand without overlapping a run already in progress.
type RateSyncTrigger interface {
	TriggerNow(ctx context.Context) (int, error)
}
