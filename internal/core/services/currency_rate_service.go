package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/dkk_exchange_service/internal/apperrors"
	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	"github.com/SscSPs/dkk_exchange_service/internal/core/ports/feeds"
	portsrepo "github.com/SscSPs/dkk_exchange_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dkk_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/dkk_exchange_service/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

// currencyRateService serves rate reads and is the only writer of the rate store.
type currencyRateService struct {
	BaseService
	rateRepo portsrepo.CurrencyRateRepositoryFacade
	fetcher  feeds.RateFetcher
	metrics  *metrics.ExchangeMetrics
}

// CurrencyRateServiceOption configures optional dependencies of the currency rate service.
type CurrencyRateServiceOption func(*currencyRateService)

// WithCurrencyRateMetrics records reconciliation counters on m.
func WithCurrencyRateMetrics(m *metrics.ExchangeMetrics) CurrencyRateServiceOption {
	return func(s *currencyRateService) {
		s.metrics = m
	}
}

// NewCurrencyRateService creates the rate reader and reconciler.
func NewCurrencyRateService(rateRepo portsrepo.CurrencyRateRepositoryFacade, fetcher feeds.RateFetcher, options ...CurrencyRateServiceOption) portssvc.CurrencyRateSvcFacade {
	svc := &currencyRateService{
		rateRepo: rateRepo,
		fetcher:  fetcher,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CurrencyRateSvcFacade = (*currencyRateService)(nil)

// GetRateByCode retrieves the stored rate for one currency.
func (s *currencyRateService) GetRateByCode(ctx context.Context, currencyCode string) (*domain.CurrencyRate, error) {
	code := domain.NormalizeCurrencyCode(currencyCode)
	if !domain.IsValidCurrencyCode(code) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("currency code '%s' must be exactly 3 letters", currencyCode))
	}

	rate, err := s.rateRepo.FindRateByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.CurrencyNotFoundError{Code: code}
		}
		s.LogError(ctx, err, "Failed to find rate in repository", slog.String("currencyCode", code))
		return nil, err
	}
	return rate, nil
}

// ListRates returns every stored rate ordered by code.
func (s *currencyRateService) ListRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	rates, err := s.rateRepo.ListRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rates from repository")
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	if rates == nil {
		return []domain.CurrencyRate{}, nil
	}
	return rates, nil
}

// ReconcileRates merges candidates into the rate store.
// Malformed candidates are dropped and logged; an empty batch never touches the store.
func (s *currencyRateService) ReconcileRates(ctx context.Context, candidates []domain.RateCandidate) (int, error) {
	if len(candidates) == 0 {
		s.LogInfo(ctx, "No rate candidates to reconcile")
		return 0, nil
	}

	valid := s.sanitize(ctx, candidates)
	if len(valid) == 0 {
		s.LogWarn(ctx, "All rate candidates were rejected", slog.Int("received", len(candidates)))
		return 0, nil
	}

	if err := ctx.Err(); err != nil {
		s.LogWarn(ctx, "Reconciliation cancelled before writing rates", slog.String("error", err.Error()))
		return 0, err
	}

	count, err := s.rateRepo.BulkUpsertRates(ctx, valid)
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert rates", slog.Int("candidates", len(valid)))
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.RatesUpsertedTotal.Add(float64(count))
	}
	s.LogInfo(ctx, "Rates reconciled", slog.Int("received", len(candidates)), slog.Int("updated", count))
	return count, nil
}

// UpdateRatesFromSource fetches the external feed and reconciles it.
func (s *currencyRateService) UpdateRatesFromSource(ctx context.Context) (int, error) {
	candidates, err := s.fetcher.FetchLatestRates(ctx)
	if err != nil {
		return 0, err
	}
	return s.ReconcileRates(ctx, candidates)
}

// sanitize normalizes codes, drops invalid candidates and keeps the last candidate per code.
func (s *currencyRateService) sanitize(ctx context.Context, candidates []domain.RateCandidate) []domain.RateCandidate {
	byCode := make(map[string]int, len(candidates))
	valid := make([]domain.RateCandidate, 0, len(candidates))

	for _, candidate := range candidates {
		code := domain.NormalizeCurrencyCode(candidate.CurrencyCode)
		if !domain.IsValidCurrencyCode(code) {
			s.LogWarn(ctx, "Dropping rate candidate with invalid currency code", slog.String("currencyCode", candidate.CurrencyCode))
			s.skip(metrics.SkipInvalidCode)
			continue
		}
		if candidate.Rate.LessThanOrEqual(decimal.Zero) {
			s.LogWarn(ctx, "Dropping rate candidate with non-positive rate",
				slog.String("currencyCode", code), slog.String("rate", candidate.Rate.String()))
			s.skip(metrics.SkipNonPositive)
			continue
		}

		candidate.CurrencyCode = code
		if candidate.CurrencyName == "" {
			candidate.CurrencyName = code
		}

		if idx, seen := byCode[code]; seen {
			valid[idx] = candidate
			continue
		}
		byCode[code] = len(valid)
		valid = append(valid, candidate)
	}
	return valid
}

func (s *currencyRateService) skip(reason string) {
	if s.metrics != nil {
		s.metrics.FeedRecordsSkippedTotal.WithLabelValues(reason).Inc()
	}
}
