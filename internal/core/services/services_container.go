package services

import (
	"github.com/SscSPs/dkk_exchange_service/internal/core/ports/feeds"
	portsrepo "github.com/SscSPs/dkk_exchange_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dkk_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/dkk_exchange_service/internal/platform/config"
	"github.com/SscSPs/dkk_exchange_service/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// RateSync is left nil; the caller attaches the background job that drives reconciliation.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, fetcher feeds.RateFetcher, m *metrics.ExchangeMetrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.CurrencyRate = NewCurrencyRateService(
		repos.CurrencyRateRepo,
		fetcher,
		WithCurrencyRateMetrics(m),
	)

	container.Conversion = NewConversionService(
		repos.CurrencyRateRepo,
		repos.ConversionRepo,
		WithReferenceCurrency(cfg.ReferenceCurrency),
		WithConversionMetrics(m),
	)

	container.Auth = NewAuthService(
		NewStaticClientProvider(cfg.APIClients),
		cfg.JWTSecret,
		cfg.JWTExpiryDuration,
		cfg.JWTIssuer,
	)

	return container
}
