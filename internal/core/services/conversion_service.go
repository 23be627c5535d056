package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/apperrors"
	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	portsrepo "github.com/SscSPs/dkk_exchange_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dkk_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/dkk_exchange_service/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultReferenceCurrency is the currency every conversion targets unless configured otherwise.
const DefaultReferenceCurrency = "DKK"

// Conversion error reasons used by ConversionErrorsTotal.
const (
	reasonInvalidAmount    = "invalid_amount"
	reasonCurrencyNotFound = "currency_not_found"
	reasonInternal         = "internal"
)

type conversionService struct {
	BaseService
	rateReader        portsrepo.CurrencyRateReader
	ledger            portsrepo.ConversionRepositoryFacade
	referenceCurrency string
	metrics           *metrics.ExchangeMetrics
	now               func() time.Time
}

// ConversionServiceOption configures optional dependencies of the conversion service.
type ConversionServiceOption func(*conversionService)

// WithReferenceCurrency overrides DefaultReferenceCurrency.
func WithReferenceCurrency(code string) ConversionServiceOption {
	return func(s *conversionService) {
		if normalized := domain.NormalizeCurrencyCode(code); normalized != "" {
			s.referenceCurrency = normalized
		}
	}
}

// WithConversionMetrics records conversion counters on m.
func WithConversionMetrics(m *metrics.ExchangeMetrics) ConversionServiceOption {
	return func(s *conversionService) {
		s.metrics = m
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) ConversionServiceOption {
	return func(s *conversionService) {
		s.now = now
	}
}

// NewConversionService creates the conversion engine and ledger reader.
func NewConversionService(rateReader portsrepo.CurrencyRateReader, ledger portsrepo.ConversionRepositoryFacade, options ...ConversionServiceOption) portssvc.ConversionSvcFacade {
	svc := &conversionService{
		rateReader:        rateReader,
		ledger:            ledger,
		referenceCurrency: DefaultReferenceCurrency,
		now:               time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ConversionSvcFacade = (*conversionService)(nil)

func (s *conversionService) ReferenceCurrency() string {
	return s.referenceCurrency
}

// ConvertToReference converts amount of currencyCode into the reference currency and
// appends exactly one ledger entry before returning. Failures append nothing.
func (s *conversionService) ConvertToReference(ctx context.Context, currencyCode string, amount decimal.Decimal) (*domain.CurrencyConversion, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		s.fail(reasonInvalidAmount)
		return nil, &apperrors.InvalidAmountError{Amount: amount}
	}

	code := domain.NormalizeCurrencyCode(currencyCode)

	rate := decimal.NewFromInt(1)
	converted := amount
	if code != s.referenceCurrency {
		stored, err := s.rateReader.FindRateByCode(ctx, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.fail(reasonCurrencyNotFound)
				return nil, &apperrors.CurrencyNotFoundError{Code: code}
			}
			s.fail(reasonInternal)
			s.LogError(ctx, err, "Failed to look up rate for conversion", slog.String("currencyCode", code))
			return nil, err
		}
		rate = stored.RateToReference
		converted = domain.RoundAmount(amount.Mul(rate))
	}

	conversion := domain.CurrencyConversion{
		ConversionID:    uuid.NewString(),
		FromCurrency:    code,
		ToCurrency:      s.referenceCurrency,
		OriginalAmount:  amount,
		ConvertedAmount: converted,
		ExchangeRate:    rate,
		// TIMESTAMPTZ keeps microseconds; the returned entry must match a later read.
		ConversionDate: s.now().UTC().Truncate(time.Microsecond),
	}

	// Nothing has been written yet, so a cancelled caller leaves no trace.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.ledger.SaveConversion(ctx, conversion); err != nil {
		s.fail(reasonInternal)
		s.LogError(ctx, err, "Failed to save conversion", slog.String("conversionID", conversion.ConversionID))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ConversionsTotal.WithLabelValues(code).Inc()
		s.metrics.ConvertedAmountTotal.WithLabelValues(code).Add(converted.InexactFloat64())
	}
	s.LogInfo(ctx, "Conversion recorded",
		slog.String("conversionID", conversion.ConversionID),
		slog.String("fromCurrency", code),
		slog.String("originalAmount", amount.String()),
		slog.String("convertedAmount", converted.String()),
		slog.String("exchangeRate", rate.String()))
	return &conversion, nil
}

// GetConversionHistory returns ledger entries matching filter, most recent first.
func (s *conversionService) GetConversionHistory(ctx context.Context, filter domain.ConversionFilter) ([]domain.CurrencyConversion, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, apperrors.NewValidationError("start date must not be after end date")
	}
	if filter.FromCurrency != nil {
		code := domain.NormalizeCurrencyCode(*filter.FromCurrency)
		filter.FromCurrency = &code
	}

	conversions, err := s.ledger.ListConversions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list conversions")
		return nil, err
	}
	if conversions == nil {
		return []domain.CurrencyConversion{}, nil
	}
	return conversions, nil
}

func (s *conversionService) fail(reason string) {
	if s.metrics != nil {
		s.metrics.ConversionErrorsTotal.WithLabelValues(reason).Inc()
	}
}
