package services_test

import (
	"context"

	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockCurrencyRateRepository is a mock type for the CurrencyRateRepositoryFacade interface
type MockCurrencyRateRepository struct {
	mock.Mock
}

func (m *MockCurrencyRateRepository) FindRateByCode(ctx context.Context, currencyCode string) (*domain.CurrencyRate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRate), args.Error(1)
}

func (m *MockCurrencyRateRepository) ListRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRate), args.Error(1)
}

func (m *MockCurrencyRateRepository) UpsertRate(ctx context.Context, candidate domain.RateCandidate) (bool, error) {
	args := m.Called(ctx, candidate)
	return args.Bool(0), args.Error(1)
}

func (m *MockCurrencyRateRepository) BulkUpsertRates(ctx context.Context, candidates []domain.RateCandidate) (int, error) {
	args := m.Called(ctx, candidates)
	return args.Int(0), args.Error(1)
}

// MockConversionRepository is a mock type for the ConversionRepositoryFacade interface
type MockConversionRepository struct {
	mock.Mock
}

func (m *MockConversionRepository) SaveConversion(ctx context.Context, conversion domain.CurrencyConversion) error {
	args := m.Called(ctx, conversion)
	return args.Error(0)
}

func (m *MockConversionRepository) ListConversions(ctx context.Context, filter domain.ConversionFilter) ([]domain.CurrencyConversion, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyConversion), args.Error(1)
}

// MockRateFetcher is a mock type for the RateFetcher interface
type MockRateFetcher struct {
	mock.Mock
}

func (m *MockRateFetcher) FetchLatestRates(ctx context.Context) ([]domain.RateCandidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateCandidate), args.Error(1)
}
