package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/apperrors"
	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	portssvc "github.com/SscSPs/dkk_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/dkk_exchange_service/internal/core/services"
	"github.com/SscSPs/dkk_exchange_service/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ConversionServiceTestSuite struct {
	suite.Suite
	mockRates  *MockCurrencyRateRepository
	mockLedger *MockConversionRepository
	metrics    *metrics.ExchangeMetrics
	service    portssvc.ConversionSvcFacade
	ctx        context.Context
	now        time.Time
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	suite.mockRates = new(MockCurrencyRateRepository)
	suite.mockLedger = new(MockConversionRepository)
	suite.metrics = metrics.NewExchangeMetrics(prometheus.NewRegistry())
	suite.now = time.Date(2025, 11, 22, 7, 16, 46, 0, time.UTC)
	suite.service = services.NewConversionService(suite.mockRates, suite.mockLedger,
		services.WithConversionMetrics(suite.metrics),
		services.WithClock(func() time.Time { return suite.now }),
	)
	suite.ctx = context.Background()
}

func (suite *ConversionServiceTestSuite) storedRate(code, rate string) *domain.CurrencyRate {
	return &domain.CurrencyRate{CurrencyCode: code, RateToReference: decimal.RequireFromString(rate)}
}

func (suite *ConversionServiceTestSuite) TestConvertToReference_Success() {
	suite.mockRates.On("FindRateByCode", suite.ctx, "USD").Return(suite.storedRate("USD", "6.85"), nil).Once()
	suite.mockLedger.On("SaveConversion", suite.ctx, mock.AnythingOfType("domain.CurrencyConversion")).Return(nil).Once()

	result, err := suite.service.ConvertToReference(suite.ctx, "usd", decimal.NewFromInt(100))

	suite.Require().NoError(err)
	suite.NotEmpty(result.ConversionID)
	suite.Equal("USD", result.FromCurrency)
	suite.Equal("DKK", result.ToCurrency)
	suite.Equal("685.00", result.ConvertedAmount.StringFixed(2))
	suite.True(decimal.RequireFromString("6.85").Equal(result.ExchangeRate))
	suite.Equal(suite.now, result.ConversionDate)

	saved := suite.mockLedger.Calls[0].Arguments.Get(1).(domain.CurrencyConversion)
	suite.Equal(*result, saved, "the returned entry is exactly what was persisted")
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.ConversionsTotal.WithLabelValues("USD")))
}

func (suite *ConversionServiceTestSuite) TestConvertToReference_DateHasMicrosecondPrecision() {
	suite.now = time.Date(2025, 11, 22, 7, 16, 46, 123456789, time.FixedZone("CET", 3600))
	suite.mockRates.On("FindRateByCode", suite.ctx, "USD").Return(suite.storedRate("USD", "6.85"), nil).Once()
	suite.mockLedger.On("SaveConversion", suite.ctx, mock.AnythingOfType("domain.CurrencyConversion")).Return(nil).Once()

	result, err := suite.service.ConvertToReference(suite.ctx, "USD", decimal.NewFromInt(1))

	suite.Require().NoError(err)
	expected := time.Date(2025, 11, 22, 6, 16, 46, 123456000, time.UTC)
	suite.Equal(expected, result.ConversionDate)
	suite.Equal(time.UTC, result.ConversionDate.Location())

	saved := suite.mockLedger.Calls[0].Arguments.Get(1).(domain.CurrencyConversion)
	suite.Equal(expected, saved.ConversionDate)
}

func (suite *ConversionServiceTestSuite) TestConvertToReference_RoundsHalfAwayFromZero() {
	tests := []struct {
		amount   string
		rate     string
		expected string
	}{
		{"1", "0.125", "0.13"},
		{"1", "0.124999", "0.12"},
		{"3.33", "7.461235", "24.85"},
		{"0.01", "0.043821", "0.00"},
	}

	for _, tt := range tests {
		suite.Run(tt.amount+"x"+tt.rate, func() {
			suite.SetupTest()
			suite.mockRates.On("FindRateByCode", suite.ctx, "EUR").Return(suite.storedRate("EUR", tt.rate), nil).Once()
			suite.mockLedger.On("SaveConversion", suite.ctx, mock.Anything).Return(nil).Once()

			result, err := suite.service.ConvertToReference(suite.ctx, "EUR", decimal.RequireFromString(tt.amount))

			suite.Require().NoError(err)
			suite.Equal(tt.expected, result.ConvertedAmount.StringFixed(2))
		})
	}
}

func (suite *ConversionServiceTestSuite) TestConvertToReference_ReferenceCurrencyShortCircuits() {
	suite.mockLedger.On("SaveConversion", suite.ctx, mock.Anything).Return(nil).Once()
	amount := decimal.RequireFromString("123.456")

	result, err := suite.service.ConvertToReference(suite.ctx, "dkk", amount)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(1).Equal(result.ExchangeRate))
	suite.True(amount.Equal(result.ConvertedAmount), "no rounding on the trivial conversion")
	suite.Equal("DKK", result.FromCurrency)
	suite.mockRates.AssertNotCalled(suite.T(), "FindRateByCode", mock.Anything, mock.Anything)
	suite.mockLedger.AssertNumberOfCalls(suite.T(), "SaveConversion", 1)
}

func (suite *ConversionServiceTestSuite) TestConvertToReference_InvalidAmount() {
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		result, err := suite.service.ConvertToReference(suite.ctx, "USD", amount)

		suite.Nil(result)
		suite.ErrorIs(err, apperrors.ErrInvalidAmount)
		suite.ErrorIs(err, apperrors.ErrValidation)
		var invalid *apperrors.InvalidAmountError
		suite.Require().ErrorAs(err, &invalid)
		suite.True(amount.Equal(invalid.Amount))
	}
	suite.mockLedger.AssertNotCalled(suite.T(), "SaveConversion", mock.Anything, mock.Anything)
	suite.Equal(2.0, testutil.ToFloat64(suite.metrics.ConversionErrorsTotal.WithLabelValues("invalid_amount")))
}

func (suite *ConversionServiceTestSuite) TestConvertToReference_UnknownCurrency() {
	suite.mockRates.On("FindRateByCode", suite.ctx, "XYZ").Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.ConvertToReference(suite.ctx, "xyz", decimal.NewFromInt(10))

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrCurrencyNotFound)
	suite.EqualError(err, "currency 'XYZ' not found")
	suite.mockLedger.AssertNotCalled(suite.T(), "SaveConversion", mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConvertToReference_LookupErrorPropagates() {
	suite.mockRates.On("FindRateByCode", suite.ctx, "USD").Return(nil, assert.AnError).Once()

	result, err := suite.service.ConvertToReference(suite.ctx, "USD", decimal.NewFromInt(10))

	suite.Nil(result)
	suite.ErrorIs(err, assert.AnError)
	suite.mockLedger.AssertNotCalled(suite.T(), "SaveConversion", mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConvertToReference_SaveErrorReturnsNoResult() {
	suite.mockRates.On("FindRateByCode", suite.ctx, "USD").Return(suite.storedRate("USD", "6.85"), nil).Once()
	suite.mockLedger.On("SaveConversion", suite.ctx, mock.Anything).Return(assert.AnError).Once()

	result, err := suite.service.ConvertToReference(suite.ctx, "USD", decimal.NewFromInt(10))

	suite.Nil(result)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *ConversionServiceTestSuite) TestConvertToReference_CancelledBeforeWrite() {
	ctx, cancel := context.WithCancel(context.Background())
	suite.mockRates.On("FindRateByCode", ctx, "USD").
		Run(func(args mock.Arguments) { cancel() }).
		Return(suite.storedRate("USD", "6.85"), nil).Once()

	result, err := suite.service.ConvertToReference(ctx, "USD", decimal.NewFromInt(10))

	suite.Nil(result)
	suite.ErrorIs(err, context.Canceled)
	suite.mockLedger.AssertNotCalled(suite.T(), "SaveConversion", mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestGetConversionHistory_StartAfterEnd() {
	start := suite.now
	end := suite.now.Add(-time.Hour)

	result, err := suite.service.GetConversionHistory(suite.ctx, domain.ConversionFilter{StartDate: &start, EndDate: &end})

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedger.AssertNotCalled(suite.T(), "ListConversions", mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestGetConversionHistory_NormalizesCurrency() {
	code := "usd"
	start := suite.now.Add(-time.Hour)
	suite.mockLedger.On("ListConversions", suite.ctx, mock.MatchedBy(func(f domain.ConversionFilter) bool {
		return f.FromCurrency != nil && *f.FromCurrency == "USD" && f.StartDate.Equal(start) && f.EndDate == nil
	})).Return(nil, nil).Once()

	result, err := suite.service.GetConversionHistory(suite.ctx, domain.ConversionFilter{FromCurrency: &code, StartDate: &start})

	suite.NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
	suite.Equal("usd", code, "caller's filter is not mutated")
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestReferenceCurrency() {
	suite.Equal("DKK", suite.service.ReferenceCurrency())

	custom := services.NewConversionService(suite.mockRates, suite.mockLedger, services.WithReferenceCurrency("eur"))
	suite.Equal("EUR", custom.ReferenceCurrency())
}

func TestConversionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}
