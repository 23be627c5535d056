package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/apperrors"
	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	portssvc "github.com/SscSPs/dkk_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/dkk_exchange_service/internal/dto"
	"github.com/SscSPs/dkk_exchange_service/internal/handlers"
	"github.com/SscSPs/dkk_exchange_service/internal/platform/config"
	"github.com/SscSPs/dkk_exchange_service/internal/utils/pagination"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyRateService ---
type MockCurrencyRateService struct {
	mock.Mock
}

func (m *MockCurrencyRateService) GetRateByCode(ctx context.Context, currencyCode string) (*domain.CurrencyRate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRate), args.Error(1)
}

func (m *MockCurrencyRateService) ListRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRate), args.Error(1)
}

func (m *MockCurrencyRateService) ReconcileRates(ctx context.Context, candidates []domain.RateCandidate) (int, error) {
	args := m.Called(ctx, candidates)
	return args.Int(0), args.Error(1)
}

func (m *MockCurrencyRateService) UpdateRatesFromSource(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

var _ portssvc.CurrencyRateSvcFacade = (*MockCurrencyRateService)(nil)

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) ConvertToReference(ctx context.Context, currencyCode string, amount decimal.Decimal) (*domain.CurrencyConversion, error) {
	args := m.Called(ctx, currencyCode, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyConversion), args.Error(1)
}

func (m *MockConversionService) GetConversionHistory(ctx context.Context, filter domain.ConversionFilter) ([]domain.CurrencyConversion, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyConversion), args.Error(1)
}

func (m *MockConversionService) ReferenceCurrency() string {
	return "DKK"
}

var _ portssvc.ConversionSvcFacade = (*MockConversionService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) IssueToken(ctx context.Context, clientID, clientSecret string) (string, time.Time, error) {
	args := m.Called(ctx, clientID, clientSecret)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// --- Mock RateSyncTrigger ---
type MockRateSync struct {
	mock.Mock
}

func (m *MockRateSync) TriggerNow(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router         *gin.Engine
	jwtSecret      string
	mockRates      *MockCurrencyRateService
	mockConversion *MockConversionService
	mockAuth       *MockAuthService
	mockSync       *MockRateSync
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockRates = new(MockCurrencyRateService)
	suite.mockConversion = new(MockConversionService)
	suite.mockAuth = new(MockAuthService)
	suite.mockSync = new(MockRateSync)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{
		CurrencyRate: suite.mockRates,
		Conversion:   suite.mockConversion,
		Auth:         suite.mockAuth,
		RateSync:     suite.mockSync,
	}
	handlers.RegisterRoutes(suite.router, cfg, services, prometheus.NewRegistry(), nil)
}

func (suite *HandlersTestSuite) generateTestToken(clientID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "test",
		Subject:   clientID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *HandlersTestSuite) do(method, target string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, target, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("client-1"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) TestHealth() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestProtectedRoute_MissingToken() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/currency-rates", nil)
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRates.AssertNotCalled(suite.T(), "ListRates", mock.Anything)
}

func (suite *HandlersTestSuite) TestListRates_Success() {
	now := time.Now().UTC()
	rates := []domain.CurrencyRate{
		{CurrencyRateID: "1", CurrencyCode: "EUR", CurrencyName: "Euro", RateToReference: decimal.RequireFromString("7.4604"), FetchedAt: now},
		{CurrencyRateID: "2", CurrencyCode: "USD", CurrencyName: "US dollar", RateToReference: decimal.RequireFromString("6.85"), FetchedAt: now},
	}
	suite.mockRates.On("ListRates", mock.Anything).Return(rates, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/currency-rates", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListCurrencyRatesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("DKK", resp.ReferenceCurrency)
	suite.Equal(2, resp.Count)
	suite.Equal("EUR", resp.Rates[0].CurrencyCode)
	suite.Equal("6.850000", resp.Rates[1].RateToReference)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestListRates_Empty() {
	suite.mockRates.On("ListRates", mock.Anything).Return([]domain.CurrencyRate{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/currency-rates", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"rates":[]`)
}

func (suite *HandlersTestSuite) TestGetRate_NotFound() {
	suite.mockRates.On("GetRateByCode", mock.Anything, "XYZ").
		Return(nil, &apperrors.CurrencyNotFoundError{Code: "XYZ"}).Once()

	w := suite.do(http.MethodGet, "/api/v1/currency-rates/XYZ", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	var resp handlers.CurrencyErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("XYZ", resp.CurrencyCode)
}

func (suite *HandlersTestSuite) TestGetRate_InvalidCode() {
	w := suite.do(http.MethodGet, "/api/v1/currency-rates/US1", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRates.AssertNotCalled(suite.T(), "GetRateByCode", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestUpdateRates_Success() {
	suite.mockSync.On("TriggerNow", mock.Anything).Return(31, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/currency-rates/update", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UpdateRatesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(31, resp.UpdatedCount)
}

func (suite *HandlersTestSuite) TestUpdateRates_FeedFailure() {
	suite.mockSync.On("TriggerNow", mock.Anything).
		Return(0, fmt.Errorf("%w: status 503", apperrors.ErrFetch)).Once()

	w := suite.do(http.MethodPost, "/api/v1/currency-rates/update", nil)

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *HandlersTestSuite) TestUpdateRates_StoreFailure() {
	suite.mockSync.On("TriggerNow", mock.Anything).Return(0, fmt.Errorf("db down")).Once()

	w := suite.do(http.MethodPost, "/api/v1/currency-rates/update", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *HandlersTestSuite) TestConvert_Success() {
	amount := decimal.RequireFromString("100")
	result := &domain.CurrencyConversion{
		ConversionID:    "conv-1",
		FromCurrency:    "USD",
		ToCurrency:      "DKK",
		OriginalAmount:  amount,
		ConvertedAmount: decimal.RequireFromString("685"),
		ExchangeRate:    decimal.RequireFromString("6.85"),
		ConversionDate:  time.Now().UTC(),
	}
	suite.mockConversion.On("ConvertToReference", mock.Anything, "usd", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(amount)
	})).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/conversions/convert", map[string]any{"fromCurrency": "usd", "amount": "100"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("685.00", resp.ConvertedAmount)
	suite.Equal("100.00", resp.OriginalAmount)
	suite.Equal("6.850000", resp.ExchangeRate)
	suite.Equal("DKK", resp.ToCurrency)
	suite.mockConversion.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestConvert_TooManyDecimals() {
	w := suite.do(http.MethodPost, "/api/v1/conversions/convert", map[string]any{"fromCurrency": "USD", "amount": "10.123"})

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp handlers.AmountErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("10.123", resp.Amount)
	suite.mockConversion.AssertNotCalled(suite.T(), "ConvertToReference", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestConvert_InvalidCurrencyFormat() {
	w := suite.do(http.MethodPost, "/api/v1/conversions/convert", map[string]any{"fromCurrency": "US", "amount": "10"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockConversion.AssertNotCalled(suite.T(), "ConvertToReference", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestConvert_NonPositiveAmount() {
	amount := decimal.RequireFromString("-5")
	suite.mockConversion.On("ConvertToReference", mock.Anything, "USD", mock.Anything).
		Return(nil, &apperrors.InvalidAmountError{Amount: amount}).Once()

	w := suite.do(http.MethodPost, "/api/v1/conversions/convert", map[string]any{"fromCurrency": "USD", "amount": "-5"})

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp handlers.AmountErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("-5", resp.Amount)
}

func (suite *HandlersTestSuite) TestConvert_UnknownCurrency() {
	suite.mockConversion.On("ConvertToReference", mock.Anything, "XYZ", mock.Anything).
		Return(nil, &apperrors.CurrencyNotFoundError{Code: "XYZ"}).Once()

	w := suite.do(http.MethodPost, "/api/v1/conversions/convert", map[string]any{"fromCurrency": "XYZ", "amount": "10"})

	suite.Equal(http.StatusNotFound, w.Code)
	var resp handlers.CurrencyErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("XYZ", resp.CurrencyCode)
}

const (
	entryID1 = "5f0c1d2e-3a4b-4c5d-8e6f-7a8b9c0d1e01"
	entryID2 = "5f0c1d2e-3a4b-4c5d-8e6f-7a8b9c0d1e02"
	entryID3 = "5f0c1d2e-3a4b-4c5d-8e6f-7a8b9c0d1e03"
	entryID9 = "5f0c1d2e-3a4b-4c5d-8e6f-7a8b9c0d1e09"
)

func (suite *HandlersTestSuite) TestHistory_FiltersAndPaging() {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	entries := []domain.CurrencyConversion{
		{ConversionID: entryID3, FromCurrency: "USD", ToCurrency: "DKK", ConversionDate: now},
		{ConversionID: entryID2, FromCurrency: "USD", ToCurrency: "DKK", ConversionDate: now.Add(-time.Hour)},
		{ConversionID: entryID1, FromCurrency: "USD", ToCurrency: "DKK", ConversionDate: now.Add(-2 * time.Hour)},
	}
	suite.mockConversion.On("GetConversionHistory", mock.Anything, mock.MatchedBy(func(f domain.ConversionFilter) bool {
		return f.FromCurrency != nil && *f.FromCurrency == "USD" &&
			f.Limit == 3 &&
			f.StartDate != nil && f.StartDate.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			f.EndDate != nil && f.EndDate.Equal(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond))
	})).Return(entries, nil).Once()

	q := url.Values{}
	q.Set("fromCurrency", "usd")
	q.Set("startDate", "2025-03-01")
	q.Set("endDate", "2025-03-10")
	q.Set("limit", "2")
	w := suite.do(http.MethodGet, "/api/v1/conversions/history?"+q.Encode(), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConversionHistoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(2, resp.Count)
	suite.Require().NotNil(resp.NextToken)

	cursor, err := pagination.DecodeConversionToken(*resp.NextToken)
	suite.Require().NoError(err)
	suite.Equal(entryID2, cursor.ConversionID)
	suite.True(cursor.ConversionDate.Equal(now.Add(-time.Hour)))
	suite.mockConversion.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestHistory_LastPageHasNoToken() {
	suite.mockConversion.On("GetConversionHistory", mock.Anything, mock.Anything).
		Return([]domain.CurrencyConversion{{ConversionID: entryID1, ConversionDate: time.Now().UTC()}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/conversions/history?limit=5", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.NotContains(w.Body.String(), "nextToken")
}

func (suite *HandlersTestSuite) TestHistory_CursorPassedThrough() {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	token := pagination.EncodeConversionToken(at, entryID9)
	suite.mockConversion.On("GetConversionHistory", mock.Anything, mock.MatchedBy(func(f domain.ConversionFilter) bool {
		return f.Before != nil && f.Before.ConversionID == entryID9 && f.Before.ConversionDate.Equal(at) && f.Limit == 0
	})).Return([]domain.CurrencyConversion{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/conversions/history?nextToken="+token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"conversions":[]`)
	suite.mockConversion.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestHistory_BadInputs() {
	for _, target := range []string{
		"/api/v1/conversions/history?startDate=yesterday",
		"/api/v1/conversions/history?nextToken=%21%21",
		"/api/v1/conversions/history?nextToken=" + pagination.EncodeConversionToken(time.Now(), "not-a-uuid"),
		"/api/v1/conversions/history?limit=501",
		"/api/v1/conversions/history?fromCurrency=EURO",
	} {
		w := suite.do(http.MethodGet, target, nil)
		suite.Equal(http.StatusBadRequest, w.Code, target)
	}
	suite.mockConversion.AssertNotCalled(suite.T(), "GetConversionHistory", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestHistory_StartAfterEnd() {
	suite.mockConversion.On("GetConversionHistory", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("startDate must not be after endDate")).Once()

	w := suite.do(http.MethodGet, "/api/v1/conversions/history?startDate=2025-03-10&endDate=2025-03-01", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestIssueToken() {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	suite.mockAuth.On("IssueToken", mock.Anything, "client-1", "s3cret").Return("signed", expires, nil).Once()
	suite.mockAuth.On("IssueToken", mock.Anything, "client-1", "wrong").Return("", time.Time{}, apperrors.ErrUnauthorized).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/token", map[string]string{"clientId": "client-1", "clientSecret": "s3cret"})
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TokenResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("signed", resp.Token)
	suite.Equal("Bearer", resp.TokenType)

	w = suite.do(http.MethodPost, "/api/v1/auth/token", map[string]string{"clientId": "client-1", "clientSecret": "wrong"})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/auth/token", map[string]string{"clientId": "client-1"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Run Test Suite ---
func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
