package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValidCurrencyCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"USD", true},
		{"usd", true},
		{"US", false},
		{"USDT", false},
		{"U$D", false},
		{"", false},
		{"12A", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsValidCurrencyCode(tt.code))
		})
	}
}

func TestNormalizeCurrencyCode(t *testing.T) {
	assert.Equal(t, "EUR", domain.NormalizeCurrencyCode(" eur "))
	assert.Equal(t, "DKK", domain.NormalizeCurrencyCode("DKK"))
}

func TestRoundAmount_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"rounds half up", "1.005", "1.01"},
		{"rounds down below half", "1.004", "1"},
		{"negative rounds away from zero", "-1.005", "-1.01"},
		{"keeps exact cents", "685.00", "685"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.RoundAmount(decimal.RequireFromString(tt.in))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestRoundRate(t *testing.T) {
	got := domain.RoundRate(decimal.RequireFromString("7.4612345"))
	assert.Equal(t, "7.461235", got.StringFixed(6))
}

func TestConversionFilter_Matches(t *testing.T) {
	base := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	usd := "USD"
	start := base.Add(-time.Hour)
	end := base.Add(time.Hour)

	entry := domain.CurrencyConversion{ConversionID: "b", FromCurrency: "USD", ConversionDate: base}

	tests := []struct {
		name   string
		filter domain.ConversionFilter
		want   bool
	}{
		{"empty filter matches", domain.ConversionFilter{}, true},
		{"currency matches", domain.ConversionFilter{FromCurrency: &usd}, true},
		{"range is inclusive at start", domain.ConversionFilter{StartDate: &base}, true},
		{"range is inclusive at end", domain.ConversionFilter{EndDate: &base}, true},
		{"inside range", domain.ConversionFilter{FromCurrency: &usd, StartDate: &start, EndDate: &end}, true},
		{"before start", domain.ConversionFilter{StartDate: &end}, false},
		{"after end", domain.ConversionFilter{EndDate: &start}, false},
		{"cursor with same date and larger id", domain.ConversionFilter{Before: &domain.ConversionCursor{ConversionDate: base, ConversionID: "c"}}, true},
		{"cursor at entry itself", domain.ConversionFilter{Before: &domain.ConversionCursor{ConversionDate: base, ConversionID: "b"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(entry))
		})
	}

	eur := "EUR"
	assert.False(t, domain.ConversionFilter{FromCurrency: &eur}.Matches(entry))
}
