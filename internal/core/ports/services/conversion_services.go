package services

import (
	"context"

	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConversionWriterSvc defines the conversion operation
type ConversionWriterSvc interface {
	// ConvertToReference converts amount of currencyCode into the reference currency and
	// records the result in the ledger before returning it.
	ConvertToReference(ctx context.Context, currencyCode string, amount decimal.Decimal) (*domain.CurrencyConversion, error)
}

// ConversionReaderSvc defines ledger queries
type ConversionReaderSvc interface {
	// GetConversionHistory returns ledger entries matching filter, most recent first.
	GetConversionHistory(ctx context.Context, filter domain.ConversionFilter) ([]domain.CurrencyConversion, error)
}

// ConversionSvcFacade combines all conversion-related service interfaces
type ConversionSvcFacade interface {
	ConversionWriterSvc
	ConversionReaderSvc
	// ReferenceCurrency returns the code every conversion targets.
	ReferenceCurrency() string
}
