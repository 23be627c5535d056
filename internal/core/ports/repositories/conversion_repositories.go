package repositories

import (
	"context"

	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
)

// ConversionReader defines read operations for the conversion ledger
type ConversionReader interface {
	// ListConversions returns entries matching every set filter field, most recent first.
	ListConversions(ctx context.Context, filter domain.ConversionFilter) ([]domain.CurrencyConversion, error)
}

// ConversionWriter defines the append-only write operation of the conversion ledger
type ConversionWriter interface {
	// SaveConversion appends a new ledger entry. Entries are never updated or deleted.
	SaveConversion(ctx context.Context, conversion domain.CurrencyConversion) error
}

// ConversionRepositoryFacade combines all ledger-related repository interfaces
type ConversionRepositoryFacade interface {
	ConversionReader
	ConversionWriter
}
