package badgerdb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	portsrepo "github.com/SscSPs/dkk_exchange_service/internal/core/ports/repositories"
	"github.com/SscSPs/dkk_exchange_service/internal/models"
	"github.com/SscSPs/dkk_exchange_service/internal/utils/mapping"
	"github.com/dgraph-io/badger/v3"
)

const conversionPrefix = "conv:"

// BadgerConversionRepository keeps the ledger under keys ordered by conversion time,
// so a reverse scan yields newest entries first.
type BadgerConversionRepository struct {
	db *badger.DB
}

// NewBadgerConversionRepository creates a new BadgerDB ledger repository
func NewBadgerConversionRepository(db *badger.DB) *BadgerConversionRepository {
	return &BadgerConversionRepository{db: db}
}

var _ portsrepo.ConversionRepositoryFacade = (*BadgerConversionRepository)(nil)

// conversionKey is conv:<zero-padded unix nanos>:<id>; entries before 1970 are not supported.
func conversionKey(c models.CurrencyConversion) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", conversionPrefix, c.ConversionDate.UnixNano(), c.ConversionID))
}

// SaveConversion appends a ledger entry
func (r *BadgerConversionRepository) SaveConversion(ctx context.Context, conversion domain.CurrencyConversion) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := mapping.ToModelCurrencyConversion(conversion)
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal conversion: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(conversionKey(m), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store conversion %s: %w", m.ConversionID, err)
	}
	return nil
}

// ListConversions scans the ledger newest first and keeps entries matching the filter
func (r *BadgerConversionRepository) ListConversions(ctx context.Context, filter domain.ConversionFilter) ([]domain.CurrencyConversion, error) {
	if filter.FromCurrency != nil {
		code := domain.NormalizeCurrencyCode(*filter.FromCurrency)
		filter.FromCurrency = &code
	}

	var result []domain.CurrencyConversion
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(conversionPrefix)
		seekKey := append([]byte(conversionPrefix), 0xFF)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var m models.CurrencyConversion
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			}); err != nil {
				return err
			}

			c := mapping.ToDomainCurrencyConversion(m)
			if !filter.Matches(c) {
				continue
			}
			result = append(result, c)
			if filter.Limit > 0 && len(result) >= filter.Limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}

	if result == nil {
		result = []domain.CurrencyConversion{}
	}
	return result, nil
}
