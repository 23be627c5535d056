package badgerdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/apperrors"
	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	portsrepo "github.com/SscSPs/dkk_exchange_service/internal/core/ports/repositories"
	"github.com/SscSPs/dkk_exchange_service/internal/models"
	"github.com/SscSPs/dkk_exchange_service/internal/utils/mapping"
	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
)

const ratePrefix = "rate:"

// BadgerCurrencyRateRepository stores one JSON document per currency code.
type BadgerCurrencyRateRepository struct {
	db *badger.DB
}

// NewBadgerCurrencyRateRepository creates a new BadgerDB currency rate repository
func NewBadgerCurrencyRateRepository(db *badger.DB) *BadgerCurrencyRateRepository {
	return &BadgerCurrencyRateRepository{db: db}
}

var _ portsrepo.CurrencyRateRepositoryFacade = (*BadgerCurrencyRateRepository)(nil)

func rateKey(code string) []byte {
	return []byte(ratePrefix + domain.NormalizeCurrencyCode(code))
}

// FindRateByCode retrieves the stored rate for a code
func (r *BadgerCurrencyRateRepository) FindRateByCode(ctx context.Context, currencyCode string) (*domain.CurrencyRate, error) {
	var m *models.CurrencyRate
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		m, err = getRate(txn, currencyCode)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rate %s: %w", currencyCode, err)
	}

	d := mapping.ToDomainCurrencyRate(*m)
	return &d, nil
}

// ListRates returns every stored rate. Keys sort by code, so iteration order is the result order.
func (r *BadgerCurrencyRateRepository) ListRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	var ms []models.CurrencyRate
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(ratePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var m models.CurrencyRate
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			}); err != nil {
				return err
			}
			ms = append(ms, m)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	return mapping.ToDomainCurrencyRateSlice(ms), nil
}

// UpsertRate inserts or overwrites the rate for one currency
func (r *BadgerCurrencyRateRepository) UpsertRate(ctx context.Context, candidate domain.RateCandidate) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var inserted bool
	err := r.db.Update(func(txn *badger.Txn) error {
		var err error
		inserted, err = putRate(txn, candidate, time.Now().UTC())
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to upsert rate %s: %w", candidate.CurrencyCode, err)
	}
	return inserted, nil
}

// BulkUpsertRates applies every candidate inside one badger transaction
func (r *BadgerCurrencyRateRepository) BulkUpsertRates(ctx context.Context, candidates []domain.RateCandidate) (int, error) {
	if len(candidates) == 0 {
		return 0, nil
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// Returning an error from the closure discards the whole batch.
	now := time.Now().UTC()
	err := r.db.Update(func(txn *badger.Txn) error {
		for _, candidate := range candidates {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := putRate(txn, candidate, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to bulk upsert rates: %w", err)
	}
	return len(candidates), nil
}

func getRate(txn *badger.Txn, code string) (*models.CurrencyRate, error) {
	item, err := txn.Get(rateKey(code))
	if err != nil {
		return nil, err
	}
	var m models.CurrencyRate
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &m)
	}); err != nil {
		return nil, err
	}
	return &m, nil
}

func putRate(txn *badger.Txn, candidate domain.RateCandidate, now time.Time) (bool, error) {
	existing, err := getRate(txn, candidate.CurrencyCode)
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return false, err
	}

	m := models.CurrencyRate{
		CurrencyRateID:  uuid.NewString(),
		CurrencyCode:    domain.NormalizeCurrencyCode(candidate.CurrencyCode),
		CurrencyName:    candidate.CurrencyName,
		RateToReference: domain.RoundRate(candidate.Rate),
		FetchedAt:       candidate.FetchedAt,
		CreatedAt:       now,
	}
	inserted := existing == nil
	if !inserted {
		m.CurrencyRateID = existing.CurrencyRateID
		m.CreatedAt = existing.CreatedAt
		m.UpdatedAt = &now
	}

	data, err := json.Marshal(m)
	if err != nil {
		return false, fmt.Errorf("failed to marshal rate: %w", err)
	}
	if err := txn.Set(rateKey(m.CurrencyCode), data); err != nil {
		return false, err
	}
	return inserted, nil
}
