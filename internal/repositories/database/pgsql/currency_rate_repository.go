package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/apperrors"
	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	portsrepo "github.com/SscSPs/dkk_exchange_service/internal/core/ports/repositories"
	"github.com/SscSPs/dkk_exchange_service/internal/models"
	"github.com/SscSPs/dkk_exchange_service/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// upsertRateQuery returns true in the single column when the row was inserted.
const upsertRateQuery = `
	INSERT INTO currency_rates (currency_rate_id, currency_code, currency_name, rate_to_reference, fetched_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (currency_code) DO UPDATE SET
		currency_name = EXCLUDED.currency_name,
		rate_to_reference = EXCLUDED.rate_to_reference,
		fetched_at = EXCLUDED.fetched_at,
		updated_at = EXCLUDED.created_at
	RETURNING (xmax = 0);
`

const selectRateColumns = `currency_rate_id, currency_code, currency_name, rate_to_reference, fetched_at, created_at, updated_at`

// PgxCurrencyRateRepository keeps one row per currency code in currency_rates.
// Writes are upserts keyed on currency_code; BulkUpsertRates is all-or-nothing.
type PgxCurrencyRateRepository struct {
	BaseRepository
}

// newPgxCurrencyRateRepository creates a new repository for currency rate data.
func newPgxCurrencyRateRepository(pool *pgxpool.Pool) portsrepo.CurrencyRateRepositoryFacade {
	return &PgxCurrencyRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRateRepositoryFacade = (*PgxCurrencyRateRepository)(nil)

// FindRateByCode retrieves the stored rate for a 3-letter code.
func (r *PgxCurrencyRateRepository) FindRateByCode(ctx context.Context, currencyCode string) (*domain.CurrencyRate, error) {
	query := `SELECT ` + selectRateColumns + ` FROM currency_rates WHERE currency_code = $1;`

	modelRate, err := scanRate(r.Pool.QueryRow(ctx, query, domain.NormalizeCurrencyCode(currencyCode)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rate by code %s: %w", currencyCode, err)
	}

	domainRate := mapping.ToDomainCurrencyRate(*modelRate)
	return &domainRate, nil
}

// ListRates retrieves all stored rates ordered by code.
func (r *PgxCurrencyRateRepository) ListRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	query := `SELECT ` + selectRateColumns + ` FROM currency_rates ORDER BY currency_code ASC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates: %w", err)
	}
	defer rows.Close()

	var modelRates []models.CurrencyRate
	for rows.Next() {
		modelRate, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rate row: %w", err)
		}
		modelRates = append(modelRates, *modelRate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate rows: %w", err)
	}

	return mapping.ToDomainCurrencyRateSlice(modelRates), nil
}

// UpsertRate inserts or overwrites the rate for the candidate's currency.
func (r *PgxCurrencyRateRepository) UpsertRate(ctx context.Context, candidate domain.RateCandidate) (bool, error) {
	return upsertRate(ctx, r.Pool, candidate, time.Now().UTC())
}

// BulkUpsertRates applies every candidate inside one transaction.
func (r *PgxCurrencyRateRepository) BulkUpsertRates(ctx context.Context, candidates []domain.RateCandidate) (int, error) {
	if len(candidates) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		for _, candidate := range candidates {
			if _, err := upsertRate(ctx, tx, candidate, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(candidates), nil
}

func upsertRate(ctx context.Context, q rowQuerier, candidate domain.RateCandidate, now time.Time) (bool, error) {
	code := domain.NormalizeCurrencyCode(candidate.CurrencyCode)

	var inserted bool
	err := q.QueryRow(ctx, upsertRateQuery,
		uuid.NewString(),
		code,
		candidate.CurrencyName,
		domain.RoundRate(candidate.Rate),
		candidate.FetchedAt,
		now,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert rate %s: %w", code, err)
	}
	return inserted, nil
}

func scanRate(row pgx.Row) (*models.CurrencyRate, error) {
	var m models.CurrencyRate
	err := row.Scan(
		&m.CurrencyRateID,
		&m.CurrencyCode,
		&m.CurrencyName,
		&m.RateToReference,
		&m.FetchedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
