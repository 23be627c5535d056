package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	portsrepo "github.com/SscSPs/dkk_exchange_service/internal/core/ports/repositories"
	"github.com/SscSPs/dkk_exchange_service/internal/models"
	"github.com/SscSPs/dkk_exchange_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxConversionRepository is the append-only conversion ledger stored in the
// currency_conversions table.
type PgxConversionRepository struct {
	BaseRepository
}

// newPgxConversionRepository creates a new repository for the conversion ledger.
func newPgxConversionRepository(pool *pgxpool.Pool) portsrepo.ConversionRepositoryFacade {
	return &PgxConversionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ConversionRepositoryFacade = (*PgxConversionRepository)(nil)

// SaveConversion appends one ledger entry.
func (r *PgxConversionRepository) SaveConversion(ctx context.Context, conversion domain.CurrencyConversion) error {
	m := mapping.ToModelCurrencyConversion(conversion)

	query := `
		INSERT INTO currency_conversions (
			conversion_id, from_currency, to_currency, original_amount,
			converted_amount, exchange_rate, conversion_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ConversionID,
		m.FromCurrency,
		m.ToCurrency,
		m.OriginalAmount,
		m.ConvertedAmount,
		m.ExchangeRate,
		m.ConversionDate,
	)
	if err != nil {
		return fmt.Errorf("failed to save conversion %s: %w", m.ConversionID, err)
	}
	return nil
}

// ListConversions returns ledger entries matching the filter, newest first.
// Ties on conversion_date are broken by conversion_id so paging is stable.
func (r *PgxConversionRepository) ListConversions(ctx context.Context, filter domain.ConversionFilter) ([]domain.CurrencyConversion, error) {
	query, args := buildListConversionsQuery(filter)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions: %w", err)
	}
	defer rows.Close()

	var modelConversions []models.CurrencyConversion
	for rows.Next() {
		var m models.CurrencyConversion
		if err := rows.Scan(
			&m.ConversionID,
			&m.FromCurrency,
			&m.ToCurrency,
			&m.OriginalAmount,
			&m.ConvertedAmount,
			&m.ExchangeRate,
			&m.ConversionDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversion row: %w", err)
		}
		modelConversions = append(modelConversions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversion rows: %w", err)
	}

	return mapping.ToDomainCurrencyConversionSlice(modelConversions), nil
}

// buildListConversionsQuery renders the ledger query for filter with its positional args.
func buildListConversionsQuery(filter domain.ConversionFilter) (string, []any) {
	query := `
		SELECT conversion_id, from_currency, to_currency, original_amount,
			converted_amount, exchange_rate, conversion_date
		FROM currency_conversions
		WHERE 1=1`
	args := []any{}
	argNum := 1

	if filter.FromCurrency != nil {
		query += fmt.Sprintf(" AND from_currency = $%d", argNum)
		args = append(args, domain.NormalizeCurrencyCode(*filter.FromCurrency))
		argNum++
	}
	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND conversion_date >= $%d", argNum)
		args = append(args, *filter.StartDate)
		argNum++
	}
	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND conversion_date <= $%d", argNum)
		args = append(args, *filter.EndDate)
		argNum++
	}
	if filter.Before != nil {
		// Row-value comparison keeps the keyset cursor on the same order as ORDER BY.
		query += fmt.Sprintf(" AND (conversion_date, conversion_id) < ($%d, $%d)", argNum, argNum+1)
		args = append(args, filter.Before.ConversionDate, filter.Before.ConversionID)
		argNum += 2
	}

	query += " ORDER BY conversion_date DESC, conversion_id DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}
	return query, args
}
