package pgsql

import (
	portsrepo "github.com/SscSPs/dkk_exchange_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres-backed repositories. Close releases the pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRateRepo: newPgxCurrencyRateRepository(dbPool),
		ConversionRepo:   newPgxConversionRepository(dbPool),
		Close: func() error {
			dbPool.Close()
			return nil
		},
	}
}
