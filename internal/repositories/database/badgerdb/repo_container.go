package badgerdb

import (
	portsrepo "github.com/SscSPs/dkk_exchange_service/internal/core/ports/repositories"
	"github.com/dgraph-io/badger/v3"
)

// NewRepositoryProvider wires the embedded BadgerDB repositories. Close closes the database.
func NewRepositoryProvider(db *badger.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRateRepo: NewBadgerCurrencyRateRepository(db),
		ConversionRepo:   NewBadgerConversionRepository(db),
		Close:            db.Close,
	}
}
