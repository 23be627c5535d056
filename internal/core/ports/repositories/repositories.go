package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CurrencyRateRepo CurrencyRateRepositoryFacade
	ConversionRepo   ConversionRepositoryFacade

	// Close releases the underlying storage handle.
	Close func() error
}
