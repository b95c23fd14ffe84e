package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	PeriodRepo      OpeningPeriodRepositoryFacade
	BalanceRepo     OpeningBalanceRepositoryFacade
	DetailRepo      OpeningBalanceDetailRepositoryFacade
	AccountResolver AccountResolver
	UnitOfWork      UnitOfWork
}
