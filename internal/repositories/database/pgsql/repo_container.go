package pgsql

import (
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the PostgreSQL repositories. A nil resolver selects the
// chart_of_accounts table; callers pass a decorated resolver to add caching.
func NewRepositoryProvider(dbPool *pgxpool.Pool, resolver portsrepo.AccountResolver) portsrepo.RepositoryProvider {
	if resolver == nil {
		resolver = NewChartResolver(dbPool)
	}
	return portsrepo.RepositoryProvider{
		PeriodRepo:      newPgxOpeningPeriodRepository(dbPool),
		BalanceRepo:     newPgxOpeningBalanceRepository(dbPool),
		DetailRepo:      newPgxOpeningBalanceDetailRepository(dbPool),
		AccountResolver: resolver,
		UnitOfWork:      NewUnitOfWork(dbPool),
	}
}

// NewChartResolver returns the table-backed chart-of-accounts resolver.
func NewChartResolver(dbPool *pgxpool.Pool) portsrepo.AccountResolver {
	return newPgxChartRepository(dbPool)
}
