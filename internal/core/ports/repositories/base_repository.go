package repositories

import (
	"context"
)

// TxRepositories exposes the opening-balance repositories bound to a single database transaction.
type TxRepositories interface {
	Periods() OpeningPeriodRepositoryFacade
	Balances() OpeningBalanceRepositoryFacade
	Details() OpeningBalanceDetailRepositoryFacade

	// Savepoint runs fn inside a nested transaction. When fn returns an error only the
	// work done inside fn is undone; the enclosing transaction stays usable.
	Savepoint(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}

// UnitOfWork runs a function inside one database transaction. The transaction is committed
// when fn returns nil and rolled back otherwise.
type UnitOfWork interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
