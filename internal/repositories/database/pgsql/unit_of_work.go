package pgsql

import (
	"context"
	"errors"
	"fmt"

	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UnitOfWork runs service callbacks inside one PostgreSQL transaction.
type UnitOfWork struct {
	BaseRepository
}

var _ portsrepo.UnitOfWork = (*UnitOfWork)(nil)

// NewUnitOfWork creates a unit of work over the pool.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{BaseRepository: BaseRepository{Pool: pool}}
}

func (u *UnitOfWork) WithTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) (err error) {
	tx, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = u.Rollback(context.WithoutCancel(ctx), tx)
			panic(p)
		}
	}()

	if err := fn(ctx, txRepositories{tx: tx}); err != nil {
		if rbErr := u.Rollback(context.WithoutCancel(ctx), tx); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return u.Commit(ctx, tx)
}

// txRepositories binds the repositories to a transaction or savepoint.
type txRepositories struct {
	tx pgx.Tx
}

var _ portsrepo.TxRepositories = txRepositories{}

func (r txRepositories) Periods() portsrepo.OpeningPeriodRepositoryFacade {
	return &PgxOpeningPeriodRepository{db: r.tx}
}

func (r txRepositories) Balances() portsrepo.OpeningBalanceRepositoryFacade {
	return &PgxOpeningBalanceRepository{db: r.tx}
}

func (r txRepositories) Details() portsrepo.OpeningBalanceDetailRepositoryFacade {
	return &PgxOpeningBalanceDetailRepository{db: r.tx}
}

// Savepoint opens a pgx pseudo nested transaction (SAVEPOINT); a failing fn rolls back to it.
func (r txRepositories) Savepoint(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	sp, err := r.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to create savepoint: %w", err)
	}
	if err := fn(ctx, txRepositories{tx: sp}); err != nil {
		if rbErr := sp.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, fmt.Errorf("failed to roll back savepoint: %w", rbErr))
		}
		return err
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("failed to release savepoint: %w", err)
	}
	return nil
}
