// Package memory is an in-process implementation of the repository ports.
// Transactions work on a private copy of the data that replaces the shared copy on commit,
// and savepoints nest the same way.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/opening_balances/internal/core/domain"
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
)

type detailRow struct {
	detail domain.OpeningBalanceDetail
	seq    uint64
}

type state struct {
	periods  map[string]domain.OpeningPeriod
	balances map[string]domain.OpeningBalance
	details  map[string]detailRow
	nextSeq  uint64
}

func newState() *state {
	return &state{
		periods:  make(map[string]domain.OpeningPeriod),
		balances: make(map[string]domain.OpeningBalance),
		details:  make(map[string]detailRow),
	}
}

func (s *state) clone() *state {
	c := &state{
		periods:  make(map[string]domain.OpeningPeriod, len(s.periods)),
		balances: make(map[string]domain.OpeningBalance, len(s.balances)),
		details:  make(map[string]detailRow, len(s.details)),
		nextSeq:  s.nextSeq,
	}
	for k, v := range s.periods {
		c.periods[k] = v
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	for k, v := range s.details {
		c.details[k] = v
	}
	return c
}

// source gives repositories access to a state, either the shared one or a transaction's copy.
type source interface {
	read(fn func(st *state))
	write(ctx context.Context, fn func(st *state) error) error
}

// Store is the shared, committed state.
type Store struct {
	txMu sync.Mutex // serializes writers
	mu   sync.RWMutex
	data *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: newState()}
}

var _ portsrepo.UnitOfWork = (*Store)(nil)

// WithTx runs fn against a private copy of the data and publishes the copy when fn succeeds.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	tx := &txView{st: s.data.clone()}
	s.mu.RUnlock()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = tx.st
	s.mu.Unlock()
	return nil
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// write applies a single statement as its own transaction.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	return s.WithTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		return fn(repos.(*txView).st)
	})
}

// Periods returns the auto-commit period repository.
func (s *Store) Periods() portsrepo.OpeningPeriodRepositoryFacade { return periodRepository{src: s} }

// Balances returns the auto-commit balance repository.
func (s *Store) Balances() portsrepo.OpeningBalanceRepositoryFacade {
	return balanceRepository{src: s}
}

// Details returns the auto-commit detail repository.
func (s *Store) Details() portsrepo.OpeningBalanceDetailRepositoryFacade {
	return detailRepository{src: s}
}

// Provider bundles the store's repositories for the service container.
func (s *Store) Provider(resolver portsrepo.AccountResolver) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PeriodRepo:      s.Periods(),
		BalanceRepo:     s.Balances(),
		DetailRepo:      s.Details(),
		AccountResolver: resolver,
		UnitOfWork:      s,
	}
}

// txView is the state of one open transaction or savepoint.
type txView struct {
	st *state
}

var _ portsrepo.TxRepositories = (*txView)(nil)

func (v *txView) read(fn func(st *state)) { fn(v.st) }

func (v *txView) write(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(v.st)
}

func (v *txView) Periods() portsrepo.OpeningPeriodRepositoryFacade { return periodRepository{src: v} }

func (v *txView) Balances() portsrepo.OpeningBalanceRepositoryFacade {
	return balanceRepository{src: v}
}

func (v *txView) Details() portsrepo.OpeningBalanceDetailRepositoryFacade {
	return detailRepository{src: v}
}

// Savepoint runs fn on a copy of the transaction state and keeps the copy only on success.
func (v *txView) Savepoint(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	child := &txView{st: v.st.clone()}
	if err := fn(ctx, child); err != nil {
		return err
	}
	v.st = child.st
	return nil
}
