// Package chart provides chart-of-accounts resolvers used to name opening balances.
package chart

import (
	"context"
	"sync"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
)

// StaticResolver serves a fixed, in-process chart of accounts.
type StaticResolver struct {
	mu       sync.RWMutex
	accounts map[string]domain.ChartAccount
}

var _ portsrepo.AccountResolver = (*StaticResolver)(nil)

// NewStaticResolver creates a resolver preloaded with accounts.
func NewStaticResolver(accounts ...domain.ChartAccount) *StaticResolver {
	r := &StaticResolver{accounts: make(map[string]domain.ChartAccount, len(accounts))}
	for _, a := range accounts {
		r.Add(a)
	}
	return r
}

// Add registers or replaces an account.
func (r *StaticResolver) Add(account domain.ChartAccount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[key(account.RegimeCode, account.AccountNumber)] = account
}

func (r *StaticResolver) ResolveAccount(_ context.Context, accountNumber, regimeCode string) (*domain.ChartAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[key(regimeCode, accountNumber)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

func (r *StaticResolver) ResolveAccounts(_ context.Context, accountNumbers []string, regimeCode string) (map[string]domain.ChartAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]domain.ChartAccount, len(accountNumbers))
	for _, n := range accountNumbers {
		if account, ok := r.accounts[key(regimeCode, n)]; ok {
			out[n] = account
		}
	}
	return out, nil
}

func key(regimeCode, accountNumber string) string {
	return regimeCode + ":" + accountNumber
}

// DefaultAccounts is a small regime 200 chart used by the memory driver.
func DefaultAccounts() []domain.ChartAccount {
	rows := [][2]string{
		{"111", "Cash"},
		{"112", "Cash in bank"},
		{"131", "Receivables from customers"},
		{"133", "Deductible VAT"},
		{"141", "Advances"},
		{"152", "Raw materials"},
		{"156", "Merchandise"},
		{"211", "Fixed assets"},
		{"214", "Depreciation of fixed assets"},
		{"331", "Payables to suppliers"},
		{"333", "Taxes payable to the state"},
		{"334", "Payables to employees"},
		{"341", "Borrowings and finance lease liabilities"},
		{"411", "Owner's equity"},
		{"421", "Undistributed profit after tax"},
	}
	accounts := make([]domain.ChartAccount, len(rows))
	for i, r := range rows {
		accounts[i] = domain.ChartAccount{RegimeCode: domain.DefaultAccountRegime, AccountNumber: r[0], AccountName: r[1]}
	}
	return accounts
}
