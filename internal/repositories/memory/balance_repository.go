package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
)

type balanceRepository struct {
	src source
}

func (r balanceRepository) FindBalanceByID(_ context.Context, tenantID, balanceID string) (*domain.OpeningBalance, error) {
	var (
		b  domain.OpeningBalance
		ok bool
	)
	r.src.read(func(st *state) {
		b, ok = st.balances[balanceID]
	})
	if !ok || b.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}
	return &b, nil
}

func (r balanceRepository) FindBalanceByKey(_ context.Context, tenantID, periodID, accountNumber, currencyCode string) (*domain.OpeningBalance, error) {
	var found *domain.OpeningBalance
	r.src.read(func(st *state) {
		for _, b := range st.balances {
			if sameKey(b, tenantID, periodID, accountNumber, currencyCode) {
				b := b
				found = &b
				return
			}
		}
	})
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (r balanceRepository) ListBalances(_ context.Context, tenantID string, filter domain.BalanceFilter) ([]domain.OpeningBalance, int, error) {
	var matches []domain.OpeningBalance
	needle := strings.ToLower(filter.AccountNumber)
	r.src.read(func(st *state) {
		for _, b := range st.balances {
			if b.TenantID != tenantID {
				continue
			}
			if filter.PeriodID != "" && b.PeriodID != filter.PeriodID {
				continue
			}
			if filter.CurrencyCode != "" && b.CurrencyCode != filter.CurrencyCode {
				continue
			}
			if needle != "" && !strings.Contains(strings.ToLower(b.AccountNumber), needle) {
				continue
			}
			if filter.HasDetails != nil && b.HasDetails != *filter.HasDetails {
				continue
			}
			matches = append(matches, b)
		}
	})
	sortBalances(matches)

	total := len(matches)
	start := min(filter.Offset, total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	page := make([]domain.OpeningBalance, end-start)
	copy(page, matches[start:end])
	return page, total, nil
}

func (r balanceRepository) ListBalancesByPeriod(_ context.Context, tenantID, periodID string) ([]domain.OpeningBalance, error) {
	balances := []domain.OpeningBalance{}
	r.src.read(func(st *state) {
		for _, b := range st.balances {
			if b.TenantID == tenantID && b.PeriodID == periodID {
				balances = append(balances, b)
			}
		}
	})
	sortBalances(balances)
	return balances, nil
}

func (r balanceRepository) SaveBalance(ctx context.Context, balance domain.OpeningBalance) error {
	balance.Details = nil
	return r.src.write(ctx, func(st *state) error {
		if _, exists := st.balances[balance.BalanceID]; exists {
			return apperrors.ErrDuplicate
		}
		for _, b := range st.balances {
			if sameKey(b, balance.TenantID, balance.PeriodID, balance.AccountNumber, balance.CurrencyCode) {
				return apperrors.ErrDuplicate
			}
		}
		st.balances[balance.BalanceID] = balance
		return nil
	})
}

func (r balanceRepository) UpdateBalance(ctx context.Context, balance domain.OpeningBalance) error {
	balance.Details = nil
	return r.src.write(ctx, func(st *state) error {
		current, ok := st.balances[balance.BalanceID]
		if !ok || current.TenantID != balance.TenantID {
			return apperrors.ErrNotFound
		}
		st.balances[balance.BalanceID] = balance
		return nil
	})
}

func (r balanceRepository) DeleteBalance(ctx context.Context, tenantID, balanceID string) error {
	return r.src.write(ctx, func(st *state) error {
		b, ok := st.balances[balanceID]
		if !ok || b.TenantID != tenantID {
			return apperrors.ErrNotFound
		}
		delete(st.balances, balanceID)
		return nil
	})
}

func (r balanceRepository) DeleteBalancesByPeriod(ctx context.Context, tenantID, periodID string) ([]string, error) {
	var ids []string
	err := r.src.write(ctx, func(st *state) error {
		for id, b := range st.balances {
			if b.TenantID == tenantID && b.PeriodID == periodID {
				ids = append(ids, id)
				delete(st.balances, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

func sameKey(b domain.OpeningBalance, tenantID, periodID, accountNumber, currencyCode string) bool {
	return b.TenantID == tenantID && b.PeriodID == periodID &&
		b.AccountNumber == accountNumber && b.CurrencyCode == currencyCode
}

func sortBalances(balances []domain.OpeningBalance) {
	sort.Slice(balances, func(i, j int) bool {
		a, b := balances[i], balances[j]
		if a.AccountNumber != b.AccountNumber {
			return a.AccountNumber < b.AccountNumber
		}
		if a.CurrencyCode != b.CurrencyCode {
			return a.CurrencyCode < b.CurrencyCode
		}
		return a.BalanceID < b.BalanceID
	})
}
