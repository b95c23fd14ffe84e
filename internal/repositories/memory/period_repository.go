package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
)

type periodRepository struct {
	src source
}

func (r periodRepository) FindPeriodByID(_ context.Context, tenantID, periodID string) (*domain.OpeningPeriod, error) {
	var (
		p  domain.OpeningPeriod
		ok bool
	)
	r.src.read(func(st *state) {
		p, ok = st.periods[periodID]
	})
	if !ok || p.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r periodRepository) FindPeriodByName(_ context.Context, tenantID, name string) (*domain.OpeningPeriod, error) {
	var found *domain.OpeningPeriod
	r.src.read(func(st *state) {
		for _, p := range st.periods {
			if p.TenantID == tenantID && p.Name == name {
				p := p
				found = &p
				return
			}
		}
	})
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (r periodRepository) ListPeriods(_ context.Context, tenantID string) ([]domain.OpeningPeriod, error) {
	periods := []domain.OpeningPeriod{}
	r.src.read(func(st *state) {
		for _, p := range st.periods {
			if p.TenantID == tenantID {
				periods = append(periods, p)
			}
		}
	})
	sort.Slice(periods, func(i, j int) bool {
		a, b := periods[i], periods[j]
		if !a.OpeningDate.Equal(b.OpeningDate) {
			return a.OpeningDate.After(b.OpeningDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.PeriodID < b.PeriodID
	})
	return periods, nil
}

func (r periodRepository) SavePeriod(ctx context.Context, period domain.OpeningPeriod) error {
	return r.src.write(ctx, func(st *state) error {
		if _, exists := st.periods[period.PeriodID]; exists {
			return apperrors.ErrDuplicate
		}
		if nameTaken(st, period) {
			return apperrors.ErrDuplicate
		}
		st.periods[period.PeriodID] = period
		return nil
	})
}

func (r periodRepository) UpdatePeriod(ctx context.Context, period domain.OpeningPeriod) error {
	return r.src.write(ctx, func(st *state) error {
		current, ok := st.periods[period.PeriodID]
		if !ok || current.TenantID != period.TenantID {
			return apperrors.ErrNotFound
		}
		if nameTaken(st, period) {
			return apperrors.ErrDuplicate
		}
		st.periods[period.PeriodID] = period
		return nil
	})
}

func (r periodRepository) DeletePeriod(ctx context.Context, tenantID, periodID string) error {
	return r.src.write(ctx, func(st *state) error {
		p, ok := st.periods[periodID]
		if !ok || p.TenantID != tenantID {
			return apperrors.ErrNotFound
		}
		delete(st.periods, periodID)
		return nil
	})
}

func nameTaken(st *state, period domain.OpeningPeriod) bool {
	for id, p := range st.periods {
		if id != period.PeriodID && p.TenantID == period.TenantID && p.Name == period.Name {
			return true
		}
	}
	return false
}
