package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
	"github.com/SscSPs/opening_balances/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type detailRepository struct {
	src source
}

func (r detailRepository) FindDetailByID(_ context.Context, tenantID, detailID string) (*domain.OpeningBalanceDetail, error) {
	var (
		row detailRow
		ok  bool
	)
	r.src.read(func(st *state) {
		row, ok = st.details[detailID]
	})
	if !ok || row.detail.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}
	d := row.detail
	return &d, nil
}

func (r detailRepository) FindDetailByAccountObject(_ context.Context, tenantID, balanceID, accountObjectID string) (*domain.OpeningBalanceDetail, error) {
	var rows []detailRow
	r.src.read(func(st *state) {
		for _, row := range st.details {
			d := row.detail
			if d.TenantID == tenantID && d.BalanceID == balanceID &&
				d.AccountObjectID != nil && *d.AccountObjectID == accountObjectID {
				rows = append(rows, row)
			}
		}
	})
	if len(rows) == 0 {
		return nil, apperrors.ErrNotFound
	}
	sortRows(rows)
	d := rows[0].detail
	return &d, nil
}

func (r detailRepository) ListDetailsByBalance(_ context.Context, tenantID, balanceID string) ([]domain.OpeningBalanceDetail, error) {
	var rows []detailRow
	r.src.read(func(st *state) {
		for _, row := range st.details {
			if row.detail.TenantID == tenantID && row.detail.BalanceID == balanceID {
				rows = append(rows, row)
			}
		}
	})
	return toDetails(rows), nil
}

func (r detailRepository) ListDetailsByBalances(_ context.Context, tenantID string, balanceIDs []string) (map[string][]domain.OpeningBalanceDetail, error) {
	wanted := make(map[string]struct{}, len(balanceIDs))
	for _, id := range balanceIDs {
		wanted[id] = struct{}{}
	}
	grouped := make(map[string][]detailRow)
	r.src.read(func(st *state) {
		for _, row := range st.details {
			if row.detail.TenantID != tenantID {
				continue
			}
			if _, ok := wanted[row.detail.BalanceID]; ok {
				grouped[row.detail.BalanceID] = append(grouped[row.detail.BalanceID], row)
			}
		}
	})
	out := make(map[string][]domain.OpeningBalanceDetail, len(grouped))
	for id, rows := range grouped {
		out[id] = toDetails(rows)
	}
	return out, nil
}

func (r detailRepository) SumDetailsByBalance(ctx context.Context, tenantID, balanceID string) (decimal.Decimal, decimal.Decimal, error) {
	details, err := r.ListDetailsByBalance(ctx, tenantID, balanceID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	debit, credit := accounting.DetailTotals(details)
	return debit, credit, nil
}

func (r detailRepository) SaveDetail(ctx context.Context, detail domain.OpeningBalanceDetail) error {
	return r.src.write(ctx, func(st *state) error {
		if _, exists := st.details[detail.DetailID]; exists {
			return apperrors.ErrDuplicate
		}
		st.nextSeq++
		st.details[detail.DetailID] = detailRow{detail: detail, seq: st.nextSeq}
		return nil
	})
}

func (r detailRepository) UpdateDetail(ctx context.Context, detail domain.OpeningBalanceDetail) error {
	return r.src.write(ctx, func(st *state) error {
		row, ok := st.details[detail.DetailID]
		if !ok || row.detail.TenantID != detail.TenantID {
			return apperrors.ErrNotFound
		}
		row.detail = detail
		st.details[detail.DetailID] = row
		return nil
	})
}

func (r detailRepository) DeleteDetail(ctx context.Context, tenantID, detailID string) error {
	return r.src.write(ctx, func(st *state) error {
		row, ok := st.details[detailID]
		if !ok || row.detail.TenantID != tenantID {
			return apperrors.ErrNotFound
		}
		delete(st.details, detailID)
		return nil
	})
}

func (r detailRepository) DeleteDetailsByBalance(ctx context.Context, tenantID string, balanceIDs ...string) error {
	if len(balanceIDs) == 0 {
		return nil
	}
	wanted := make(map[string]struct{}, len(balanceIDs))
	for _, id := range balanceIDs {
		wanted[id] = struct{}{}
	}
	return r.src.write(ctx, func(st *state) error {
		for id, row := range st.details {
			if row.detail.TenantID != tenantID {
				continue
			}
			if _, ok := wanted[row.detail.BalanceID]; ok {
				delete(st.details, id)
			}
		}
		return nil
	})
}

func sortRows(rows []detailRow) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
}

func toDetails(rows []detailRow) []domain.OpeningBalanceDetail {
	sortRows(rows)
	details := make([]domain.OpeningBalanceDetail, len(rows))
	for i, row := range rows {
		details[i] = row.detail
	}
	return details
}
