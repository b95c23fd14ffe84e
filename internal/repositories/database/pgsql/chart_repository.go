package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/opening_balances/internal/core/domain"
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
	"github.com/SscSPs/opening_balances/internal/models"
	"github.com/SscSPs/opening_balances/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const chartColumns = `regime_code, account_number, account_name`

// PgxChartRepository resolves account names from the chart_of_accounts table.
type PgxChartRepository struct {
	db querier
}

func newPgxChartRepository(db querier) *PgxChartRepository {
	return &PgxChartRepository{db: db}
}

var _ portsrepo.AccountResolver = (*PgxChartRepository)(nil)

func (r *PgxChartRepository) ResolveAccount(ctx context.Context, accountNumber, regimeCode string) (*domain.ChartAccount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+chartColumns+`
		FROM chart_of_accounts
		WHERE regime_code = $1 AND account_number = $2 AND is_active;`, regimeCode, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart of accounts: %w", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ChartAccount])
	if err != nil {
		return nil, notFoundOr(err)
	}
	account := mapping.ToDomainChartAccount(row)
	return &account, nil
}

func (r *PgxChartRepository) ResolveAccounts(ctx context.Context, accountNumbers []string, regimeCode string) (map[string]domain.ChartAccount, error) {
	out := make(map[string]domain.ChartAccount, len(accountNumbers))
	if len(accountNumbers) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+chartColumns+`
		FROM chart_of_accounts
		WHERE regime_code = $1 AND account_number = ANY($2) AND is_active;`, regimeCode, accountNumbers)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart of accounts: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ChartAccount])
	if err != nil {
		return nil, fmt.Errorf("failed to scan chart of accounts: %w", err)
	}
	for _, m := range ms {
		out[m.AccountNumber] = mapping.ToDomainChartAccount(m)
	}
	return out, nil
}
