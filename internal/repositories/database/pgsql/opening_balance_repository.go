package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
	"github.com/SscSPs/opening_balances/internal/models"
	"github.com/SscSPs/opening_balances/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const balanceColumns = `balance_id, tenant_id, period_id, currency_code, account_id, account_number, account_name,
	debit_balance, credit_balance, has_details, note, created_at, created_by, last_updated_at, last_updated_by`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PgxOpeningBalanceRepository struct {
	db querier
}

func newPgxOpeningBalanceRepository(db querier) portsrepo.OpeningBalanceRepositoryFacade {
	return &PgxOpeningBalanceRepository{db: db}
}

var _ portsrepo.OpeningBalanceRepositoryFacade = (*PgxOpeningBalanceRepository)(nil)

func (r *PgxOpeningBalanceRepository) FindBalanceByID(ctx context.Context, tenantID, balanceID string) (*domain.OpeningBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM opening_balances WHERE tenant_id = $1 AND balance_id = $2;`
	return r.findOne(ctx, query, tenantID, balanceID)
}

func (r *PgxOpeningBalanceRepository) FindBalanceByKey(ctx context.Context, tenantID, periodID, accountNumber, currencyCode string) (*domain.OpeningBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM opening_balances
		WHERE tenant_id = $1 AND period_id = $2 AND account_number = $3 AND currency_code = $4;`
	return r.findOne(ctx, query, tenantID, periodID, accountNumber, currencyCode)
}

func (r *PgxOpeningBalanceRepository) findOne(ctx context.Context, query string, args ...any) (*domain.OpeningBalance, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query opening balance: %w", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.OpeningBalance])
	if err != nil {
		return nil, notFoundOr(err)
	}
	balance := mapping.ToDomainOpeningBalance(row)
	return &balance, nil
}

func (r *PgxOpeningBalanceRepository) ListBalances(ctx context.Context, tenantID string, filter domain.BalanceFilter) ([]domain.OpeningBalance, int, error) {
	whereSQL, args := balanceListWhere(tenantID, filter)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM opening_balances WHERE `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count opening balances: %w", err)
	}

	query := `SELECT ` + balanceColumns + ` FROM opening_balances WHERE ` + whereSQL +
		fmt.Sprintf(` ORDER BY account_number ASC, currency_code ASC LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list opening balances: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.OpeningBalance])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan opening balances: %w", err)
	}
	return mapping.ToDomainOpeningBalanceSlice(ms), total, nil
}

// balanceListWhere builds the shared WHERE clause of the list and count queries.
// The account number filter is a case-insensitive substring match with LIKE wildcards escaped.
func balanceListWhere(tenantID string, filter domain.BalanceFilter) (string, []any) {
	where := []string{"tenant_id = $1"}
	args := []any{tenantID}
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if filter.PeriodID != "" {
		add("period_id = $%d", filter.PeriodID)
	}
	if filter.CurrencyCode != "" {
		add("currency_code = $%d", filter.CurrencyCode)
	}
	if filter.AccountNumber != "" {
		add("account_number ILIKE '%%' || $%d || '%%'", likeEscaper.Replace(filter.AccountNumber))
	}
	if filter.HasDetails != nil {
		add("has_details = $%d", *filter.HasDetails)
	}
	return strings.Join(where, " AND "), args
}

func (r *PgxOpeningBalanceRepository) ListBalancesByPeriod(ctx context.Context, tenantID, periodID string) ([]domain.OpeningBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM opening_balances
		WHERE tenant_id = $1 AND period_id = $2
		ORDER BY account_number ASC, currency_code ASC;`
	rows, err := r.db.Query(ctx, query, tenantID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances of period %s: %w", periodID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.OpeningBalance])
	if err != nil {
		return nil, fmt.Errorf("failed to scan balances of period %s: %w", periodID, err)
	}
	return mapping.ToDomainOpeningBalanceSlice(ms), nil
}

func (r *PgxOpeningBalanceRepository) SaveBalance(ctx context.Context, balance domain.OpeningBalance) error {
	m := mapping.ToModelOpeningBalance(balance)
	query := `INSERT INTO opening_balances (` + balanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`
	_, err := r.db.Exec(ctx, query,
		m.BalanceID, m.TenantID, m.PeriodID, m.CurrencyCode, m.AccountID, m.AccountNumber, m.AccountName,
		m.DebitBalance, m.CreditBalance, m.HasDetails, m.Note,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: opening balance for account %s in %s already exists",
				apperrors.ErrDuplicate, m.AccountNumber, m.CurrencyCode)
		}
		return fmt.Errorf("failed to save opening balance %s: %w", m.BalanceID, err)
	}
	return nil
}

func (r *PgxOpeningBalanceRepository) UpdateBalance(ctx context.Context, balance domain.OpeningBalance) error {
	m := mapping.ToModelOpeningBalance(balance)
	query := `UPDATE opening_balances
		SET account_id = $3, account_name = $4, debit_balance = $5, credit_balance = $6, has_details = $7,
			note = $8, last_updated_at = $9, last_updated_by = $10
		WHERE tenant_id = $1 AND balance_id = $2;`
	tag, err := r.db.Exec(ctx, query,
		m.TenantID, m.BalanceID, m.AccountID, m.AccountName, m.DebitBalance, m.CreditBalance, m.HasDetails,
		m.Note, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update opening balance %s: %w", m.BalanceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOpeningBalanceRepository) DeleteBalance(ctx context.Context, tenantID, balanceID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM opening_balances WHERE tenant_id = $1 AND balance_id = $2;`, tenantID, balanceID)
	if err != nil {
		return fmt.Errorf("failed to delete opening balance %s: %w", balanceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOpeningBalanceRepository) DeleteBalancesByPeriod(ctx context.Context, tenantID, periodID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`DELETE FROM opening_balances WHERE tenant_id = $1 AND period_id = $2 RETURNING balance_id;`,
		tenantID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete balances of period %s: %w", periodID, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect deleted balances of period %s: %w", periodID, err)
	}
	return ids, nil
}
