package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
	"github.com/SscSPs/opening_balances/internal/models"
	"github.com/SscSPs/opening_balances/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const detailColumns = `detail_id, tenant_id, balance_id, account_object_id, department_id, expense_item_id, job_id,
	project_work_id, sale_order_id, purchase_order_id, sale_contract_id, purchase_contract_id, list_item_id,
	debit_balance, credit_balance, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxOpeningBalanceDetailRepository struct {
	db querier
}

func newPgxOpeningBalanceDetailRepository(db querier) portsrepo.OpeningBalanceDetailRepositoryFacade {
	return &PgxOpeningBalanceDetailRepository{db: db}
}

var _ portsrepo.OpeningBalanceDetailRepositoryFacade = (*PgxOpeningBalanceDetailRepository)(nil)

func (r *PgxOpeningBalanceDetailRepository) FindDetailByID(ctx context.Context, tenantID, detailID string) (*domain.OpeningBalanceDetail, error) {
	query := `SELECT ` + detailColumns + ` FROM opening_balance_details WHERE tenant_id = $1 AND detail_id = $2;`
	return r.findOne(ctx, query, tenantID, detailID)
}

func (r *PgxOpeningBalanceDetailRepository) FindDetailByAccountObject(ctx context.Context, tenantID, balanceID, accountObjectID string) (*domain.OpeningBalanceDetail, error) {
	query := `SELECT ` + detailColumns + ` FROM opening_balance_details
		WHERE tenant_id = $1 AND balance_id = $2 AND account_object_id = $3
		ORDER BY row_seq ASC LIMIT 1;`
	return r.findOne(ctx, query, tenantID, balanceID, accountObjectID)
}

func (r *PgxOpeningBalanceDetailRepository) findOne(ctx context.Context, query string, args ...any) (*domain.OpeningBalanceDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query opening balance detail: %w", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.OpeningBalanceDetail])
	if err != nil {
		return nil, notFoundOr(err)
	}
	detail := mapping.ToDomainOpeningBalanceDetail(row)
	return &detail, nil
}

func (r *PgxOpeningBalanceDetailRepository) ListDetailsByBalance(ctx context.Context, tenantID, balanceID string) ([]domain.OpeningBalanceDetail, error) {
	query := `SELECT ` + detailColumns + ` FROM opening_balance_details
		WHERE tenant_id = $1 AND balance_id = $2
		ORDER BY row_seq ASC;`
	rows, err := r.db.Query(ctx, query, tenantID, balanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list details of balance %s: %w", balanceID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.OpeningBalanceDetail])
	if err != nil {
		return nil, fmt.Errorf("failed to scan details of balance %s: %w", balanceID, err)
	}
	return mapping.ToDomainOpeningBalanceDetailSlice(ms), nil
}

func (r *PgxOpeningBalanceDetailRepository) ListDetailsByBalances(ctx context.Context, tenantID string, balanceIDs []string) (map[string][]domain.OpeningBalanceDetail, error) {
	out := make(map[string][]domain.OpeningBalanceDetail)
	if len(balanceIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + detailColumns + ` FROM opening_balance_details
		WHERE tenant_id = $1 AND balance_id = ANY($2)
		ORDER BY row_seq ASC;`
	rows, err := r.db.Query(ctx, query, tenantID, balanceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list details by balances: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.OpeningBalanceDetail])
	if err != nil {
		return nil, fmt.Errorf("failed to scan details by balances: %w", err)
	}
	for _, m := range ms {
		out[m.BalanceID] = append(out[m.BalanceID], mapping.ToDomainOpeningBalanceDetail(m))
	}
	return out, nil
}

func (r *PgxOpeningBalanceDetailRepository) SumDetailsByBalance(ctx context.Context, tenantID, balanceID string) (decimal.Decimal, decimal.Decimal, error) {
	var debit, credit decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(debit_balance), 0), COALESCE(SUM(credit_balance), 0)
		FROM opening_balance_details
		WHERE tenant_id = $1 AND balance_id = $2;`, tenantID, balanceID).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum details of balance %s: %w", balanceID, err)
	}
	return debit, credit, nil
}

func (r *PgxOpeningBalanceDetailRepository) SaveDetail(ctx context.Context, detail domain.OpeningBalanceDetail) error {
	m := mapping.ToModelOpeningBalanceDetail(detail)
	query := `INSERT INTO opening_balance_details (` + detailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);`
	_, err := r.db.Exec(ctx, query,
		m.DetailID, m.TenantID, m.BalanceID, m.AccountObjectID, m.DepartmentID, m.ExpenseItemID, m.JobID,
		m.ProjectWorkID, m.SaleOrderID, m.PurchaseOrderID, m.SaleContractID, m.PurchaseContractID, m.ListItemID,
		m.DebitBalance, m.CreditBalance, m.Description, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: detail %s already exists", apperrors.ErrDuplicate, m.DetailID)
		}
		return fmt.Errorf("failed to save detail %s: %w", m.DetailID, err)
	}
	return nil
}

func (r *PgxOpeningBalanceDetailRepository) UpdateDetail(ctx context.Context, detail domain.OpeningBalanceDetail) error {
	m := mapping.ToModelOpeningBalanceDetail(detail)
	query := `UPDATE opening_balance_details
		SET account_object_id = $3, department_id = $4, expense_item_id = $5, job_id = $6, project_work_id = $7,
			sale_order_id = $8, purchase_order_id = $9, sale_contract_id = $10, purchase_contract_id = $11,
			list_item_id = $12, debit_balance = $13, credit_balance = $14, description = $15,
			last_updated_at = $16, last_updated_by = $17
		WHERE tenant_id = $1 AND detail_id = $2;`
	tag, err := r.db.Exec(ctx, query,
		m.TenantID, m.DetailID, m.AccountObjectID, m.DepartmentID, m.ExpenseItemID, m.JobID, m.ProjectWorkID,
		m.SaleOrderID, m.PurchaseOrderID, m.SaleContractID, m.PurchaseContractID,
		m.ListItemID, m.DebitBalance, m.CreditBalance, m.Description,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update detail %s: %w", m.DetailID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOpeningBalanceDetailRepository) DeleteDetail(ctx context.Context, tenantID, detailID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM opening_balance_details WHERE tenant_id = $1 AND detail_id = $2;`, tenantID, detailID)
	if err != nil {
		return fmt.Errorf("failed to delete detail %s: %w", detailID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOpeningBalanceDetailRepository) DeleteDetailsByBalance(ctx context.Context, tenantID string, balanceIDs ...string) error {
	if len(balanceIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`DELETE FROM opening_balance_details WHERE tenant_id = $1 AND balance_id = ANY($2);`,
		tenantID, balanceIDs)
	if err != nil {
		return fmt.Errorf("failed to delete details of balances: %w", err)
	}
	return nil
}
