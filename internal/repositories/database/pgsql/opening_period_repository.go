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
)

const periodColumns = `period_id, tenant_id, name, opening_date, description, locked, locked_at, locked_by,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxOpeningPeriodRepository struct {
	db querier
}

func newPgxOpeningPeriodRepository(db querier) portsrepo.OpeningPeriodRepositoryFacade {
	return &PgxOpeningPeriodRepository{db: db}
}

var _ portsrepo.OpeningPeriodRepositoryFacade = (*PgxOpeningPeriodRepository)(nil)

func (r *PgxOpeningPeriodRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.OpeningPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM opening_periods WHERE tenant_id = $1 AND period_id = $2;`
	return r.findOne(ctx, query, tenantID, periodID)
}

func (r *PgxOpeningPeriodRepository) FindPeriodByName(ctx context.Context, tenantID, name string) (*domain.OpeningPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM opening_periods WHERE tenant_id = $1 AND name = $2;`
	return r.findOne(ctx, query, tenantID, name)
}

func (r *PgxOpeningPeriodRepository) findOne(ctx context.Context, query string, args ...any) (*domain.OpeningPeriod, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query opening period: %w", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.OpeningPeriod])
	if err != nil {
		return nil, notFoundOr(err)
	}
	period := mapping.ToDomainOpeningPeriod(row)
	return &period, nil
}

func (r *PgxOpeningPeriodRepository) ListPeriods(ctx context.Context, tenantID string) ([]domain.OpeningPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM opening_periods
		WHERE tenant_id = $1
		ORDER BY opening_date DESC, created_at DESC;`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list opening periods: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.OpeningPeriod])
	if err != nil {
		return nil, fmt.Errorf("failed to scan opening periods: %w", err)
	}
	return mapping.ToDomainOpeningPeriodSlice(ms), nil
}

func (r *PgxOpeningPeriodRepository) SavePeriod(ctx context.Context, period domain.OpeningPeriod) error {
	m := mapping.ToModelOpeningPeriod(period)
	query := `INSERT INTO opening_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err := r.db.Exec(ctx, query,
		m.PeriodID, m.TenantID, m.Name, m.OpeningDate, m.Description, m.Locked, m.LockedAt, m.LockedBy,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: opening period %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save opening period %s: %w", m.PeriodID, err)
	}
	return nil
}

func (r *PgxOpeningPeriodRepository) UpdatePeriod(ctx context.Context, period domain.OpeningPeriod) error {
	m := mapping.ToModelOpeningPeriod(period)
	query := `UPDATE opening_periods
		SET name = $3, opening_date = $4, description = $5, locked = $6, locked_at = $7, locked_by = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE tenant_id = $1 AND period_id = $2;`
	tag, err := r.db.Exec(ctx, query,
		m.TenantID, m.PeriodID, m.Name, m.OpeningDate, m.Description, m.Locked, m.LockedAt, m.LockedBy,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: opening period %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to update opening period %s: %w", m.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOpeningPeriodRepository) DeletePeriod(ctx context.Context, tenantID, periodID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM opening_periods WHERE tenant_id = $1 AND period_id = $2;`, tenantID, periodID)
	if err != nil {
		return fmt.Errorf("failed to delete opening period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
