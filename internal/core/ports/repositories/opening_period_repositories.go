package repositories

import (
	"context"

	"github.com/SscSPs/opening_balances/internal/core/domain"
)

// OpeningPeriodReader defines read operations for opening periods.
type OpeningPeriodReader interface {
	// FindPeriodByID retrieves a period of the tenant. Returns apperrors.ErrNotFound when missing.
	FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.OpeningPeriod, error)

	// FindPeriodByName retrieves a period by its tenant-unique name.
	FindPeriodByName(ctx context.Context, tenantID, name string) (*domain.OpeningPeriod, error)

	// ListPeriods returns the tenant's periods, newest opening date first.
	ListPeriods(ctx context.Context, tenantID string) ([]domain.OpeningPeriod, error)
}

// OpeningPeriodWriter defines write operations for opening periods.
type OpeningPeriodWriter interface {
	// SavePeriod persists a new period.
	SavePeriod(ctx context.Context, period domain.OpeningPeriod) error

	// UpdatePeriod overwrites name, opening date, description, lock fields and audit fields.
	UpdatePeriod(ctx context.Context, period domain.OpeningPeriod) error

	// DeletePeriod removes the period row.
	DeletePeriod(ctx context.Context, tenantID, periodID string) error
}

// OpeningPeriodRepositoryFacade combines all period-related repository interfaces.
type OpeningPeriodRepositoryFacade interface {
	OpeningPeriodReader
	OpeningPeriodWriter
}
