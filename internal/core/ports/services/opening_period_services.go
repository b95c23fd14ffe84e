package services

import (
	"context"

	"github.com/SscSPs/opening_balances/internal/core/domain"
	"github.com/SscSPs/opening_balances/internal/dto"
)

// OpeningPeriodReaderSvc defines read operations for periods.
type OpeningPeriodReaderSvc interface {
	// GetPeriod retrieves a period of the tenant.
	GetPeriod(ctx context.Context, tenantID, periodID string) (*domain.OpeningPeriod, error)

	// ListPeriods lists the tenant's periods, newest opening date first.
	ListPeriods(ctx context.Context, tenantID string) ([]domain.OpeningPeriod, error)
}

// OpeningPeriodWriterSvc defines write operations for periods.
type OpeningPeriodWriterSvc interface {
	CreatePeriod(ctx context.Context, tenantID string, req dto.CreateOpeningPeriodRequest, userID string) (*domain.OpeningPeriod, error)
	UpdatePeriod(ctx context.Context, tenantID, periodID string, req dto.UpdateOpeningPeriodRequest, userID string) (*domain.OpeningPeriod, error)
	DeletePeriod(ctx context.Context, tenantID, periodID, userID string) error
}

// OpeningPeriodLockSvc drives the lock lifecycle and the checks that gate it.
type OpeningPeriodLockSvc interface {
	// LockPeriod validates the period and makes it immutable.
	LockPeriod(ctx context.Context, tenantID, periodID, userID string) (*domain.OpeningPeriod, error)

	// UnlockPeriod removes the immutability guard without re-validating.
	UnlockPeriod(ctx context.Context, tenantID, periodID, userID string) (*domain.OpeningPeriod, error)

	// ValidatePeriod runs the reconciliation checks without changing anything.
	ValidatePeriod(ctx context.Context, tenantID, periodID string) (*domain.ValidationResult, error)

	// GetSummary totals the top-level balances of the period.
	GetSummary(ctx context.Context, tenantID, periodID string) (*domain.PeriodSummary, error)
}

// OpeningPeriodSvcFacade combines all period-related service interfaces.
type OpeningPeriodSvcFacade interface {
	OpeningPeriodReaderSvc
	OpeningPeriodWriterSvc
	OpeningPeriodLockSvc
}
