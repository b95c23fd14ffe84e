package repositories

import (
	"context"

	"github.com/SscSPs/opening_balances/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpeningBalanceDetailReader defines read operations for balance details.
type OpeningBalanceDetailReader interface {
	// FindDetailByID retrieves a detail of the tenant.
	FindDetailByID(ctx context.Context, tenantID, detailID string) (*domain.OpeningBalanceDetail, error)

	// FindDetailByAccountObject retrieves the detail of a balance tagged with the given counterparty.
	FindDetailByAccountObject(ctx context.Context, tenantID, balanceID, accountObjectID string) (*domain.OpeningBalanceDetail, error)

	// ListDetailsByBalance returns the details of one balance in creation order.
	ListDetailsByBalance(ctx context.Context, tenantID, balanceID string) ([]domain.OpeningBalanceDetail, error)

	// ListDetailsByBalances returns details grouped by balance id.
	ListDetailsByBalances(ctx context.Context, tenantID string, balanceIDs []string) (map[string][]domain.OpeningBalanceDetail, error)

	// SumDetailsByBalance returns the debit and credit totals of a balance's details.
	SumDetailsByBalance(ctx context.Context, tenantID, balanceID string) (decimal.Decimal, decimal.Decimal, error)
}

// OpeningBalanceDetailWriter defines write operations for balance details.
type OpeningBalanceDetailWriter interface {
	SaveDetail(ctx context.Context, detail domain.OpeningBalanceDetail) error
	UpdateDetail(ctx context.Context, detail domain.OpeningBalanceDetail) error
	DeleteDetail(ctx context.Context, tenantID, detailID string) error

	// DeleteDetailsByBalance removes all details of the given balances.
	DeleteDetailsByBalance(ctx context.Context, tenantID string, balanceIDs ...string) error
}

// OpeningBalanceDetailRepositoryFacade combines all detail-related repository interfaces.
type OpeningBalanceDetailRepositoryFacade interface {
	OpeningBalanceDetailReader
	OpeningBalanceDetailWriter
}
