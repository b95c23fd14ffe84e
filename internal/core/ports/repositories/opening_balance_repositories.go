package repositories

import (
	"context"

	"github.com/SscSPs/opening_balances/internal/core/domain"
)

// OpeningBalanceReader defines read operations for opening balances.
type OpeningBalanceReader interface {
	// FindBalanceByID retrieves a balance of the tenant (without details).
	FindBalanceByID(ctx context.Context, tenantID, balanceID string) (*domain.OpeningBalance, error)

	// FindBalanceByKey retrieves the balance identified by (tenant, period, account number, currency).
	FindBalanceByKey(ctx context.Context, tenantID, periodID, accountNumber, currencyCode string) (*domain.OpeningBalance, error)

	// ListBalances returns one page of balances matching the filter, ordered by account number,
	// together with the total number of matches.
	ListBalances(ctx context.Context, tenantID string, filter domain.BalanceFilter) ([]domain.OpeningBalance, int, error)

	// ListBalancesByPeriod returns every balance of a period, ordered by account number.
	ListBalancesByPeriod(ctx context.Context, tenantID, periodID string) ([]domain.OpeningBalance, error)
}

// OpeningBalanceWriter defines write operations for opening balances.
type OpeningBalanceWriter interface {
	// SaveBalance persists a new balance.
	SaveBalance(ctx context.Context, balance domain.OpeningBalance) error

	// UpdateBalance overwrites the mutable fields of an existing balance.
	UpdateBalance(ctx context.Context, balance domain.OpeningBalance) error

	// DeleteBalance removes a balance row.
	DeleteBalance(ctx context.Context, tenantID, balanceID string) error

	// DeleteBalancesByPeriod removes every balance of a period and returns their ids.
	DeleteBalancesByPeriod(ctx context.Context, tenantID, periodID string) ([]string, error)
}

// OpeningBalanceRepositoryFacade combines all balance-related repository interfaces.
type OpeningBalanceRepositoryFacade interface {
	OpeningBalanceReader
	OpeningBalanceWriter
}
