package services

import (
	"context"

	"github.com/SscSPs/opening_balances/internal/core/domain"
	"github.com/SscSPs/opening_balances/internal/dto"
)

// OpeningBalanceReaderSvc defines read operations for balances.
type OpeningBalanceReaderSvc interface {
	// GetBalance retrieves a balance together with its details.
	GetBalance(ctx context.Context, tenantID, balanceID string) (*domain.OpeningBalance, error)

	// ListBalances returns one page of matching balances and the total match count.
	ListBalances(ctx context.Context, tenantID string, params dto.ListOpeningBalancesParams) ([]domain.OpeningBalance, int, error)
}

// OpeningBalanceWriterSvc defines write operations for balances.
type OpeningBalanceWriterSvc interface {
	// CreateBalance inserts a balance, or updates the one with the same business key.
	CreateBalance(ctx context.Context, tenantID string, req dto.CreateOpeningBalanceRequest, userID string) (*domain.OpeningBalance, error)
	UpdateBalance(ctx context.Context, tenantID, balanceID string, req dto.UpdateOpeningBalanceRequest, userID string) (*domain.OpeningBalance, error)
	DeleteBalance(ctx context.Context, tenantID, balanceID, userID string) error
}

// OpeningBalanceBatchSvc defines the bulk import operation.
type OpeningBalanceBatchSvc interface {
	BatchUpsertBalances(ctx context.Context, tenantID string, req dto.BatchOpeningBalancesRequest, userID string) (*domain.BatchResult, error)
}

// OpeningBalanceSvcFacade combines all balance-related service interfaces.
type OpeningBalanceSvcFacade interface {
	OpeningBalanceReaderSvc
	OpeningBalanceWriterSvc
	OpeningBalanceBatchSvc
}
