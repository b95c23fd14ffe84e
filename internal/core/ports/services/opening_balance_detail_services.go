package services

import (
	"context"

	"github.com/SscSPs/opening_balances/internal/core/domain"
	"github.com/SscSPs/opening_balances/internal/dto"
)

// OpeningBalanceDetailReaderSvc defines read operations for details.
type OpeningBalanceDetailReaderSvc interface {
	GetDetail(ctx context.Context, tenantID, detailID string) (*domain.OpeningBalanceDetail, error)
	ListDetails(ctx context.Context, tenantID, balanceID string) ([]domain.OpeningBalanceDetail, error)
}

// OpeningBalanceDetailWriterSvc defines write operations for details.
type OpeningBalanceDetailWriterSvc interface {
	CreateDetail(ctx context.Context, tenantID, balanceID string, req dto.OpeningBalanceDetailInput, userID string) (*domain.OpeningBalanceDetail, error)
	UpdateDetail(ctx context.Context, tenantID, detailID string, req dto.UpdateOpeningBalanceDetailRequest, userID string) (*domain.OpeningBalanceDetail, error)
	DeleteDetail(ctx context.Context, tenantID, detailID, userID string) error

	// BatchUpsertDetails creates or updates many details of one balance.
	BatchUpsertDetails(ctx context.Context, tenantID, balanceID string, req dto.BatchOpeningBalanceDetailsRequest, userID string) (*domain.BatchResult, error)
}

// OpeningBalanceDetailSvcFacade combines all detail-related service interfaces.
type OpeningBalanceDetailSvcFacade interface {
	OpeningBalanceDetailReaderSvc
	OpeningBalanceDetailWriterSvc
}
