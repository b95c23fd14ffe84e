package handlers_test

import (
	"context"

	"github.com/SscSPs/opening_balances/internal/core/domain"
	portssvc "github.com/SscSPs/opening_balances/internal/core/ports/services"
	"github.com/SscSPs/opening_balances/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock OpeningPeriodService ---
type MockOpeningPeriodService struct {
	mock.Mock
}

func (m *MockOpeningPeriodService) GetPeriod(ctx context.Context, tenantID, periodID string) (*domain.OpeningPeriod, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningPeriod), args.Error(1)
}

func (m *MockOpeningPeriodService) ListPeriods(ctx context.Context, tenantID string) ([]domain.OpeningPeriod, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpeningPeriod), args.Error(1)
}

func (m *MockOpeningPeriodService) CreatePeriod(ctx context.Context, tenantID string, req dto.CreateOpeningPeriodRequest, userID string) (*domain.OpeningPeriod, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningPeriod), args.Error(1)
}

func (m *MockOpeningPeriodService) UpdatePeriod(ctx context.Context, tenantID, periodID string, req dto.UpdateOpeningPeriodRequest, userID string) (*domain.OpeningPeriod, error) {
	args := m.Called(ctx, tenantID, periodID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningPeriod), args.Error(1)
}

func (m *MockOpeningPeriodService) DeletePeriod(ctx context.Context, tenantID, periodID, userID string) error {
	args := m.Called(ctx, tenantID, periodID, userID)
	return args.Error(0)
}

func (m *MockOpeningPeriodService) LockPeriod(ctx context.Context, tenantID, periodID, userID string) (*domain.OpeningPeriod, error) {
	args := m.Called(ctx, tenantID, periodID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningPeriod), args.Error(1)
}

func (m *MockOpeningPeriodService) UnlockPeriod(ctx context.Context, tenantID, periodID, userID string) (*domain.OpeningPeriod, error) {
	args := m.Called(ctx, tenantID, periodID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningPeriod), args.Error(1)
}

func (m *MockOpeningPeriodService) ValidatePeriod(ctx context.Context, tenantID, periodID string) (*domain.ValidationResult, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationResult), args.Error(1)
}

func (m *MockOpeningPeriodService) GetSummary(ctx context.Context, tenantID, periodID string) (*domain.PeriodSummary, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodSummary), args.Error(1)
}

var _ portssvc.OpeningPeriodSvcFacade = (*MockOpeningPeriodService)(nil)

// --- Mock OpeningBalanceService ---
type MockOpeningBalanceService struct {
	mock.Mock
}

func (m *MockOpeningBalanceService) GetBalance(ctx context.Context, tenantID, balanceID string) (*domain.OpeningBalance, error) {
	args := m.Called(ctx, tenantID, balanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalance), args.Error(1)
}

func (m *MockOpeningBalanceService) ListBalances(ctx context.Context, tenantID string, params dto.ListOpeningBalancesParams) ([]domain.OpeningBalance, int, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.OpeningBalance), args.Int(1), args.Error(2)
}

func (m *MockOpeningBalanceService) CreateBalance(ctx context.Context, tenantID string, req dto.CreateOpeningBalanceRequest, userID string) (*domain.OpeningBalance, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalance), args.Error(1)
}

func (m *MockOpeningBalanceService) UpdateBalance(ctx context.Context, tenantID, balanceID string, req dto.UpdateOpeningBalanceRequest, userID string) (*domain.OpeningBalance, error) {
	args := m.Called(ctx, tenantID, balanceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalance), args.Error(1)
}

func (m *MockOpeningBalanceService) DeleteBalance(ctx context.Context, tenantID, balanceID, userID string) error {
	args := m.Called(ctx, tenantID, balanceID, userID)
	return args.Error(0)
}

func (m *MockOpeningBalanceService) BatchUpsertBalances(ctx context.Context, tenantID string, req dto.BatchOpeningBalancesRequest, userID string) (*domain.BatchResult, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}

var _ portssvc.OpeningBalanceSvcFacade = (*MockOpeningBalanceService)(nil)

// --- Mock OpeningBalanceDetailService ---
type MockOpeningBalanceDetailService struct {
	mock.Mock
}

func (m *MockOpeningBalanceDetailService) GetDetail(ctx context.Context, tenantID, detailID string) (*domain.OpeningBalanceDetail, error) {
	args := m.Called(ctx, tenantID, detailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalanceDetail), args.Error(1)
}

func (m *MockOpeningBalanceDetailService) ListDetails(ctx context.Context, tenantID, balanceID string) ([]domain.OpeningBalanceDetail, error) {
	args := m.Called(ctx, tenantID, balanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpeningBalanceDetail), args.Error(1)
}

func (m *MockOpeningBalanceDetailService) CreateDetail(ctx context.Context, tenantID, balanceID string, req dto.OpeningBalanceDetailInput, userID string) (*domain.OpeningBalanceDetail, error) {
	args := m.Called(ctx, tenantID, balanceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalanceDetail), args.Error(1)
}

func (m *MockOpeningBalanceDetailService) UpdateDetail(ctx context.Context, tenantID, detailID string, req dto.UpdateOpeningBalanceDetailRequest, userID string) (*domain.OpeningBalanceDetail, error) {
	args := m.Called(ctx, tenantID, detailID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalanceDetail), args.Error(1)
}

func (m *MockOpeningBalanceDetailService) DeleteDetail(ctx context.Context, tenantID, detailID, userID string) error {
	args := m.Called(ctx, tenantID, detailID, userID)
	return args.Error(0)
}

func (m *MockOpeningBalanceDetailService) BatchUpsertDetails(ctx context.Context, tenantID, balanceID string, req dto.BatchOpeningBalanceDetailsRequest, userID string) (*domain.BatchResult, error) {
	args := m.Called(ctx, tenantID, balanceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}

var _ portssvc.OpeningBalanceDetailSvcFacade = (*MockOpeningBalanceDetailService)(nil)
