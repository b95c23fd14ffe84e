package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/opening_balances/internal/core/ports/services"
	"github.com/SscSPs/opening_balances/internal/core/services"
	"github.com/SscSPs/opening_balances/internal/dto"
	"github.com/SscSPs/opening_balances/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountResolver ---
type MockAccountResolver struct {
	mock.Mock
}

func (m *MockAccountResolver) ResolveAccount(ctx context.Context, accountNumber, regimeCode string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, accountNumber, regimeCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccount), args.Error(1)
}

func (m *MockAccountResolver) ResolveAccounts(ctx context.Context, accountNumbers []string, regimeCode string) (map[string]domain.ChartAccount, error) {
	args := m.Called(ctx, accountNumbers, regimeCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ChartAccount), args.Error(1)
}

var _ portsrepo.AccountResolver = (*MockAccountResolver)(nil)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// serviceSuite wires every service against a fresh in-memory store.
type serviceSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	resolver *MockAccountResolver
	clock    *fakeClock
	svc      *portssvc.ServiceContainer
	tenantID string
	userID   string
}

func (s *serviceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.resolver = new(MockAccountResolver)
	s.clock = &fakeClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	s.svc = services.NewServiceContainer(s.store.Provider(s.resolver), services.WithClock(s.clock.Now))
	s.tenantID = "tenant-1"
	s.userID = "user-1"
}

func (s *serviceSuite) TearDownTest() {
	s.resolver.AssertExpectations(s.T())
}

// resolveNothing makes every account number unknown to the chart of accounts.
func (s *serviceSuite) resolveNothing() {
	s.resolver.On("ResolveAccount", mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Maybe()
	s.resolver.On("ResolveAccounts", mock.Anything, mock.Anything, mock.Anything).Return(map[string]domain.ChartAccount{}, nil).Maybe()
}

func (s *serviceSuite) createPeriod(name string) *domain.OpeningPeriod {
	period, err := s.svc.Period.CreatePeriod(s.ctx, s.tenantID, dto.CreateOpeningPeriodRequest{
		Name:        name,
		OpeningDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, s.userID)
	s.Require().NoError(err)
	return period
}

func (s *serviceSuite) createBalance(periodID, accountNumber string, debit, credit string, hasDetails bool) *domain.OpeningBalance {
	balance, err := s.svc.Balance.CreateBalance(s.ctx, s.tenantID, dto.CreateOpeningBalanceRequest{
		PeriodID:      periodID,
		CurrencyCode:  "VND",
		AccountNumber: accountNumber,
		DebitBalance:  dec(debit),
		CreditBalance: dec(credit),
		HasDetails:    hasDetails,
	}, s.userID)
	s.Require().NoError(err)
	return balance
}

func (s *serviceSuite) addDetail(balanceID, accountObjectID, debit, credit string) *domain.OpeningBalanceDetail {
	detail, err := s.svc.Detail.CreateDetail(s.ctx, s.tenantID, balanceID, detailInput(accountObjectID, debit, credit), s.userID)
	s.Require().NoError(err)
	return detail
}

func (s *serviceSuite) listPeriodBalances(periodID string) []domain.OpeningBalance {
	balances, total, err := s.svc.Balance.ListBalances(s.ctx, s.tenantID, dto.ListOpeningBalancesParams{PeriodID: periodID, Limit: 500})
	s.Require().NoError(err)
	s.Require().Len(balances, total)
	return balances
}

func (s *serviceSuite) assertDecimal(expected string, actual decimal.Decimal) {
	s.True(dec(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

func detailInput(accountObjectID, debit, credit string) dto.OpeningBalanceDetailInput {
	in := dto.OpeningBalanceDetailInput{DebitBalance: dec(debit), CreditBalance: dec(credit)}
	if accountObjectID != "" {
		in.AccountObjectID = strPtr(accountObjectID)
	}
	return in
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func accountNumbers(balances []domain.OpeningBalance) []string {
	out := make([]string, len(balances))
	for i, b := range balances {
		out[i] = b.AccountNumber
	}
	return out
}
