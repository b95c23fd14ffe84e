package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
	"github.com/SscSPs/opening_balances/internal/core/services"
	"github.com/SscSPs/opening_balances/internal/dto"
	"github.com/SscSPs/opening_balances/internal/repositories/chart"
	"github.com/SscSPs/opening_balances/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OpeningBalanceServiceTestSuite struct {
	serviceSuite
}

func TestOpeningBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OpeningBalanceServiceTestSuite))
}

func (s *OpeningBalanceServiceTestSuite) TestCreateBalance_ResolvesNameFromChart() {
	s.resolver.On("ResolveAccount", mock.Anything, "111", domain.DefaultAccountRegime).
		Return(&domain.ChartAccount{RegimeCode: "200", AccountNumber: "111", AccountName: "Cash"}, nil).Once()
	period := s.createPeriod("FY2024")

	balance := s.createBalance(period.PeriodID, "111", "500", "0", false)

	s.Equal("Cash", balance.AccountName)
	s.Equal("VND", balance.CurrencyCode)
}

func (s *OpeningBalanceServiceTestSuite) TestCreateBalance_ExplicitNameSkipsResolver() {
	period := s.createPeriod("FY2024")

	balance, err := s.svc.Balance.CreateBalance(s.ctx, s.tenantID, dto.CreateOpeningBalanceRequest{
		PeriodID:      period.PeriodID,
		CurrencyCode:  "usd",
		AccountNumber: "112",
		AccountName:   "Main bank account",
		DebitBalance:  dec("10"),
	}, s.userID)
	s.Require().NoError(err)
	s.Equal("Main bank account", balance.AccountName)
	s.Equal("USD", balance.CurrencyCode)
	s.resolver.AssertNotCalled(s.T(), "ResolveAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (s *OpeningBalanceServiceTestSuite) TestCreateBalance_AccountIDSkipsResolver() {
	period := s.createPeriod("FY2024")

	balance, err := s.svc.Balance.CreateBalance(s.ctx, s.tenantID, dto.CreateOpeningBalanceRequest{
		PeriodID:      period.PeriodID,
		CurrencyCode:  "VND",
		AccountID:     strPtr("acc-111"),
		AccountNumber: "111",
		DebitBalance:  dec("10"),
	}, s.userID)
	s.Require().NoError(err)
	s.Equal("Account 111", balance.AccountName)
	s.Equal("acc-111", *balance.AccountID)
	s.resolver.AssertNotCalled(s.T(), "ResolveAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (s *OpeningBalanceServiceTestSuite) TestCreateBalance_ResolverFailureFallsBackToPlaceholder() {
	s.resolver.On("ResolveAccount", mock.Anything, "999", domain.DefaultAccountRegime).
		Return(nil, errors.New("chart service unavailable")).Once()
	period := s.createPeriod("FY2024")

	balance := s.createBalance(period.PeriodID, "999", "1", "0", false)

	s.Equal("Account 999", balance.AccountName)
}

func (s *OpeningBalanceServiceTestSuite) TestCreateBalance_ResubmissionUpdatesInPlace() {
	s.resolver.On("ResolveAccount", mock.Anything, "131", domain.DefaultAccountRegime).
		Return(nil, apperrors.ErrNotFound).Once()
	period := s.createPeriod("FY2024")

	first := s.createBalance(period.PeriodID, "131", "100", "0", false)
	s.clock.Advance(time.Hour)

	second, err := s.svc.Balance.CreateBalance(s.ctx, s.tenantID, dto.CreateOpeningBalanceRequest{
		PeriodID:      period.PeriodID,
		CurrencyCode:  "vnd",
		AccountNumber: "131",
		DebitBalance:  dec("0"),
		CreditBalance: dec("250"),
		HasDetails:    true,
		Note:          "restated",
	}, "user-2")
	s.Require().NoError(err)

	s.Equal(first.BalanceID, second.BalanceID)
	balances := s.listPeriodBalances(period.PeriodID)
	s.Require().Len(balances, 1)
	stored := balances[0]
	s.assertDecimal("0", stored.DebitBalance)
	s.assertDecimal("250", stored.CreditBalance)
	s.True(stored.HasDetails)
	s.Equal("restated", stored.Note)
	s.Equal(s.userID, stored.CreatedBy)
	s.Equal("user-2", stored.LastUpdatedBy)
	s.True(stored.LastUpdatedAt.After(stored.CreatedAt))
}

func (s *OpeningBalanceServiceTestSuite) TestCreateBalance_RejectsInvalidInput() {
	period := s.createPeriod("FY2024")
	base := dto.CreateOpeningBalanceRequest{PeriodID: period.PeriodID, CurrencyCode: "VND", AccountNumber: "111"}

	bothSides := base
	bothSides.DebitBalance, bothSides.CreditBalance = dec("1"), dec("1")
	_, err := s.svc.Balance.CreateBalance(s.ctx, s.tenantID, bothSides, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(err, domain.ErrDebitAndCredit)

	negative := base
	negative.DebitBalance = dec("-5")
	_, err = s.svc.Balance.CreateBalance(s.ctx, s.tenantID, negative, s.userID)
	s.ErrorIs(err, domain.ErrNegativeAmount)

	noAccount := base
	noAccount.AccountNumber = " "
	noAccount.AccountID = strPtr("acc-1")
	_, err = s.svc.Balance.CreateBalance(s.ctx, s.tenantID, noAccount, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal("acc-1", apperrors.DetailsOf(err)["accountId"])

	badCurrency := base
	badCurrency.CurrencyCode = "XYZQ"
	_, err = s.svc.Balance.CreateBalance(s.ctx, s.tenantID, badCurrency, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)

	missingPeriod := base
	missingPeriod.PeriodID = "missing"
	_, err = s.svc.Balance.CreateBalance(s.ctx, s.tenantID, missingPeriod, s.userID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	s.Empty(s.listPeriodBalances(period.PeriodID))
}

func (s *OpeningBalanceServiceTestSuite) TestUpdateBalance_MergesAndRevalidates() {
	s.resolveNothing()
	period := s.createPeriod("FY2024")
	balance := s.createBalance(period.PeriodID, "111", "100", "0", false)

	_, err := s.svc.Balance.UpdateBalance(s.ctx, s.tenantID, balance.BalanceID, dto.UpdateOpeningBalanceRequest{
		CreditBalance: decPtr("5"),
	}, s.userID)
	s.ErrorIs(err, domain.ErrDebitAndCredit)

	updated, err := s.svc.Balance.UpdateBalance(s.ctx, s.tenantID, balance.BalanceID, dto.UpdateOpeningBalanceRequest{
		DebitBalance:  decPtr("0"),
		CreditBalance: decPtr("5"),
		AccountName:   strPtr("Petty cash"),
	}, s.userID)
	s.Require().NoError(err)
	s.assertDecimal("5", updated.CreditBalance)
	s.Equal("Petty cash", updated.AccountName)
	s.Equal("111", updated.AccountNumber)
}

func (s *OpeningBalanceServiceTestSuite) TestLockedPeriod_RejectsEveryMutationWithoutChangingData() {
	s.resolveNothing()
	period := s.createPeriod("FY2024")
	balance := s.createBalance(period.PeriodID, "131", "100", "0", true)
	detail := s.addDetail(balance.BalanceID, "c1", "100", "0")
	_, err := s.svc.Period.LockPeriod(s.ctx, s.tenantID, period.PeriodID, s.userID)
	s.Require().NoError(err)

	before, err := s.svc.Balance.GetBalance(s.ctx, s.tenantID, balance.BalanceID)
	s.Require().NoError(err)

	_, err = s.svc.Balance.CreateBalance(s.ctx, s.tenantID, dto.CreateOpeningBalanceRequest{
		PeriodID: period.PeriodID, CurrencyCode: "VND", AccountNumber: "131", DebitBalance: dec("1"),
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrForbidden)
	_, err = s.svc.Balance.UpdateBalance(s.ctx, s.tenantID, balance.BalanceID, dto.UpdateOpeningBalanceRequest{DebitBalance: decPtr("1")}, s.userID)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.ErrorIs(s.svc.Balance.DeleteBalance(s.ctx, s.tenantID, balance.BalanceID, s.userID), apperrors.ErrForbidden)

	_, err = s.svc.Detail.CreateDetail(s.ctx, s.tenantID, balance.BalanceID, detailInput("c2", "1", "0"), s.userID)
	s.ErrorIs(err, apperrors.ErrForbidden)
	_, err = s.svc.Detail.UpdateDetail(s.ctx, s.tenantID, detail.DetailID, dto.UpdateOpeningBalanceDetailRequest{DebitBalance: decPtr("1")}, s.userID)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.ErrorIs(s.svc.Detail.DeleteDetail(s.ctx, s.tenantID, detail.DetailID, s.userID), apperrors.ErrForbidden)

	after, err := s.svc.Balance.GetBalance(s.ctx, s.tenantID, balance.BalanceID)
	s.Require().NoError(err)
	s.Equal(before, after)
}

func (s *OpeningBalanceServiceTestSuite) TestDeleteBalance_RemovesDetails() {
	s.resolveNothing()
	period := s.createPeriod("FY2024")
	balance := s.createBalance(period.PeriodID, "131", "100", "0", true)
	detail := s.addDetail(balance.BalanceID, "c1", "100", "0")

	s.Require().NoError(s.svc.Balance.DeleteBalance(s.ctx, s.tenantID, balance.BalanceID, s.userID))

	_, err := s.svc.Detail.GetDetail(s.ctx, s.tenantID, detail.DetailID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.ErrorIs(s.svc.Balance.DeleteBalance(s.ctx, s.tenantID, balance.BalanceID, s.userID), apperrors.ErrNotFound)
}

func (s *OpeningBalanceServiceTestSuite) TestGetBalance_IncludesDetailsInInsertionOrder() {
	s.resolveNothing()
	period := s.createPeriod("FY2024")
	balance := s.createBalance(period.PeriodID, "131", "30", "0", true)
	s.addDetail(balance.BalanceID, "c3", "10", "0")
	s.addDetail(balance.BalanceID, "c1", "10", "0")
	s.addDetail(balance.BalanceID, "c2", "10", "0")

	got, err := s.svc.Balance.GetBalance(s.ctx, s.tenantID, balance.BalanceID)
	s.Require().NoError(err)
	s.Require().Len(got.Details, 3)
	s.Equal("c3", *got.Details[0].AccountObjectID)
	s.Equal("c1", *got.Details[1].AccountObjectID)
	s.Equal("c2", *got.Details[2].AccountObjectID)
}

func (s *OpeningBalanceServiceTestSuite) TestListBalances_FiltersAndPaginates() {
	s.resolveNothing()
	period := s.createPeriod("FY2024")
	other := s.createPeriod("FY2023")
	for _, num := range []string{"111", "1121", "131", "331"} {
		s.createBalance(period.PeriodID, num, "1", "0", num == "131")
	}
	s.createBalance(other.PeriodID, "111", "1", "0", false)

	page, total, err := s.svc.Balance.ListBalances(s.ctx, s.tenantID, dto.ListOpeningBalancesParams{
		PeriodID: period.PeriodID, AccountNumber: "11", Limit: 1,
	})
	s.Require().NoError(err)
	s.Equal(2, total)
	s.Equal([]string{"111"}, accountNumbers(page))

	page, _, err = s.svc.Balance.ListBalances(s.ctx, s.tenantID, dto.ListOpeningBalancesParams{
		PeriodID: period.PeriodID, AccountNumber: "11", Limit: 1, Offset: 1,
	})
	s.Require().NoError(err)
	s.Equal([]string{"1121"}, accountNumbers(page))

	withDetails := true
	page, total, err = s.svc.Balance.ListBalances(s.ctx, s.tenantID, dto.ListOpeningBalancesParams{HasDetails: &withDetails})
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Equal([]string{"131"}, accountNumbers(page))

	_, total, err = s.svc.Balance.ListBalances(s.ctx, s.tenantID, dto.ListOpeningBalancesParams{CurrencyCode: "usd"})
	s.Require().NoError(err)
	s.Zero(total)
}

// FuzzCreateBalanceSides checks that no stored balance ever carries both a debit and a credit.
func FuzzCreateBalanceSides(f *testing.F) {
	f.Add(int64(0), int64(0))
	f.Add(int64(100), int64(0))
	f.Add(int64(0), int64(100))
	f.Add(int64(1), int64(1))
	f.Add(int64(-1), int64(0))
	f.Add(int64(0), int64(-250))

	f.Fuzz(func(t *testing.T, debitCents, creditCents int64) {
		ctx := context.Background()
		store := memory.NewStore()
		svc := services.NewServiceContainer(store.Provider(chart.NewStaticResolver(chart.DefaultAccounts()...)))
		period, err := svc.Period.CreatePeriod(ctx, "t", dto.CreateOpeningPeriodRequest{Name: "p", OpeningDate: time.Now()}, "u")
		require.NoError(t, err)

		debit := decimal.New(debitCents, -2)
		credit := decimal.New(creditCents, -2)
		balance, err := svc.Balance.CreateBalance(ctx, "t", dto.CreateOpeningBalanceRequest{
			PeriodID:      period.PeriodID,
			CurrencyCode:  "VND",
			AccountNumber: "111",
			DebitBalance:  debit,
			CreditBalance: credit,
		}, "u")

		invalid := debit.IsNegative() || credit.IsNegative() || (debit.IsPositive() && credit.IsPositive())
		if invalid {
			require.ErrorIs(t, err, apperrors.ErrValidation)
			return
		}
		require.NoError(t, err)
		require.False(t, balance.DebitBalance.IsPositive() && balance.CreditBalance.IsPositive())
		require.Equal(t, "Cash", balance.AccountName)
	})
}
