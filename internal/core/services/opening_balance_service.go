package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/opening_balances/internal/core/ports/services"
	"github.com/SscSPs/opening_balances/internal/dto"
	"github.com/google/uuid"
)

const (
	defaultBalancePageSize = 20
	maxBalancePageSize     = 500
)

type openingBalanceService struct {
	BaseService
	balanceRepo portsrepo.OpeningBalanceReader
	detailRepo  portsrepo.OpeningBalanceDetailReader
	uow         portsrepo.UnitOfWork
	namer       accountNamer
}

// NewOpeningBalanceService creates the balance service, including the batch import.
func NewOpeningBalanceService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.OpeningBalanceSvcFacade {
	base := newBaseService(options...)
	return &openingBalanceService{
		BaseService: base,
		balanceRepo: repos.BalanceRepo,
		detailRepo:  repos.DetailRepo,
		uow:         repos.UnitOfWork,
		namer:       accountNamer{BaseService: base, resolver: repos.AccountResolver},
	}
}

var _ portssvc.OpeningBalanceSvcFacade = (*openingBalanceService)(nil)

// CreateBalance declares a balance. A balance with the same (period, account number, currency)
// is updated in place so that resubmitting the same request is idempotent.
func (s *openingBalanceService) CreateBalance(ctx context.Context, tenantID string, req dto.CreateOpeningBalanceRequest, userID string) (*domain.OpeningBalance, error) {
	accountNumber := strings.TrimSpace(req.AccountNumber)
	if accountNumber == "" {
		if req.AccountID != nil {
			return nil, apperrors.NewBadRequest("account number is required when account id is given").
				WithDetail("accountId", *req.AccountID)
		}
		return nil, apperrors.NewBadRequest("account number is required")
	}
	currencyCode, err := normalizeCurrencyCode(req.CurrencyCode)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateSides(req.DebitBalance, req.CreditBalance); err != nil {
		return nil, sidesError(err, accountNumber)
	}

	logger := s.GetLogger(ctx).With(
		slog.String("period_id", req.PeriodID),
		slog.String("account_number", accountNumber),
		slog.String("currency", currencyCode),
	)

	var saved domain.OpeningBalance
	err = s.uow.WithTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if _, err := findUnlockedPeriod(ctx, repos.Periods(), tenantID, req.PeriodID); err != nil {
			return err
		}

		now := s.Now()
		existing, err := repos.Balances().FindBalanceByKey(ctx, tenantID, req.PeriodID, accountNumber, currencyCode)
		switch {
		case err == nil:
			existing.DebitBalance = req.DebitBalance
			existing.CreditBalance = req.CreditBalance
			existing.HasDetails = req.HasDetails
			existing.Note = req.Note
			existing.Touch(userID, now)
			if err := repos.Balances().UpdateBalance(ctx, *existing); err != nil {
				return fmt.Errorf("failed to update opening balance: %w", err)
			}
			saved = *existing
			logger.Info("Opening balance updated by resubmission", slog.String("balance_id", saved.BalanceID))
			return nil
		case !errors.Is(err, apperrors.ErrNotFound):
			return fmt.Errorf("failed to look up opening balance: %w", err)
		}

		saved = domain.OpeningBalance{
			BalanceID:     uuid.NewString(),
			TenantID:      tenantID,
			PeriodID:      req.PeriodID,
			CurrencyCode:  currencyCode,
			AccountID:     req.AccountID,
			AccountNumber: accountNumber,
			AccountName:   s.namer.name(ctx, accountNumber, req.AccountName, req.AccountID),
			DebitBalance:  req.DebitBalance,
			CreditBalance: req.CreditBalance,
			HasDetails:    req.HasDetails,
			Note:          req.Note,
			AuditFields:   domain.NewAuditFields(userID, now),
		}
		if err := repos.Balances().SaveBalance(ctx, saved); err != nil {
			return fmt.Errorf("failed to save opening balance: %w", err)
		}
		logger.Info("Opening balance created", slog.String("balance_id", saved.BalanceID))
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create opening balance",
			slog.String("period_id", req.PeriodID), slog.String("account_number", accountNumber))
		return nil, err
	}
	return &saved, nil
}

func (s *openingBalanceService) ListBalances(ctx context.Context, tenantID string, params dto.ListOpeningBalancesParams) ([]domain.OpeningBalance, int, error) {
	filter := params.ToFilter()
	filter.CurrencyCode = strings.ToUpper(strings.TrimSpace(filter.CurrencyCode))
	filter.AccountNumber = strings.TrimSpace(filter.AccountNumber)
	if filter.Limit <= 0 {
		filter.Limit = defaultBalancePageSize
	}
	if filter.Limit > maxBalancePageSize {
		filter.Limit = maxBalancePageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	balances, total, err := s.balanceRepo.ListBalances(ctx, tenantID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list opening balances", slog.String("period_id", filter.PeriodID))
		return nil, 0, fmt.Errorf("failed to list opening balances: %w", err)
	}
	return balances, total, nil
}

// GetBalance loads a balance with its details.
func (s *openingBalanceService) GetBalance(ctx context.Context, tenantID, balanceID string) (*domain.OpeningBalance, error) {
	balance, err := findBalance(ctx, s.balanceRepo, tenantID, balanceID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get opening balance", slog.String("balance_id", balanceID))
		return nil, err
	}
	details, err := s.detailRepo.ListDetailsByBalance(ctx, tenantID, balanceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load opening balance details", slog.String("balance_id", balanceID))
		return nil, fmt.Errorf("failed to load details of balance %s: %w", balanceID, err)
	}
	balance.Details = details
	return balance, nil
}

// UpdateBalance merges the patch onto the stored balance and re-validates the result.
func (s *openingBalanceService) UpdateBalance(ctx context.Context, tenantID, balanceID string, req dto.UpdateOpeningBalanceRequest, userID string) (*domain.OpeningBalance, error) {
	var updated *domain.OpeningBalance
	err := s.uow.WithTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		balance, err := findBalance(ctx, repos.Balances(), tenantID, balanceID)
		if err != nil {
			return err
		}
		if _, err := findUnlockedPeriod(ctx, repos.Periods(), tenantID, balance.PeriodID); err != nil {
			return err
		}

		if req.DebitBalance != nil {
			balance.DebitBalance = *req.DebitBalance
		}
		if req.CreditBalance != nil {
			balance.CreditBalance = *req.CreditBalance
		}
		if err := domain.ValidateSides(balance.DebitBalance, balance.CreditBalance); err != nil {
			return sidesError(err, balance.AccountNumber)
		}
		if req.AccountName != nil && strings.TrimSpace(*req.AccountName) != "" {
			balance.AccountName = strings.TrimSpace(*req.AccountName)
		}
		if req.HasDetails != nil {
			balance.HasDetails = *req.HasDetails
		}
		if req.Note != nil {
			balance.Note = *req.Note
		}
		balance.Touch(userID, s.Now())

		if err := repos.Balances().UpdateBalance(ctx, *balance); err != nil {
			return fmt.Errorf("failed to update opening balance: %w", err)
		}
		updated = balance
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to update opening balance", slog.String("balance_id", balanceID))
		return nil, err
	}
	return updated, nil
}

// DeleteBalance removes a balance and its details.
func (s *openingBalanceService) DeleteBalance(ctx context.Context, tenantID, balanceID, userID string) error {
	err := s.uow.WithTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		balance, err := findBalance(ctx, repos.Balances(), tenantID, balanceID)
		if err != nil {
			return err
		}
		if _, err := findUnlockedPeriod(ctx, repos.Periods(), tenantID, balance.PeriodID); err != nil {
			return err
		}
		if err := repos.Details().DeleteDetailsByBalance(ctx, tenantID, balanceID); err != nil {
			return fmt.Errorf("failed to delete details of balance: %w", err)
		}
		if err := repos.Balances().DeleteBalance(ctx, tenantID, balanceID); err != nil {
			return fmt.Errorf("failed to delete opening balance: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to delete opening balance", slog.String("balance_id", balanceID))
		return err
	}
	s.LogInfo(ctx, "Opening balance deleted", slog.String("balance_id", balanceID), slog.String("user_id", userID))
	return nil
}
