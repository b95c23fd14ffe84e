package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
	"github.com/SscSPs/opening_balances/internal/dto"
	"github.com/SscSPs/opening_balances/internal/utils/accounting"
	"github.com/google/uuid"
)

// BatchUpsertBalances imports many balances of one period and currency in a single transaction.
func (s *openingBalanceService) BatchUpsertBalances(ctx context.Context, tenantID string, req dto.BatchOpeningBalancesRequest, userID string) (*domain.BatchResult, error) {
	mode, err := parseBatchMode(req.Mode)
	if err != nil {
		return nil, err
	}
	currencyCode, err := normalizeCurrencyCode(req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	numbers := make([]string, 0, len(req.Balances))
	for _, item := range req.Balances {
		if needsLookup(item.AccountName, item.AccountID) {
			numbers = append(numbers, item.AccountNumber)
		}
	}
	resolved := s.namer.names(ctx, numbers)

	logger := s.GetLogger(ctx).With(
		slog.String("period_id", req.PeriodID),
		slog.String("currency", currencyCode),
		slog.String("mode", string(mode)),
	)

	var result *domain.BatchResult
	err = s.uow.WithTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		period, err := repos.Periods().FindPeriodByID(ctx, tenantID, req.PeriodID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewBadRequest("opening period not found").WithDetail("periodId", req.PeriodID)
			}
			return fmt.Errorf("failed to find opening period: %w", err)
		}
		if period.Locked {
			return apperrors.NewBadRequest("opening period is locked").WithDetail("periodId", req.PeriodID)
		}

		result = newBatchResult(len(req.Balances))
		now := s.Now()
		return runBatchItems(ctx, repos, mode, result, len(req.Balances),
			func(ctx context.Context, repos portsrepo.TxRepositories, i int) (domain.BatchItemResult, error) {
				return s.applyBalanceItem(ctx, repos, balanceItemScope{
					tenantID:     tenantID,
					periodID:     period.PeriodID,
					currencyCode: currencyCode,
					userID:       userID,
					now:          now,
					resolved:     resolved,
				}, req.Balances[i])
			})
	})
	if err != nil {
		s.logFailure(ctx, err, "Opening balance batch aborted",
			slog.String("period_id", req.PeriodID), slog.String("mode", string(mode)))
		return nil, err
	}

	logger.Info("Opening balance batch committed",
		slog.Int("total", result.Total),
		slog.Int("created", result.Created),
		slog.Int("updated", result.Updated),
		slog.Int("failed", result.Failed),
	)
	return result, nil
}

type balanceItemScope struct {
	tenantID     string
	periodID     string
	currencyCode string
	userID       string
	now          time.Time
	resolved     map[string]string
}

// applyBalanceItem upserts one balance and, when given, replaces its detail set.
func (s *openingBalanceService) applyBalanceItem(
	ctx context.Context,
	repos portsrepo.TxRepositories,
	scope balanceItemScope,
	item dto.BatchOpeningBalanceItem,
) (domain.BatchItemResult, error) {
	accountNumber := strings.TrimSpace(item.AccountNumber)
	outcome := domain.BatchItemResult{AccountNumber: accountNumber}
	if accountNumber == "" {
		return outcome, apperrors.NewItemFailure("", errors.New("account number is required"))
	}

	outcome.AccountName = pickAccountName(accountNumber, item.AccountName, item.AccountID, scope.resolved)

	if err := domain.ValidateSides(item.DebitBalance, item.CreditBalance); err != nil {
		return outcome, apperrors.NewItemFailure(accountNumber, err)
	}

	balance, err := repos.Balances().FindBalanceByKey(ctx, scope.tenantID, scope.periodID, accountNumber, scope.currencyCode)
	switch {
	case err == nil:
		balance.DebitBalance = item.DebitBalance
		balance.CreditBalance = item.CreditBalance
		balance.HasDetails = item.HasDetails
		balance.Note = item.Note
		if item.AccountID != nil {
			balance.AccountID = item.AccountID
		}
		balance.Touch(scope.userID, scope.now)
		if err := repos.Balances().UpdateBalance(ctx, *balance); err != nil {
			return outcome, fmt.Errorf("failed to update balance %s: %w", accountNumber, err)
		}
		outcome.Status = domain.ItemUpdated
		outcome.AccountName = balance.AccountName
	case errors.Is(err, apperrors.ErrNotFound):
		balance = &domain.OpeningBalance{
			BalanceID:     uuid.NewString(),
			TenantID:      scope.tenantID,
			PeriodID:      scope.periodID,
			CurrencyCode:  scope.currencyCode,
			AccountID:     item.AccountID,
			AccountNumber: accountNumber,
			AccountName:   outcome.AccountName,
			DebitBalance:  item.DebitBalance,
			CreditBalance: item.CreditBalance,
			HasDetails:    item.HasDetails,
			Note:          item.Note,
			AuditFields:   domain.NewAuditFields(scope.userID, scope.now),
		}
		if err := repos.Balances().SaveBalance(ctx, *balance); err != nil {
			return outcome, fmt.Errorf("failed to save balance %s: %w", accountNumber, err)
		}
		outcome.Status = domain.ItemCreated
	default:
		return outcome, fmt.Errorf("failed to look up balance %s: %w", accountNumber, err)
	}

	if len(item.Details) > 0 {
		if err := s.replaceDetails(ctx, repos, scope, balance, item.Details); err != nil {
			return outcome, err
		}
	}

	outcome.ID = balance.BalanceID
	return outcome, nil
}

// replaceDetails swaps the balance's detail set and, for has-details balances, checks the sums.
func (s *openingBalanceService) replaceDetails(
	ctx context.Context,
	repos portsrepo.TxRepositories,
	scope balanceItemScope,
	balance *domain.OpeningBalance,
	inputs []dto.OpeningBalanceDetailInput,
) error {
	if err := repos.Details().DeleteDetailsByBalance(ctx, scope.tenantID, balance.BalanceID); err != nil {
		return fmt.Errorf("failed to clear details of balance %s: %w", balance.AccountNumber, err)
	}

	details := make([]domain.OpeningBalanceDetail, 0, len(inputs))
	for j, in := range inputs {
		if err := domain.ValidateSides(in.DebitBalance, in.CreditBalance); err != nil {
			return apperrors.NewItemFailure(balance.AccountNumber, fmt.Errorf("detail %d: %w", j, err))
		}
		detail := domain.OpeningBalanceDetail{
			DetailID:         uuid.NewString(),
			TenantID:         scope.tenantID,
			BalanceID:        balance.BalanceID,
			DetailDimensions: in.ToDomain(),
			DebitBalance:     in.DebitBalance,
			CreditBalance:    in.CreditBalance,
			Description:      in.Description,
			AuditFields:      domain.NewAuditFields(scope.userID, scope.now),
		}
		if err := repos.Details().SaveDetail(ctx, detail); err != nil {
			return fmt.Errorf("failed to save detail %d of balance %s: %w", j, balance.AccountNumber, err)
		}
		details = append(details, detail)
	}

	if !balance.HasDetails {
		return nil
	}
	debit, credit := accounting.DetailTotals(details)
	if mismatches := accounting.ReconcileBalance(*balance, debit, credit); len(mismatches) > 0 {
		failure := apperrors.NewItemFailure(balance.AccountNumber, errors.New(mismatches[0].Message))
		return failure.WithDetail("validationErrors", mismatches)
	}
	return nil
}
