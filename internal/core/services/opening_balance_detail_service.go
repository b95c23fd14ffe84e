package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/opening_balances/internal/core/ports/services"
	"github.com/SscSPs/opening_balances/internal/dto"
	"github.com/SscSPs/opening_balances/internal/utils/accounting"
	"github.com/google/uuid"
)

type openingBalanceDetailService struct {
	BaseService
	balanceRepo portsrepo.OpeningBalanceReader
	detailRepo  portsrepo.OpeningBalanceDetailReader
	uow         portsrepo.UnitOfWork
}

// NewOpeningBalanceDetailService creates the detail service.
func NewOpeningBalanceDetailService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.OpeningBalanceDetailSvcFacade {
	return &openingBalanceDetailService{
		BaseService: newBaseService(options...),
		balanceRepo: repos.BalanceRepo,
		detailRepo:  repos.DetailRepo,
		uow:         repos.UnitOfWork,
	}
}

var _ portssvc.OpeningBalanceDetailSvcFacade = (*openingBalanceDetailService)(nil)

func (s *openingBalanceDetailService) ListDetails(ctx context.Context, tenantID, balanceID string) ([]domain.OpeningBalanceDetail, error) {
	if _, err := findBalance(ctx, s.balanceRepo, tenantID, balanceID); err != nil {
		s.logFailure(ctx, err, "Failed to list details", slog.String("balance_id", balanceID))
		return nil, err
	}
	details, err := s.detailRepo.ListDetailsByBalance(ctx, tenantID, balanceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list details", slog.String("balance_id", balanceID))
		return nil, fmt.Errorf("failed to list details of balance %s: %w", balanceID, err)
	}
	return details, nil
}

func (s *openingBalanceDetailService) GetDetail(ctx context.Context, tenantID, detailID string) (*domain.OpeningBalanceDetail, error) {
	detail, err := findDetail(ctx, s.detailRepo, tenantID, detailID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get detail", slog.String("detail_id", detailID))
		return nil, err
	}
	return detail, nil
}

func (s *openingBalanceDetailService) CreateDetail(ctx context.Context, tenantID, balanceID string, req dto.OpeningBalanceDetailInput, userID string) (*domain.OpeningBalanceDetail, error) {
	if err := domain.ValidateSides(req.DebitBalance, req.CreditBalance); err != nil {
		return nil, sidesError(err, "")
	}

	var created domain.OpeningBalanceDetail
	err := s.uow.WithTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		balance, err := findBalance(ctx, repos.Balances(), tenantID, balanceID)
		if err != nil {
			return err
		}
		if _, err := findUnlockedPeriod(ctx, repos.Periods(), tenantID, balance.PeriodID); err != nil {
			return err
		}

		created = domain.OpeningBalanceDetail{
			DetailID:         uuid.NewString(),
			TenantID:         tenantID,
			BalanceID:        balanceID,
			DetailDimensions: req.ToDomain(),
			DebitBalance:     req.DebitBalance,
			CreditBalance:    req.CreditBalance,
			Description:      req.Description,
			AuditFields:      domain.NewAuditFields(userID, s.Now()),
		}
		if err := repos.Details().SaveDetail(ctx, created); err != nil {
			return fmt.Errorf("failed to save detail: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create detail", slog.String("balance_id", balanceID))
		return nil, err
	}
	return &created, nil
}

func (s *openingBalanceDetailService) UpdateDetail(ctx context.Context, tenantID, detailID string, req dto.UpdateOpeningBalanceDetailRequest, userID string) (*domain.OpeningBalanceDetail, error) {
	var updated *domain.OpeningBalanceDetail
	err := s.uow.WithTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		detail, err := s.findMutableDetail(ctx, repos, tenantID, detailID)
		if err != nil {
			return err
		}

		if req.DebitBalance != nil {
			detail.DebitBalance = *req.DebitBalance
		}
		if req.CreditBalance != nil {
			detail.CreditBalance = *req.CreditBalance
		}
		if err := domain.ValidateSides(detail.DebitBalance, detail.CreditBalance); err != nil {
			return sidesError(err, "")
		}
		if req.Dimensions != nil {
			detail.DetailDimensions = req.Dimensions.ToDomain()
		}
		if req.Description != nil {
			detail.Description = *req.Description
		}
		detail.Touch(userID, s.Now())

		if err := repos.Details().UpdateDetail(ctx, *detail); err != nil {
			return fmt.Errorf("failed to update detail: %w", err)
		}
		updated = detail
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to update detail", slog.String("detail_id", detailID))
		return nil, err
	}
	return updated, nil
}

func (s *openingBalanceDetailService) DeleteDetail(ctx context.Context, tenantID, detailID, userID string) error {
	err := s.uow.WithTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if _, err := s.findMutableDetail(ctx, repos, tenantID, detailID); err != nil {
			return err
		}
		if err := repos.Details().DeleteDetail(ctx, tenantID, detailID); err != nil {
			return fmt.Errorf("failed to delete detail: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to delete detail", slog.String("detail_id", detailID))
		return err
	}
	s.LogInfo(ctx, "Detail deleted", slog.String("detail_id", detailID), slog.String("user_id", userID))
	return nil
}

// findMutableDetail loads a detail after re-reading the lock of the period that owns it.
func (s *openingBalanceDetailService) findMutableDetail(ctx context.Context, repos portsrepo.TxRepositories, tenantID, detailID string) (*domain.OpeningBalanceDetail, error) {
	detail, err := findDetail(ctx, repos.Details(), tenantID, detailID)
	if err != nil {
		return nil, err
	}
	balance, err := findBalance(ctx, repos.Balances(), tenantID, detail.BalanceID)
	if err != nil {
		return nil, err
	}
	if _, err := findUnlockedPeriod(ctx, repos.Periods(), tenantID, balance.PeriodID); err != nil {
		return nil, err
	}
	return detail, nil
}

// BatchUpsertDetails creates or updates details of one balance. Rows carrying an account object id
// update the existing detail for that counterparty; rows without one are always created.
func (s *openingBalanceDetailService) BatchUpsertDetails(ctx context.Context, tenantID, balanceID string, req dto.BatchOpeningBalanceDetailsRequest, userID string) (*domain.BatchResult, error) {
	mode, err := parseBatchMode(req.Mode)
	if err != nil {
		return nil, err
	}

	var result *domain.BatchResult
	err = s.uow.WithTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		balance, err := findBalance(ctx, repos.Balances(), tenantID, balanceID)
		if err != nil {
			return err
		}
		period, err := findPeriod(ctx, repos.Periods(), tenantID, balance.PeriodID)
		if err != nil {
			return err
		}
		if period.Locked {
			return apperrors.NewBadRequest("opening period is locked").WithDetail("periodId", period.PeriodID)
		}

		result = newBatchResult(len(req.Details))
		now := s.Now()
		err = runBatchItems(ctx, repos, mode, result, len(req.Details),
			func(ctx context.Context, repos portsrepo.TxRepositories, i int) (domain.BatchItemResult, error) {
				return s.applyDetailItem(ctx, repos, balance, req.Details[i], userID, now)
			})
		if err != nil {
			return err
		}

		if !balance.HasDetails {
			return nil
		}
		debit, credit, err := repos.Details().SumDetailsByBalance(ctx, tenantID, balanceID)
		if err != nil {
			return fmt.Errorf("failed to sum details of balance %s: %w", balanceID, err)
		}
		mismatches := accounting.ReconcileBalance(*balance, debit, credit)
		if len(mismatches) == 0 {
			return nil
		}
		if mode == domain.FailFast {
			return apperrors.NewBadRequest("detail totals do not match the balance").
				WithDetail("balanceId", balanceID).
				WithDetail("accountNumber", balance.AccountNumber).
				WithDetail("validationErrors", mismatches)
		}
		for _, m := range mismatches {
			result.AddError(domain.BatchError{
				Index:         -1,
				AccountNumber: m.AccountNumber,
				BalanceID:     m.BalanceID,
				Type:          m.Type,
				Message:       m.Message,
			})
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Detail batch aborted", slog.String("balance_id", balanceID), slog.String("mode", string(mode)))
		return nil, err
	}

	s.LogInfo(ctx, "Detail batch committed",
		slog.String("balance_id", balanceID),
		slog.Int("created", result.Created),
		slog.Int("updated", result.Updated),
		slog.Int("failed", result.Failed),
		slog.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func (s *openingBalanceDetailService) applyDetailItem(
	ctx context.Context,
	repos portsrepo.TxRepositories,
	balance *domain.OpeningBalance,
	in dto.OpeningBalanceDetailInput,
	userID string,
	now time.Time,
) (domain.BatchItemResult, error) {
	outcome := domain.BatchItemResult{AccountNumber: balance.AccountNumber, AccountName: balance.AccountName}
	if err := domain.ValidateSides(in.DebitBalance, in.CreditBalance); err != nil {
		return outcome, apperrors.NewItemFailure(balance.AccountNumber, err)
	}

	incoming := domain.OpeningBalanceDetail{
		TenantID:         balance.TenantID,
		BalanceID:        balance.BalanceID,
		DetailDimensions: in.ToDomain(),
		DebitBalance:     in.DebitBalance,
		CreditBalance:    in.CreditBalance,
		Description:      in.Description,
	}

	if key, ok := incoming.UpsertKey(); ok {
		existing, err := repos.Details().FindDetailByAccountObject(ctx, balance.TenantID, balance.BalanceID, key)
		switch {
		case err == nil:
			existing.DetailDimensions = incoming.DetailDimensions
			existing.DebitBalance = incoming.DebitBalance
			existing.CreditBalance = incoming.CreditBalance
			existing.Description = incoming.Description
			existing.Touch(userID, now)
			if err := repos.Details().UpdateDetail(ctx, *existing); err != nil {
				return outcome, fmt.Errorf("failed to update detail for %s: %w", key, err)
			}
			outcome.ID = existing.DetailID
			outcome.Status = domain.ItemUpdated
			return outcome, nil
		case !errors.Is(err, apperrors.ErrNotFound):
			return outcome, fmt.Errorf("failed to look up detail for %s: %w", key, err)
		}
	}

	incoming.DetailID = uuid.NewString()
	incoming.AuditFields = domain.NewAuditFields(userID, now)
	if err := repos.Details().SaveDetail(ctx, incoming); err != nil {
		return outcome, fmt.Errorf("failed to save detail: %w", err)
	}
	outcome.ID = incoming.DetailID
	outcome.Status = domain.ItemCreated
	return outcome, nil
}
