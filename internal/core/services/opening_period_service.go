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
	"github.com/SscSPs/opening_balances/internal/utils/accounting"
	"github.com/google/uuid"
)

type openingPeriodService struct {
	BaseService
	periodRepo  portsrepo.OpeningPeriodReader
	balanceRepo portsrepo.OpeningBalanceReader
	detailRepo  portsrepo.OpeningBalanceDetailReader
	uow         portsrepo.UnitOfWork
}

// NewOpeningPeriodService creates the period lifecycle service.
func NewOpeningPeriodService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.OpeningPeriodSvcFacade {
	return &openingPeriodService{
		BaseService: newBaseService(options...),
		periodRepo:  repos.PeriodRepo,
		balanceRepo: repos.BalanceRepo,
		detailRepo:  repos.DetailRepo,
		uow:         repos.UnitOfWork,
	}
}

var _ portssvc.OpeningPeriodSvcFacade = (*openingPeriodService)(nil)

func (s *openingPeriodService) CreatePeriod(ctx context.Context, tenantID string, req dto.CreateOpeningPeriodRequest, userID string) (*domain.OpeningPeriod, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("period name is required")
	}

	period := domain.OpeningPeriod{
		PeriodID:    uuid.NewString(),
		TenantID:    tenantID,
		Name:        name,
		OpeningDate: req.OpeningDate,
		Description: req.Description,
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}

	err := s.uow.WithTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if err := ensureNameAvailable(ctx, repos.Periods(), tenantID, name, ""); err != nil {
			return err
		}
		if err := repos.Periods().SavePeriod(ctx, period); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return duplicateNameError(name)
			}
			return fmt.Errorf("failed to save opening period: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create opening period", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Opening period created", slog.String("period_id", period.PeriodID))
	return &period, nil
}

func (s *openingPeriodService) ListPeriods(ctx context.Context, tenantID string) ([]domain.OpeningPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list opening periods")
		return nil, fmt.Errorf("failed to list opening periods: %w", err)
	}
	return periods, nil
}

func (s *openingPeriodService) GetPeriod(ctx context.Context, tenantID, periodID string) (*domain.OpeningPeriod, error) {
	period, err := findPeriod(ctx, s.periodRepo, tenantID, periodID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get opening period", slog.String("period_id", periodID))
		return nil, err
	}
	return period, nil
}

func (s *openingPeriodService) UpdatePeriod(ctx context.Context, tenantID, periodID string, req dto.UpdateOpeningPeriodRequest, userID string) (*domain.OpeningPeriod, error) {
	var updated *domain.OpeningPeriod
	err := s.uow.WithTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		period, err := findUnlockedPeriod(ctx, repos.Periods(), tenantID, periodID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperrors.NewBadRequest("period name cannot be empty")
			}
			if name != period.Name {
				if err := ensureNameAvailable(ctx, repos.Periods(), tenantID, name, period.PeriodID); err != nil {
					return err
				}
				period.Name = name
			}
		}
		if req.OpeningDate != nil {
			period.OpeningDate = *req.OpeningDate
		}
		if req.Description != nil {
			period.Description = *req.Description
		}
		period.Touch(userID, s.Now())

		if err := repos.Periods().UpdatePeriod(ctx, *period); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return duplicateNameError(period.Name)
			}
			return fmt.Errorf("failed to update opening period: %w", err)
		}
		updated = period
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to update opening period", slog.String("period_id", periodID))
		return nil, err
	}
	return updated, nil
}

// DeletePeriod removes an unlocked period together with its balances and their details.
func (s *openingPeriodService) DeletePeriod(ctx context.Context, tenantID, periodID, userID string) error {
	err := s.uow.WithTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if _, err := findUnlockedPeriod(ctx, repos.Periods(), tenantID, periodID); err != nil {
			return err
		}

		balances, err := repos.Balances().ListBalancesByPeriod(ctx, tenantID, periodID)
		if err != nil {
			return fmt.Errorf("failed to list balances of period: %w", err)
		}
		ids := make([]string, len(balances))
		for i, b := range balances {
			ids[i] = b.BalanceID
		}
		if len(ids) > 0 {
			if err := repos.Details().DeleteDetailsByBalance(ctx, tenantID, ids...); err != nil {
				return fmt.Errorf("failed to delete details of period: %w", err)
			}
		}
		if _, err := repos.Balances().DeleteBalancesByPeriod(ctx, tenantID, periodID); err != nil {
			return fmt.Errorf("failed to delete balances of period: %w", err)
		}
		if err := repos.Periods().DeletePeriod(ctx, tenantID, periodID); err != nil {
			return fmt.Errorf("failed to delete opening period: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to delete opening period", slog.String("period_id", periodID))
		return err
	}
	s.LogInfo(ctx, "Opening period deleted", slog.String("period_id", periodID), slog.String("user_id", userID))
	return nil
}

// LockPeriod runs the reconciliation gate and, when it passes, makes the period immutable.
// A failing gate returns every validation error and leaves the period unlocked.
func (s *openingPeriodService) LockPeriod(ctx context.Context, tenantID, periodID, userID string) (*domain.OpeningPeriod, error) {
	var locked *domain.OpeningPeriod
	err := s.uow.WithTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		period, err := findPeriod(ctx, repos.Periods(), tenantID, periodID)
		if err != nil {
			return err
		}
		if period.Locked {
			return apperrors.NewBadRequest("opening period is already locked").WithDetail("periodId", periodID)
		}

		result, err := validatePeriodBalances(ctx, repos.Balances(), repos.Details(), tenantID, periodID)
		if err != nil {
			return err
		}
		if !result.Valid {
			return apperrors.NewBadRequest("opening period failed validation").
				WithDetail("periodId", periodID).
				WithDetail("validationErrors", result.Errors)
		}

		period.Lock(userID, s.Now())
		if err := repos.Periods().UpdatePeriod(ctx, *period); err != nil {
			return fmt.Errorf("failed to lock opening period: %w", err)
		}
		locked = period
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to lock opening period", slog.String("period_id", periodID))
		return nil, err
	}
	s.LogInfo(ctx, "Opening period locked", slog.String("period_id", periodID))
	return locked, nil
}

func (s *openingPeriodService) UnlockPeriod(ctx context.Context, tenantID, periodID, userID string) (*domain.OpeningPeriod, error) {
	var unlocked *domain.OpeningPeriod
	err := s.uow.WithTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		period, err := findPeriod(ctx, repos.Periods(), tenantID, periodID)
		if err != nil {
			return err
		}
		if !period.Locked {
			return apperrors.NewBadRequest("opening period is not locked").WithDetail("periodId", periodID)
		}

		period.Unlock(userID, s.Now())
		if err := repos.Periods().UpdatePeriod(ctx, *period); err != nil {
			return fmt.Errorf("failed to unlock opening period: %w", err)
		}
		unlocked = period
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to unlock opening period", slog.String("period_id", periodID))
		return nil, err
	}
	s.LogInfo(ctx, "Opening period unlocked", slog.String("period_id", periodID))
	return unlocked, nil
}

func (s *openingPeriodService) ValidatePeriod(ctx context.Context, tenantID, periodID string) (*domain.ValidationResult, error) {
	if _, err := findPeriod(ctx, s.periodRepo, tenantID, periodID); err != nil {
		s.logFailure(ctx, err, "Failed to validate opening period", slog.String("period_id", periodID))
		return nil, err
	}
	result, err := validatePeriodBalances(ctx, s.balanceRepo, s.detailRepo, tenantID, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to validate opening period", slog.String("period_id", periodID))
		return nil, err
	}
	return result, nil
}

func (s *openingPeriodService) GetSummary(ctx context.Context, tenantID, periodID string) (*domain.PeriodSummary, error) {
	if _, err := findPeriod(ctx, s.periodRepo, tenantID, periodID); err != nil {
		s.logFailure(ctx, err, "Failed to summarize opening period", slog.String("period_id", periodID))
		return nil, err
	}
	balances, err := s.balanceRepo.ListBalancesByPeriod(ctx, tenantID, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list balances for summary", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to list balances of period %s: %w", periodID, err)
	}
	summary := accounting.Summarize(periodID, balances)
	return &summary, nil
}

// ensureNameAvailable returns Conflict when another period of the tenant already uses name.
func ensureNameAvailable(ctx context.Context, repo portsrepo.OpeningPeriodReader, tenantID, name, selfID string) error {
	existing, err := repo.FindPeriodByName(ctx, tenantID, name)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check period name: %w", err)
	case existing.PeriodID != selfID:
		return duplicateNameError(name)
	default:
		return nil
	}
}

func duplicateNameError(name string) error {
	return apperrors.NewConflict(fmt.Sprintf("an opening period named %q already exists", name)).
		WithDetail("name", name)
}
