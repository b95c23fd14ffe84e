package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
	"golang.org/x/text/currency"
)

// normalizeCurrencyCode upper-cases and validates an ISO 4217 code.
func normalizeCurrencyCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", apperrors.NewBadRequest("currency code is required")
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", apperrors.NewBadRequest(fmt.Sprintf("invalid currency code %q", code)).
			WithDetail("currencyId", code)
	}
	return unit.String(), nil
}

// findPeriod maps a missing period to a NotFound AppError.
func findPeriod(ctx context.Context, repo portsrepo.OpeningPeriodReader, tenantID, periodID string) (*domain.OpeningPeriod, error) {
	period, err := repo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("opening period not found").WithDetail("periodId", periodID)
		}
		return nil, fmt.Errorf("failed to find opening period %s: %w", periodID, err)
	}
	return period, nil
}

// findUnlockedPeriod re-reads the owning period and refuses locked ones with Forbidden.
func findUnlockedPeriod(ctx context.Context, repo portsrepo.OpeningPeriodReader, tenantID, periodID string) (*domain.OpeningPeriod, error) {
	period, err := findPeriod(ctx, repo, tenantID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Locked {
		return nil, apperrors.NewForbidden("opening period is locked").WithDetail("periodId", periodID)
	}
	return period, nil
}

func findBalance(ctx context.Context, repo portsrepo.OpeningBalanceReader, tenantID, balanceID string) (*domain.OpeningBalance, error) {
	balance, err := repo.FindBalanceByID(ctx, tenantID, balanceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("opening balance not found").WithDetail("balanceId", balanceID)
		}
		return nil, fmt.Errorf("failed to find opening balance %s: %w", balanceID, err)
	}
	return balance, nil
}

func findDetail(ctx context.Context, repo portsrepo.OpeningBalanceDetailReader, tenantID, detailID string) (*domain.OpeningBalanceDetail, error) {
	detail, err := repo.FindDetailByID(ctx, tenantID, detailID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("opening balance detail not found").WithDetail("detailId", detailID)
		}
		return nil, fmt.Errorf("failed to find opening balance detail %s: %w", detailID, err)
	}
	return detail, nil
}

// sidesError converts a debit/credit rule violation into a BadRequest.
func sidesError(err error, accountNumber string) error {
	appErr := apperrors.NewBadRequest(err.Error())
	appErr.Err = err
	if accountNumber != "" {
		appErr.WithDetail("accountNumber", accountNumber)
	}
	return appErr
}
