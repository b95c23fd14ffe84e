package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/opening_balances/internal/core/domain"
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
	"github.com/SscSPs/opening_balances/internal/utils/accounting"
)

// validatePeriodBalances checks every has-details balance of a period against the sum of its
// details and collects every mismatch. It never mutates state.
func validatePeriodBalances(
	ctx context.Context,
	balances portsrepo.OpeningBalanceReader,
	details portsrepo.OpeningBalanceDetailReader,
	tenantID, periodID string,
) (*domain.ValidationResult, error) {
	all, err := balances.ListBalancesByPeriod(ctx, tenantID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances of period %s: %w", periodID, err)
	}

	var withDetails []domain.OpeningBalance
	ids := make([]string, 0, len(all))
	for _, b := range all {
		if b.HasDetails {
			withDetails = append(withDetails, b)
			ids = append(ids, b.BalanceID)
		}
	}

	result := &domain.ValidationResult{Valid: true, Errors: []domain.ValidationError{}}
	if len(withDetails) == 0 {
		return result, nil
	}

	byBalance, err := details.ListDetailsByBalances(ctx, tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list details of period %s: %w", periodID, err)
	}

	for _, b := range withDetails {
		debit, credit := accounting.DetailTotals(byBalance[b.BalanceID])
		result.Errors = append(result.Errors, accounting.ReconcileBalance(b, debit, credit)...)
	}
	result.Valid = len(result.Errors) == 0
	return result, nil
}
