package accounting

import (
	"fmt"

	"github.com/SscSPs/opening_balances/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WithinTolerance reports whether |expected - actual| <= domain.ReconciliationTolerance.
// A difference of exactly the tolerance is accepted.
func WithinTolerance(expected, actual decimal.Decimal) bool {
	return expected.Sub(actual).Abs().LessThanOrEqual(domain.ReconciliationTolerance)
}

// IsBalanced reports whether total debit and total credit differ by strictly less than the tolerance.
func IsBalanced(totalDebit, totalCredit decimal.Decimal) bool {
	return totalDebit.Sub(totalCredit).Abs().LessThan(domain.ReconciliationTolerance)
}

// DetailTotals sums the debit and credit sides of the given details.
func DetailTotals(details []domain.OpeningBalanceDetail) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, d := range details {
		debit = debit.Add(d.DebitBalance)
		credit = credit.Add(d.CreditBalance)
	}
	return debit, credit
}

// ReconcileBalance compares a balance with its detail totals and returns one
// sum_mismatch error per side that is outside the tolerance.
func ReconcileBalance(b domain.OpeningBalance, detailDebit, detailCredit decimal.Decimal) []domain.ValidationError {
	var errs []domain.ValidationError
	if !WithinTolerance(b.DebitBalance, detailDebit) {
		errs = append(errs, mismatch(b, "debit", b.DebitBalance, detailDebit))
	}
	if !WithinTolerance(b.CreditBalance, detailCredit) {
		errs = append(errs, mismatch(b, "credit", b.CreditBalance, detailCredit))
	}
	return errs
}

func mismatch(b domain.OpeningBalance, side string, expected, actual decimal.Decimal) domain.ValidationError {
	return domain.ValidationError{
		BalanceID:     b.BalanceID,
		AccountNumber: b.AccountNumber,
		Type:          domain.ValidationErrorSumMismatch,
		Side:          side,
		Message: fmt.Sprintf("account %s: sum of detail %s (%s) does not match balance %s (%s)",
			b.AccountNumber, side, actual.String(), side, expected.String()),
		Expected: expected,
		Actual:   actual,
	}
}

// Summarize totals the top-level balances of a period. Details are not re-summed.
func Summarize(periodID string, balances []domain.OpeningBalance) domain.PeriodSummary {
	s := domain.PeriodSummary{PeriodID: periodID, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, b := range balances {
		s.TotalDebit = s.TotalDebit.Add(b.DebitBalance)
		s.TotalCredit = s.TotalCredit.Add(b.CreditBalance)
	}
	s.TotalBalances = len(balances)
	s.IsBalanced = IsBalanced(s.TotalDebit, s.TotalCredit)
	return s
}
