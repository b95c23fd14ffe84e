package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ReconciliationTolerance is the absolute difference allowed between a balance and the sum of its details.
var ReconciliationTolerance = decimal.RequireFromString("0.01")

// ValidationErrorSumMismatch is the only validation error type produced by the lock gate.
const ValidationErrorSumMismatch = "sum_mismatch"

var (
	// ErrNegativeAmount indicates a debit or credit below zero.
	ErrNegativeAmount = errors.New("debit and credit balances must not be negative")
	// ErrDebitAndCredit indicates both sides are positive on the same row.
	ErrDebitAndCredit = errors.New("debit and credit balances cannot both be greater than zero")
)

// ValidateSides enforces non-negative, mutually exclusive debit/credit amounts.
func ValidateSides(debit, credit decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return ErrNegativeAmount
	}
	if debit.IsPositive() && credit.IsPositive() {
		return ErrDebitAndCredit
	}
	return nil
}

// PlaceholderAccountName is the display name used when the chart of accounts has no entry.
func PlaceholderAccountName(accountNumber string) string {
	return fmt.Sprintf("Account %s", accountNumber)
}

// ValidationError describes one failed reconciliation check.
type ValidationError struct {
	BalanceID     string          `json:"balanceId"`
	AccountNumber string          `json:"accountNumber"`
	Type          string          `json:"type"`
	Side          string          `json:"side"` // "debit" or "credit"
	Message       string          `json:"message"`
	Expected      decimal.Decimal `json:"expected"`
	Actual        decimal.Decimal `json:"actual"`
}

// ValidationResult is the outcome of the global validation algorithm.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

// PeriodSummary is the read-only diagnostic over top-level balances of a period.
type PeriodSummary struct {
	PeriodID      string          `json:"periodId"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	TotalBalances int             `json:"totalBalances"`
	IsBalanced    bool            `json:"isBalanced"`
}
