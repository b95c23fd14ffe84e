package dto

import (
	"github.com/SscSPs/opening_balances/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PeriodSummaryResponse defines the data returned by the summary query.
type PeriodSummaryResponse struct {
	PeriodID      string          `json:"periodId"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	TotalBalances int             `json:"totalBalances"`
	IsBalanced    bool            `json:"isBalanced"`
}

// ToPeriodSummaryResponse converts a domain.PeriodSummary.
func ToPeriodSummaryResponse(s *domain.PeriodSummary) PeriodSummaryResponse {
	return PeriodSummaryResponse{
		PeriodID:      s.PeriodID,
		TotalDebit:    s.TotalDebit,
		TotalCredit:   s.TotalCredit,
		TotalBalances: s.TotalBalances,
		IsBalanced:    s.IsBalanced,
	}
}
