package dto

import (
	"time"

	"github.com/SscSPs/opening_balances/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOpeningBalanceRequest defines the data needed to declare a balance.
// A second request for the same (period, account number, currency) updates the existing row.
type CreateOpeningBalanceRequest struct {
	PeriodID      string          `json:"periodId" binding:"required"`
	CurrencyCode  string          `json:"currencyId" binding:"required"`
	AccountID     *string         `json:"accountId"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	DebitBalance  decimal.Decimal `json:"debitBalance" binding:"gte=0"`
	CreditBalance decimal.Decimal `json:"creditBalance" binding:"gte=0"`
	HasDetails    bool            `json:"hasDetails"`
	Note          string          `json:"note"`
}

// UpdateOpeningBalanceRequest patches a balance. The business key is immutable.
type UpdateOpeningBalanceRequest struct {
	AccountName   *string          `json:"accountName"`
	DebitBalance  *decimal.Decimal `json:"debitBalance" binding:"omitempty,gte=0"`
	CreditBalance *decimal.Decimal `json:"creditBalance" binding:"omitempty,gte=0"`
	HasDetails    *bool            `json:"hasDetails"`
	Note          *string          `json:"note"`
}

// ListOpeningBalancesParams defines query parameters for listing balances.
type ListOpeningBalancesParams struct {
	PeriodID      string `form:"periodId"`
	CurrencyCode  string `form:"currencyId"`
	AccountNumber string `form:"accountNumber"`
	HasDetails    *bool  `form:"hasDetails"`
	Limit         int    `form:"limit,default=20" binding:"min=1,max=500"`
	Offset        int    `form:"offset,default=0" binding:"min=0"`
}

// ToFilter converts the query parameters into a repository filter.
func (p ListOpeningBalancesParams) ToFilter() domain.BalanceFilter {
	return domain.BalanceFilter{
		PeriodID:      p.PeriodID,
		CurrencyCode:  p.CurrencyCode,
		AccountNumber: p.AccountNumber,
		HasDetails:    p.HasDetails,
		Limit:         p.Limit,
		Offset:        p.Offset,
	}
}

// BatchOpeningBalanceItem is one balance line of a batch import.
type BatchOpeningBalanceItem struct {
	AccountID     *string                     `json:"accountId"`
	AccountNumber string                      `json:"accountNumber"`
	AccountName   string                      `json:"accountName"`
	DebitBalance  decimal.Decimal             `json:"debitBalance"`
	CreditBalance decimal.Decimal             `json:"creditBalance"`
	HasDetails    bool                        `json:"hasDetails"`
	Note          string                      `json:"note"`
	Details       []OpeningBalanceDetailInput `json:"details"`
}

// BatchOpeningBalancesRequest is the batch upsert payload.
// Per-item rule violations are reported per item instead of rejecting the request.
type BatchOpeningBalancesRequest struct {
	PeriodID     string                    `json:"periodId" binding:"required"`
	CurrencyCode string                    `json:"currencyId" binding:"required"`
	Mode         string                    `json:"mode" binding:"omitempty,oneof=fail-fast continue-on-error"`
	Balances     []BatchOpeningBalanceItem `json:"balances" binding:"required,min=1"`
}

// OpeningBalanceResponse defines the data returned for a balance.
type OpeningBalanceResponse struct {
	BalanceID     string                         `json:"balanceId"`
	TenantID      string                         `json:"tenantId"`
	PeriodID      string                         `json:"periodId"`
	CurrencyCode  string                         `json:"currencyId"`
	AccountID     *string                        `json:"accountId,omitempty"`
	AccountNumber string                         `json:"accountNumber"`
	AccountName   string                         `json:"accountName"`
	DebitBalance  decimal.Decimal                `json:"debitBalance"`
	CreditBalance decimal.Decimal                `json:"creditBalance"`
	HasDetails    bool                           `json:"hasDetails"`
	Note          string                         `json:"note"`
	CreatedAt     time.Time                      `json:"createdAt"`
	CreatedBy     string                         `json:"createdBy"`
	LastUpdatedAt time.Time                      `json:"lastUpdatedAt"`
	LastUpdatedBy string                         `json:"lastUpdatedBy"`
	Details       []OpeningBalanceDetailResponse `json:"details,omitempty"`
}

// ToOpeningBalanceResponse converts a domain.OpeningBalance (and any loaded details).
func ToOpeningBalanceResponse(b *domain.OpeningBalance) OpeningBalanceResponse {
	res := OpeningBalanceResponse{
		BalanceID:     b.BalanceID,
		TenantID:      b.TenantID,
		PeriodID:      b.PeriodID,
		CurrencyCode:  b.CurrencyCode,
		AccountID:     b.AccountID,
		AccountNumber: b.AccountNumber,
		AccountName:   b.AccountName,
		DebitBalance:  b.DebitBalance,
		CreditBalance: b.CreditBalance,
		HasDetails:    b.HasDetails,
		Note:          b.Note,
		CreatedAt:     b.CreatedAt,
		CreatedBy:     b.CreatedBy,
		LastUpdatedAt: b.LastUpdatedAt,
		LastUpdatedBy: b.LastUpdatedBy,
	}
	if len(b.Details) > 0 {
		res.Details = ToListOpeningBalanceDetailResponse(b.Details)
	}
	return res
}

// ListOpeningBalancesResponse is one page of balances with pagination metadata.
type ListOpeningBalancesResponse struct {
	Balances []OpeningBalanceResponse `json:"balances"`
	Total    int                      `json:"total"`
	Limit    int                      `json:"limit"`
	Offset   int                      `json:"offset"`
}

// ToListOpeningBalancesResponse builds a page response.
func ToListOpeningBalancesResponse(balances []domain.OpeningBalance, total int, params ListOpeningBalancesParams) ListOpeningBalancesResponse {
	res := ListOpeningBalancesResponse{
		Balances: make([]OpeningBalanceResponse, len(balances)),
		Total:    total,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	for i := range balances {
		res.Balances[i] = ToOpeningBalanceResponse(&balances[i])
	}
	return res
}
