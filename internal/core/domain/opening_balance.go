package domain

import "github.com/shopspring/decimal"

// OpeningBalance is the declared debit/credit position of one account, in one currency, for one period.
// Identity is (TenantID, PeriodID, AccountNumber, CurrencyCode).
type OpeningBalance struct {
	BalanceID     string          `json:"balanceID"`
	TenantID      string          `json:"tenantID"`
	PeriodID      string          `json:"periodID"`
	CurrencyCode  string          `json:"currencyCode"`
	AccountID     *string         `json:"accountID,omitempty"` // Optional internal reference
	AccountNumber string          `json:"accountNumber"`       // Business key
	AccountName   string          `json:"accountName"`         // Denormalized display value
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	HasDetails    bool            `json:"hasDetails"`
	Note          string          `json:"note"`
	AuditFields
	Details []OpeningBalanceDetail `json:"details,omitempty"` // Loaded on demand
}

// BalanceFilter narrows a balance listing.
type BalanceFilter struct {
	PeriodID      string
	CurrencyCode  string
	AccountNumber string // case-insensitive substring
	HasDetails    *bool
	Limit         int
	Offset        int
}
