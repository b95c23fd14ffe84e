package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// OpeningBalance is a row of opening_balances.
type OpeningBalance struct {
	BalanceID     string          `db:"balance_id"`
	TenantID      string          `db:"tenant_id"`
	PeriodID      string          `db:"period_id"`
	CurrencyCode  string          `db:"currency_code"`
	AccountID     sql.NullString  `db:"account_id"`
	AccountNumber string          `db:"account_number"`
	AccountName   string          `db:"account_name"`
	DebitBalance  decimal.Decimal `db:"debit_balance"`
	CreditBalance decimal.Decimal `db:"credit_balance"`
	HasDetails    bool            `db:"has_details"`
	Note          sql.NullString  `db:"note"`
	AuditFields
}
