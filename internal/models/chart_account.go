package models

// ChartAccount is a row of chart_of_accounts.
type ChartAccount struct {
	RegimeCode    string `db:"regime_code"`
	AccountNumber string `db:"account_number"`
	AccountName   string `db:"account_name"`
}
