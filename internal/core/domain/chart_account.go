package domain

// DefaultAccountRegime is the chart-of-accounts regime used for name resolution.
const DefaultAccountRegime = "200"

// ChartAccount is a canonical chart-of-accounts entry.
type ChartAccount struct {
	RegimeCode    string `json:"regimeCode"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}
