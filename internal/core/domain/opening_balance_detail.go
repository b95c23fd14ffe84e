package domain

import "github.com/shopspring/decimal"

// DetailDimensions are the optional, mutually independent tags a detail row may carry.
type DetailDimensions struct {
	AccountObjectID    *string `json:"accountObjectID,omitempty"` // customer / vendor / employee
	DepartmentID       *string `json:"departmentID,omitempty"`
	ExpenseItemID      *string `json:"expenseItemID,omitempty"`
	JobID              *string `json:"jobID,omitempty"` // cost object
	ProjectWorkID      *string `json:"projectWorkID,omitempty"`
	SaleOrderID        *string `json:"saleOrderID,omitempty"`
	PurchaseOrderID    *string `json:"purchaseOrderID,omitempty"`
	SaleContractID     *string `json:"saleContractID,omitempty"`
	PurchaseContractID *string `json:"purchaseContractID,omitempty"`
	ListItemID         *string `json:"listItemID,omitempty"` // statistical code
}

// OpeningBalanceDetail is a per-dimension breakdown of one OpeningBalance.
type OpeningBalanceDetail struct {
	DetailID  string `json:"detailID"`
	TenantID  string `json:"tenantID"`
	BalanceID string `json:"balanceID"`
	DetailDimensions
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	Description   string          `json:"description"`
	AuditFields
}

// UpsertKey returns the counterparty identifier used to match existing rows in a batch,
// and false when the row has none (and therefore always creates a new detail).
func (d OpeningBalanceDetail) UpsertKey() (string, bool) {
	if d.AccountObjectID == nil || *d.AccountObjectID == "" {
		return "", false
	}
	return *d.AccountObjectID, true
}
