package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// OpeningBalanceDetail is a row of opening_balance_details.
type OpeningBalanceDetail struct {
	DetailID           string          `db:"detail_id"`
	TenantID           string          `db:"tenant_id"`
	BalanceID          string          `db:"balance_id"`
	AccountObjectID    sql.NullString  `db:"account_object_id"`
	DepartmentID       sql.NullString  `db:"department_id"`
	ExpenseItemID      sql.NullString  `db:"expense_item_id"`
	JobID              sql.NullString  `db:"job_id"`
	ProjectWorkID      sql.NullString  `db:"project_work_id"`
	SaleOrderID        sql.NullString  `db:"sale_order_id"`
	PurchaseOrderID    sql.NullString  `db:"purchase_order_id"`
	SaleContractID     sql.NullString  `db:"sale_contract_id"`
	PurchaseContractID sql.NullString  `db:"purchase_contract_id"`
	ListItemID         sql.NullString  `db:"list_item_id"`
	DebitBalance       decimal.Decimal `db:"debit_balance"`
	CreditBalance      decimal.Decimal `db:"credit_balance"`
	Description        sql.NullString  `db:"description"`
	AuditFields
}
