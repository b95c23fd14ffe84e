package dto

import (
	"time"

	"github.com/SscSPs/opening_balances/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DetailDimensionsInput carries the optional dimension tags of a detail row.
type DetailDimensionsInput struct {
	AccountObjectID    *string `json:"accountObjectId"`
	DepartmentID       *string `json:"departmentId"`
	ExpenseItemID      *string `json:"expenseItemId"`
	JobID              *string `json:"jobId"`
	ProjectWorkID      *string `json:"projectWorkId"`
	SaleOrderID        *string `json:"saleOrderId"`
	PurchaseOrderID    *string `json:"purchaseOrderId"`
	SaleContractID     *string `json:"saleContractId"`
	PurchaseContractID *string `json:"purchaseContractId"`
	ListItemID         *string `json:"listItemId"`
}

// ToDomain copies the tags into domain dimensions.
func (d DetailDimensionsInput) ToDomain() domain.DetailDimensions {
	return domain.DetailDimensions{
		AccountObjectID:    d.AccountObjectID,
		DepartmentID:       d.DepartmentID,
		ExpenseItemID:      d.ExpenseItemID,
		JobID:              d.JobID,
		ProjectWorkID:      d.ProjectWorkID,
		SaleOrderID:        d.SaleOrderID,
		PurchaseOrderID:    d.PurchaseOrderID,
		SaleContractID:     d.SaleContractID,
		PurchaseContractID: d.PurchaseContractID,
		ListItemID:         d.ListItemID,
	}
}

// OpeningBalanceDetailInput is a detail row as submitted on create and inside batches.
type OpeningBalanceDetailInput struct {
	DetailDimensionsInput
	DebitBalance  decimal.Decimal `json:"debitBalance" binding:"gte=0"`
	CreditBalance decimal.Decimal `json:"creditBalance" binding:"gte=0"`
	Description   string          `json:"description"`
}

// UpdateOpeningBalanceDetailRequest patches a detail row. Dimension tags replace the stored
// tags only when provided.
type UpdateOpeningBalanceDetailRequest struct {
	Dimensions    *DetailDimensionsInput `json:"dimensions"`
	DebitBalance  *decimal.Decimal       `json:"debitBalance" binding:"omitempty,gte=0"`
	CreditBalance *decimal.Decimal       `json:"creditBalance" binding:"omitempty,gte=0"`
	Description   *string                `json:"description"`
}

// BatchOpeningBalanceDetailsRequest creates or updates many details of one balance.
type BatchOpeningBalanceDetailsRequest struct {
	Mode    string                      `json:"mode" binding:"omitempty,oneof=fail-fast continue-on-error"`
	Details []OpeningBalanceDetailInput `json:"details" binding:"required,min=1"`
}

// OpeningBalanceDetailResponse defines the data returned for a detail row.
type OpeningBalanceDetailResponse struct {
	DetailID           string          `json:"detailId"`
	TenantID           string          `json:"tenantId"`
	BalanceID          string          `json:"balanceId"`
	AccountObjectID    *string         `json:"accountObjectId,omitempty"`
	DepartmentID       *string         `json:"departmentId,omitempty"`
	ExpenseItemID      *string         `json:"expenseItemId,omitempty"`
	JobID              *string         `json:"jobId,omitempty"`
	ProjectWorkID      *string         `json:"projectWorkId,omitempty"`
	SaleOrderID        *string         `json:"saleOrderId,omitempty"`
	PurchaseOrderID    *string         `json:"purchaseOrderId,omitempty"`
	SaleContractID     *string         `json:"saleContractId,omitempty"`
	PurchaseContractID *string         `json:"purchaseContractId,omitempty"`
	ListItemID         *string         `json:"listItemId,omitempty"`
	DebitBalance       decimal.Decimal `json:"debitBalance"`
	CreditBalance      decimal.Decimal `json:"creditBalance"`
	Description        string          `json:"description"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy      string          `json:"lastUpdatedBy"`
}

// ToOpeningBalanceDetailResponse converts a domain.OpeningBalanceDetail.
func ToOpeningBalanceDetailResponse(d *domain.OpeningBalanceDetail) OpeningBalanceDetailResponse {
	return OpeningBalanceDetailResponse{
		DetailID:           d.DetailID,
		TenantID:           d.TenantID,
		BalanceID:          d.BalanceID,
		AccountObjectID:    d.AccountObjectID,
		DepartmentID:       d.DepartmentID,
		ExpenseItemID:      d.ExpenseItemID,
		JobID:              d.JobID,
		ProjectWorkID:      d.ProjectWorkID,
		SaleOrderID:        d.SaleOrderID,
		PurchaseOrderID:    d.PurchaseOrderID,
		SaleContractID:     d.SaleContractID,
		PurchaseContractID: d.PurchaseContractID,
		ListItemID:         d.ListItemID,
		DebitBalance:       d.DebitBalance,
		CreditBalance:      d.CreditBalance,
		Description:        d.Description,
		CreatedAt:          d.CreatedAt,
		CreatedBy:          d.CreatedBy,
		LastUpdatedAt:      d.LastUpdatedAt,
		LastUpdatedBy:      d.LastUpdatedBy,
	}
}

// ToListOpeningBalanceDetailResponse converts a slice of details.
func ToListOpeningBalanceDetailResponse(details []domain.OpeningBalanceDetail) []OpeningBalanceDetailResponse {
	res := make([]OpeningBalanceDetailResponse, len(details))
	for i := range details {
		res[i] = ToOpeningBalanceDetailResponse(&details[i])
	}
	return res
}

// ListOpeningBalanceDetailsResponse wraps the details of one balance.
type ListOpeningBalanceDetailsResponse struct {
	Details []OpeningBalanceDetailResponse `json:"details"`
}
