package mapping

import (
	"github.com/SscSPs/opening_balances/internal/core/domain"
	"github.com/SscSPs/opening_balances/internal/models"
)

// ToModelOpeningBalanceDetail converts a domain detail to its row
func ToModelOpeningBalanceDetail(d domain.OpeningBalanceDetail) models.OpeningBalanceDetail {
	return models.OpeningBalanceDetail{
		DetailID:           d.DetailID,
		TenantID:           d.TenantID,
		BalanceID:          d.BalanceID,
		AccountObjectID:    nullStringPtr(d.AccountObjectID),
		DepartmentID:       nullStringPtr(d.DepartmentID),
		ExpenseItemID:      nullStringPtr(d.ExpenseItemID),
		JobID:              nullStringPtr(d.JobID),
		ProjectWorkID:      nullStringPtr(d.ProjectWorkID),
		SaleOrderID:        nullStringPtr(d.SaleOrderID),
		PurchaseOrderID:    nullStringPtr(d.PurchaseOrderID),
		SaleContractID:     nullStringPtr(d.SaleContractID),
		PurchaseContractID: nullStringPtr(d.PurchaseContractID),
		ListItemID:         nullStringPtr(d.ListItemID),
		DebitBalance:       d.DebitBalance,
		CreditBalance:      d.CreditBalance,
		Description:        nullString(d.Description),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOpeningBalanceDetail converts a detail row to the domain type
func ToDomainOpeningBalanceDetail(m models.OpeningBalanceDetail) domain.OpeningBalanceDetail {
	return domain.OpeningBalanceDetail{
		DetailID:  m.DetailID,
		TenantID:  m.TenantID,
		BalanceID: m.BalanceID,
		DetailDimensions: domain.DetailDimensions{
			AccountObjectID:    stringPtr(m.AccountObjectID),
			DepartmentID:       stringPtr(m.DepartmentID),
			ExpenseItemID:      stringPtr(m.ExpenseItemID),
			JobID:              stringPtr(m.JobID),
			ProjectWorkID:      stringPtr(m.ProjectWorkID),
			SaleOrderID:        stringPtr(m.SaleOrderID),
			PurchaseOrderID:    stringPtr(m.PurchaseOrderID),
			SaleContractID:     stringPtr(m.SaleContractID),
			PurchaseContractID: stringPtr(m.PurchaseContractID),
			ListItemID:         stringPtr(m.ListItemID),
		},
		DebitBalance:  m.DebitBalance,
		CreditBalance: m.CreditBalance,
		Description:   m.Description.String,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOpeningBalanceDetailSlice converts a slice of detail rows
func ToDomainOpeningBalanceDetailSlice(ms []models.OpeningBalanceDetail) []domain.OpeningBalanceDetail {
	ds := make([]domain.OpeningBalanceDetail, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOpeningBalanceDetail(m)
	}
	return ds
}

// ToDomainChartAccount converts a chart_of_accounts row
func ToDomainChartAccount(m models.ChartAccount) domain.ChartAccount {
	return domain.ChartAccount{
		RegimeCode:    m.RegimeCode,
		AccountNumber: m.AccountNumber,
		AccountName:   m.AccountName,
	}
}
