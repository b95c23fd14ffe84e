package mapping

import (
	"github.com/SscSPs/opening_balances/internal/core/domain"
	"github.com/SscSPs/opening_balances/internal/models"
)

// ToModelOpeningBalance converts a domain OpeningBalance to a model OpeningBalance.
// Details are stored separately and are not part of the row.
func ToModelOpeningBalance(d domain.OpeningBalance) models.OpeningBalance {
	return models.OpeningBalance{
		BalanceID:     d.BalanceID,
		TenantID:      d.TenantID,
		PeriodID:      d.PeriodID,
		CurrencyCode:  d.CurrencyCode,
		AccountID:     nullStringPtr(d.AccountID),
		AccountNumber: d.AccountNumber,
		AccountName:   d.AccountName,
		DebitBalance:  d.DebitBalance,
		CreditBalance: d.CreditBalance,
		HasDetails:    d.HasDetails,
		Note:          nullString(d.Note),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOpeningBalance converts a model OpeningBalance to a domain OpeningBalance
func ToDomainOpeningBalance(m models.OpeningBalance) domain.OpeningBalance {
	return domain.OpeningBalance{
		BalanceID:     m.BalanceID,
		TenantID:      m.TenantID,
		PeriodID:      m.PeriodID,
		CurrencyCode:  m.CurrencyCode,
		AccountID:     stringPtr(m.AccountID),
		AccountNumber: m.AccountNumber,
		AccountName:   m.AccountName,
		DebitBalance:  m.DebitBalance,
		CreditBalance: m.CreditBalance,
		HasDetails:    m.HasDetails,
		Note:          m.Note.String,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOpeningBalanceSlice converts a slice of model balances
func ToDomainOpeningBalanceSlice(ms []models.OpeningBalance) []domain.OpeningBalance {
	ds := make([]domain.OpeningBalance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOpeningBalance(m)
	}
	return ds
}
