package mapping

import (
	"github.com/SscSPs/opening_balances/internal/core/domain"
	"github.com/SscSPs/opening_balances/internal/models"
)

// ToModelOpeningPeriod converts a domain OpeningPeriod to a model OpeningPeriod
func ToModelOpeningPeriod(d domain.OpeningPeriod) models.OpeningPeriod {
	return models.OpeningPeriod{
		PeriodID:    d.PeriodID,
		TenantID:    d.TenantID,
		Name:        d.Name,
		OpeningDate: d.OpeningDate,
		Description: nullString(d.Description),
		Locked:      d.Locked,
		LockedAt:    nullTimePtr(d.LockedAt),
		LockedBy:    nullStringPtr(d.LockedBy),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOpeningPeriod converts a model OpeningPeriod to a domain OpeningPeriod
func ToDomainOpeningPeriod(m models.OpeningPeriod) domain.OpeningPeriod {
	return domain.OpeningPeriod{
		PeriodID:    m.PeriodID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		OpeningDate: m.OpeningDate,
		Description: m.Description.String,
		Locked:      m.Locked,
		LockedAt:    timePtr(m.LockedAt),
		LockedBy:    stringPtr(m.LockedBy),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOpeningPeriodSlice converts a slice of model periods
func ToDomainOpeningPeriodSlice(ms []models.OpeningPeriod) []domain.OpeningPeriod {
	ds := make([]domain.OpeningPeriod, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOpeningPeriod(m)
	}
	return ds
}
