package dto

import (
	"time"

	"github.com/SscSPs/opening_balances/internal/core/domain"
)

// CreateOpeningPeriodRequest defines the data needed to create a new opening period.
type CreateOpeningPeriodRequest struct {
	Name        string    `json:"name" binding:"required,max=255"`
	OpeningDate time.Time `json:"openingDate" binding:"required"`
	Description string    `json:"description"`
}

// UpdateOpeningPeriodRequest defines the data allowed for updating a period.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateOpeningPeriodRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=255"`
	OpeningDate *time.Time `json:"openingDate"`
	Description *string    `json:"description"`
}

// OpeningPeriodResponse defines the data returned for a period.
type OpeningPeriodResponse struct {
	PeriodID      string     `json:"periodId"`
	TenantID      string     `json:"tenantId"`
	Name          string     `json:"name"`
	OpeningDate   time.Time  `json:"openingDate"`
	Description   string     `json:"description"`
	Locked        bool       `json:"locked"`
	LockedAt      *time.Time `json:"lockedAt,omitempty"`
	LockedBy      *string    `json:"lockedBy,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	CreatedBy     string     `json:"createdBy"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
	LastUpdatedBy string     `json:"lastUpdatedBy"`
}

// ToOpeningPeriodResponse converts a domain.OpeningPeriod to its response DTO.
func ToOpeningPeriodResponse(p *domain.OpeningPeriod) OpeningPeriodResponse {
	return OpeningPeriodResponse{
		PeriodID:      p.PeriodID,
		TenantID:      p.TenantID,
		Name:          p.Name,
		OpeningDate:   p.OpeningDate,
		Description:   p.Description,
		Locked:        p.Locked,
		LockedAt:      p.LockedAt,
		LockedBy:      p.LockedBy,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ToListOpeningPeriodResponse converts a slice of periods.
func ToListOpeningPeriodResponse(periods []domain.OpeningPeriod) []OpeningPeriodResponse {
	res := make([]OpeningPeriodResponse, len(periods))
	for i := range periods {
		res[i] = ToOpeningPeriodResponse(&periods[i])
	}
	return res
}

// ListOpeningPeriodsResponse wraps the list of periods.
type ListOpeningPeriodsResponse struct {
	Periods []OpeningPeriodResponse `json:"periods"`
}
