package domain

import "time"

// OpeningPeriod is a named opening-balance declaration window for a tenant.
// While Locked is true no balance or detail of the period may change.
type OpeningPeriod struct {
	PeriodID    string     `json:"periodID"`    // Primary Key (UUID)
	TenantID    string     `json:"tenantID"`    // Owning tenant
	Name        string     `json:"name"`        // Unique per tenant
	OpeningDate time.Time  `json:"openingDate"` // Date the opening snapshot applies to
	Description string     `json:"description"` // Nullable free text
	Locked      bool       `json:"locked"`
	LockedAt    *time.Time `json:"lockedAt,omitempty"`
	LockedBy    *string    `json:"lockedBy,omitempty"`
	AuditFields
}

// Lock marks the period immutable.
func (p *OpeningPeriod) Lock(userID string, now time.Time) {
	p.Locked = true
	p.LockedAt = &now
	p.LockedBy = &userID
	p.Touch(userID, now)
}

// Unlock clears the lock guard.
func (p *OpeningPeriod) Unlock(userID string, now time.Time) {
	p.Locked = false
	p.LockedAt = nil
	p.LockedBy = nil
	p.Touch(userID, now)
}
