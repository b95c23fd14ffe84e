package models

import (
	"database/sql"
	"time"
)

// OpeningPeriod is a row of opening_periods.
type OpeningPeriod struct {
	PeriodID    string         `db:"period_id"`
	TenantID    string         `db:"tenant_id"`
	Name        string         `db:"name"`
	OpeningDate time.Time      `db:"opening_date"`
	Description sql.NullString `db:"description"`
	Locked      bool           `db:"locked"`
	LockedAt    sql.NullTime   `db:"locked_at"`
	LockedBy    sql.NullString `db:"locked_by"`
	AuditFields
}
