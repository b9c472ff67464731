package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReportSnapshot is an immutable audit copy of a generated report, keyed by
// tenant, period and generation time. Snapshots are append-only: the
// repository exposes create and read, never update or delete.
type ReportSnapshot struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID    uuid.UUID      `gorm:"type:uuid;index:idx_report_snapshots_period" json:"tenant_id"`
	AccountID   *uuid.UUID     `gorm:"type:uuid" json:"account_id"`
	PeriodStart time.Time      `gorm:"index:idx_report_snapshots_period" json:"period_start"`
	PeriodEnd   time.Time      `gorm:"index:idx_report_snapshots_period" json:"period_end"`
	GeneratedAt time.Time      `json:"generated_at"`
	Report      datatypes.JSON `json:"report"`
	CreatedAt   time.Time      `json:"created_at"`
}
