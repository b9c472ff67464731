package models

import (
	"time"

	"github.com/google/uuid"
)

// Import batch kinds and statuses.
const (
	ImportKindBankTransactions = "bank_transactions"
	ImportKindLedgerEntries    = "ledger_entries"

	ImportStatusProcessing = "processing"
	ImportStatusCompleted  = "completed"
	ImportStatusFailed     = "failed"
)

// ImportBatch tracks one background CSV ingest of collaborator records.
type ImportBatch struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID       uuid.UUID  `gorm:"type:uuid;index" json:"tenant_id"`
	Filename       string     `json:"filename"`
	Kind           string     `gorm:"index" json:"kind"`
	TotalRows      int        `json:"total_rows"`
	ProcessedCount int        `json:"processed_count"`
	SkippedCount   int        `json:"skipped_count"`
	Status         string     `gorm:"index" json:"status"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`
}
