package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CandidateDocument is a receipt or invoice whose total was extracted by the
// document/OCR collaborator. Read-only input for matching; never mutated here.
type CandidateDocument struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID       uuid.UUID       `gorm:"type:uuid;index" json:"tenant_id"`
	FileName       string          `json:"file_name"`
	ExtractedTotal decimal.Decimal `gorm:"type:decimal(18,2)" json:"extracted_total"`
	CreatedAt      time.Time       `json:"created_at"`
}
