package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit log actions.
const (
	AuditActionMatched       = "matched"
	AuditActionManualMatch   = "manual_match"
	AuditActionManualUnmatch = "manual_unmatch"
)

// MatchAuditLog records every change to a bank transaction's reconciliation
// state, whether decided by the engine or by a reviewer.
type MatchAuditLog struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID          uuid.UUID  `gorm:"type:uuid;index" json:"tenant_id"`
	BankTransactionID uuid.UUID  `gorm:"type:uuid;index" json:"bank_transaction_id"`
	Action            string     `json:"action"`
	TargetType        TargetType `json:"target_type"`
	PreviousTarget    *uuid.UUID `gorm:"type:uuid" json:"previous_target"`
	NewTarget         *uuid.UUID `gorm:"type:uuid" json:"new_target"`
	Similarity        float64    `json:"similarity"`
	PerformedBy       string     `json:"performed_by"`
	Reason            string     `json:"reason"`
	CreatedAt         time.Time  `json:"created_at"`
}
