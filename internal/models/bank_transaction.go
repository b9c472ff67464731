package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// BankTransaction is one normalized statement row delivered by the bank-feed
// collaborator. Amount is signed (money in positive, money out negative).
// The engine only ever flips Reconciled/ReconciledWith and attaches
// MatchDetails; rows are never deleted here.
type BankTransaction struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID              uuid.UUID       `gorm:"type:uuid;index:idx_bank_txns_window" json:"tenant_id"`
	AccountID             uuid.UUID       `gorm:"type:uuid;index" json:"account_id"`
	ExternalTransactionID string          `gorm:"index" json:"external_transaction_id"`
	TransactionDate       time.Time       `gorm:"index:idx_bank_txns_window" json:"transaction_date"`
	Amount                decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Currency              string          `gorm:"size:3" json:"currency"`
	Description           string          `json:"description"`
	Reconciled            bool            `gorm:"index" json:"reconciled"`
	ReconciledWith        *uuid.UUID      `gorm:"type:uuid" json:"reconciled_with"`
	MatchDetails          datatypes.JSON  `json:"match_details,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}
