package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType is the posting direction of a ledger entry.
type EntryType string

const (
	EntryDebit  EntryType = "debit"
	EntryCredit EntryType = "credit"
)

// LedgerEntry is an internally posted entry owned by the ledger-posting
// collaborator. Amount is unsigned; direction lives in EntryType. The engine
// reads entries and flips Reconciled, nothing else.
type LedgerEntry struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID        uuid.UUID       `gorm:"type:uuid;index:idx_ledger_entries_window" json:"tenant_id"`
	AccountCode     string          `gorm:"index" json:"account_code"`
	TransactionDate time.Time       `gorm:"index:idx_ledger_entries_window" json:"transaction_date"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	EntryType       EntryType       `gorm:"size:6" json:"entry_type"`
	Description     string          `json:"description"`
	DocumentID      *uuid.UUID      `gorm:"type:uuid" json:"document_id"`
	Reconciled      bool            `gorm:"index" json:"reconciled"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SignedAmount maps the unsigned amount onto the bank account's sign
// convention: debits add to the bank balance, credits subtract. Every
// comparison against a signed bank amount goes through this one function.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.EntryType == EntryCredit {
		return e.Amount.Neg()
	}
	return e.Amount
}
