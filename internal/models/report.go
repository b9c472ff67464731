package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemStatus is the per-item reconciliation outcome.
type ItemStatus string

const (
	ItemMatched   ItemStatus = "matched"
	ItemUnmatched ItemStatus = "unmatched"
)

// ReconciliationItem covers exactly one record of the window: a bank
// transaction (matched or not) or a ledger entry nobody claimed. Discrepancy
// carries the residual amount difference of a matched pair, or the
// unreconciled amount of an unmatched item.
type ReconciliationItem struct {
	BankTransactionID *uuid.UUID       `json:"bank_transaction_id"`
	LedgerEntryID     *uuid.UUID       `json:"ledger_entry_id"`
	DocumentID        *uuid.UUID       `json:"document_id"`
	Date              time.Time        `json:"date"`
	Amount            decimal.Decimal  `json:"amount"`
	Description       string           `json:"description"`
	Status            ItemStatus       `json:"status"`
	Discrepancy       *decimal.Decimal `json:"discrepancy,omitempty"`
}

// ReportSummary aggregates the run for the filing-readiness layer.
type ReportSummary struct {
	TotalBankTransactions int     `json:"total_bank_transactions"`
	TotalLedgerEntries    int     `json:"total_ledger_entries"`
	MatchRate             float64 `json:"match_rate"`
	Discrepancies         int     `json:"discrepancies"`
}

// ReconciliationReport is the unit of output of a batch run. Built fresh per
// invocation; persisting it is the caller's business (see ReportSnapshot).
type ReconciliationReport struct {
	PeriodStart   time.Time            `json:"period_start"`
	PeriodEnd     time.Time            `json:"period_end"`
	BankBalance   decimal.Decimal      `json:"bank_balance"`
	LedgerBalance decimal.Decimal      `json:"ledger_balance"`
	Difference    decimal.Decimal      `json:"difference"`
	Matched       int                  `json:"matched"`
	Unmatched     int                  `json:"unmatched"`
	Items         []ReconciliationItem `json:"items"`
	Summary       ReportSummary        `json:"summary"`
}

// RecordWindow is everything the repository loads for one tenant and period.
type RecordWindow struct {
	BankTransactions []BankTransaction
	LedgerEntries    []LedgerEntry
	Documents        []CandidateDocument
}
