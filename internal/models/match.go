package models

import "github.com/google/uuid"

// TargetType says which side of the books a match candidate points at.
type TargetType string

const (
	TargetLedgerEntry TargetType = "ledger_entry"
	TargetDocument    TargetType = "document"
)

// MatchCandidate is a scored pairing produced during one scoring pass. It is
// never persisted on its own; the interactive mode returns ranked slices of
// these for a human to choose from.
type MatchCandidate struct {
	TargetID     uuid.UUID  `json:"target_id"`
	TargetType   TargetType `json:"target_type"`
	Similarity   float64    `json:"similarity"`
	MatchReasons []string   `json:"match_reasons"`
}

// AppliedMatch is one accepted pairing handed to the write-back step.
type AppliedMatch struct {
	BankTransactionID uuid.UUID  `json:"bank_transaction_id"`
	TargetID          uuid.UUID  `json:"target_id"`
	TargetType        TargetType `json:"target_type"`
	Similarity        float64    `json:"similarity"`
	MatchReasons      []string   `json:"match_reasons"`
}

// MatchDetails is the JSON payload persisted on a reconciled bank
// transaction so the accepted match stays explainable after the run.
type MatchDetails struct {
	TargetID   uuid.UUID  `json:"target_id"`
	TargetType TargetType `json:"target_type"`
	Similarity float64    `json:"similarity"`
	Reasons    []string   `json:"reasons"`
}
