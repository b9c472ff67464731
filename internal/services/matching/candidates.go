package matching

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger-reconciliation-backend/internal/models"
)

// Candidate is one matchable target, its amount carried in the bank side's
// sign convention so the scorer compares like with like. Ledger entries are
// sign-normalized through SignedAmount; document totals take the sign of the
// bank transaction they are compared against.
type Candidate struct {
	TargetID    uuid.UUID
	TargetType  models.TargetType
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// CandidatesFor returns the ledger entries and documents within the amount
// tolerance and date window of one bank transaction, ledger entries first.
// It does not know which targets earlier transactions consumed; exclusion
// belongs to the assigner, which keeps generation free of shared state and
// safe to fan out.
func CandidatesFor(tx models.BankTransaction, entries []models.LedgerEntry, docs []models.CandidateDocument, cfg Config) []Candidate {
	tol := cfg.toleranceFor(tx.Amount)
	var out []Candidate

	for _, e := range entries {
		if daysBetween(tx.TransactionDate, e.TransactionDate) > cfg.DateWindowDays {
			continue
		}
		signed := e.SignedAmount()
		if tx.Amount.Sub(signed).Abs().GreaterThanOrEqual(tol) {
			continue
		}
		out = append(out, Candidate{
			TargetID:    e.ID,
			TargetType:  models.TargetLedgerEntry,
			Amount:      signed,
			Date:        e.TransactionDate,
			Description: e.Description,
		})
	}

	for _, d := range docs {
		if daysBetween(tx.TransactionDate, d.CreatedAt) > cfg.DateWindowDays {
			continue
		}
		amt := d.ExtractedTotal
		if tx.Amount.IsNegative() {
			amt = amt.Neg()
		}
		if tx.Amount.Sub(amt).Abs().GreaterThanOrEqual(tol) {
			continue
		}
		out = append(out, Candidate{
			TargetID:    d.ID,
			TargetType:  models.TargetDocument,
			Amount:      amt,
			Date:        d.CreatedAt,
			Description: d.FileName,
		})
	}

	return out
}

// daysBetween is the calendar-day distance between two timestamps. Both are
// truncated to their date so time-of-day noise in imported data never pushes
// a same-day pair out of the window.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(ad.Sub(bd).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}
