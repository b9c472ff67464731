package matching

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"ledger-reconciliation-backend/internal/models"
)

// Sub-score weights. They sum to 1.0 and every sub-score stays in [0,1], so
// the combined similarity is bounded the same way.
const (
	amountWeight      = 0.5
	descriptionWeight = 0.3
	dateWeight        = 0.2
)

var (
	exactAmountEpsilon = decimal.NewFromFloat(0.01)
	onePercent         = decimal.NewFromFloat(0.01)
	fivePercent        = decimal.NewFromFloat(0.05)
)

// Score is one scored pairing with the human-readable reasons that justify
// it. Reasons travel into audit logs and suggestion payloads, so they are
// written for the accountant reviewing the match, not for the engine.
type Score struct {
	Similarity float64  `json:"similarity"`
	Reasons    []string `json:"reasons"`
}

// ScorePair rates how likely one bank transaction and one candidate describe
// the same economic event. Candidate amounts arrive already normalized to
// the bank side's sign convention.
func ScorePair(tx models.BankTransaction, cand Candidate) Score {
	amountScore, amountReason := scoreAmount(tx.Amount, cand.Amount)
	dateScore, dateReason := scoreDate(tx.TransactionDate, cand.Date)
	descScore, descReason := scoreDescription(tx.Description, cand.Description)

	similarity := amountWeight*amountScore + descriptionWeight*descScore + dateWeight*dateScore

	reasons := make([]string, 0, 4)
	if amountReason != "" {
		reasons = append(reasons, amountReason)
	}
	if dateReason != "" {
		reasons = append(reasons, dateReason)
	}
	if descReason != "" {
		reasons = append(reasons, descReason)
	}
	switch {
	case similarity >= 0.8:
		reasons = append(reasons, "High overall match confidence")
	case similarity >= 0.7:
		reasons = append(reasons, "Borderline match confidence")
	}

	return Score{Similarity: similarity, Reasons: reasons}
}

func scoreAmount(bank, cand decimal.Decimal) (float64, string) {
	diff := bank.Sub(cand).Abs()
	if diff.LessThan(exactAmountEpsilon) {
		return 1.0, "Exact amount match"
	}
	abs := bank.Abs()
	if diff.LessThan(abs.Mul(onePercent)) {
		return 0.9, "Amount within 1%"
	}
	if diff.LessThan(abs.Mul(fivePercent)) {
		return 0.7, "Amount within 5%"
	}
	return 0.3, ""
}

func scoreDate(bank, cand time.Time) (float64, string) {
	switch days := daysBetween(bank, cand); {
	case days == 0:
		return 1.0, "Same date"
	case days <= 1:
		return 0.9, "Dates within 1 day"
	case days <= 3:
		return 0.7, "Dates within 3 days"
	case days <= 7:
		return 0.5, "Dates within 7 days"
	default:
		return 0.2, ""
	}
}

func scoreDescription(a, b string) (float64, string) {
	ratio := descriptionSimilarity(a, b)
	switch {
	case ratio > 0.8:
		return ratio, "Description similarity > 80%"
	case ratio > 0.5:
		return ratio, "Similar descriptions"
	default:
		return ratio, ""
	}
}

// descriptionSimilarity is the normalized Levenshtein ratio between the
// lower-cased descriptions: 1 - distance/max(len). Two empty descriptions
// count as a perfect textual match so sparse feeds are not penalized on a
// field neither side supplied.
func descriptionSimilarity(a, b string) float64 {
	ar := []rune(strings.ToLower(strings.TrimSpace(a)))
	br := []rune(strings.ToLower(strings.TrimSpace(b)))
	if len(ar) == 0 && len(br) == 0 {
		return 1.0
	}
	longest := len(ar)
	if len(br) > longest {
		longest = len(br)
	}
	dist := levenshtein.DistanceForStrings(ar, br, levenshtein.DefaultOptions)
	return 1.0 - float64(dist)/float64(longest)
}
