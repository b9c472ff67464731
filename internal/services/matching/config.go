package matching

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Config bounds which candidates are considered for a bank transaction and
// how ranked suggestions are filtered. Two profiles share the pipeline:
// Strict drives the authoritative period report and must not pair
// substantially different amounts; Fuzzy widens the tolerance for
// human-reviewed suggestions.
type Config struct {
	// AmountTolerance is the absolute amount tolerance in currency units.
	AmountTolerance decimal.Decimal `json:"amount_tolerance"`

	// AmountTolerancePercent widens the tolerance to this fraction of the
	// bank amount. Zero keeps the absolute tolerance alone; the effective
	// tolerance is whichever of the two is greater.
	AmountTolerancePercent float64 `json:"amount_tolerance_percent"`

	// DateWindowDays is the maximum day distance between a bank transaction
	// and a candidate.
	DateWindowDays int `json:"date_window_days"`

	// MinSimilarity drops ranked suggestions below this score.
	MinSimilarity float64 `json:"min_similarity"`

	// Workers bounds the scoring fan-out. Values <= 1 keep scoring
	// sequential; assignment is always single-threaded.
	Workers int `json:"workers"`
}

// StrictConfig returns the profile for the authoritative period report.
func StrictConfig() Config {
	return Config{
		AmountTolerance: decimal.NewFromFloat(0.01),
		DateWindowDays:  7,
		MinSimilarity:   0.7,
		Workers:         4,
	}
}

// FuzzyConfig returns the profile for interactive suggestions.
func FuzzyConfig() Config {
	return Config{
		AmountTolerance:        decimal.NewFromFloat(0.01),
		AmountTolerancePercent: 0.05,
		DateWindowDays:         7,
		MinSimilarity:          0.7,
		Workers:                4,
	}
}

// Validate rejects configurations the pipeline cannot honor.
func (c Config) Validate() error {
	if c.AmountTolerance.IsNegative() {
		return fmt.Errorf("amount tolerance cannot be negative: %s", c.AmountTolerance)
	}
	if c.AmountTolerancePercent < 0 || c.AmountTolerancePercent > 1 {
		return fmt.Errorf("amount tolerance percent must be between 0 and 1: %f", c.AmountTolerancePercent)
	}
	if c.DateWindowDays < 0 {
		return fmt.Errorf("date window days cannot be negative: %d", c.DateWindowDays)
	}
	if c.MinSimilarity < 0 || c.MinSimilarity > 1 {
		return fmt.Errorf("min similarity must be between 0 and 1: %f", c.MinSimilarity)
	}
	return nil
}

// toleranceFor is the effective amount tolerance for one bank amount: the
// absolute tolerance or the percent tolerance, whichever is greater.
func (c Config) toleranceFor(amount decimal.Decimal) decimal.Decimal {
	tol := c.AmountTolerance
	if c.AmountTolerancePercent > 0 {
		pct := amount.Abs().Mul(decimal.NewFromFloat(c.AmountTolerancePercent))
		if pct.GreaterThan(tol) {
			tol = pct
		}
	}
	return tol
}
