package reconciliation

import (
	"github.com/shopspring/decimal"

	"ledger-reconciliation-backend/internal/models"
)

// totals holds the balance aggregates of one pass.
type totals struct {
	bankBalance   decimal.Decimal
	ledgerBalance decimal.Decimal
	difference    decimal.Decimal
}

// aggregate sums the whole window, matched or not. The bank balance adds
// signed bank amounts, the ledger balance adds sign-normalized entry
// amounts, and the difference is the absolute gap between the two.
func aggregate(window *models.RecordWindow) totals {
	bank := decimal.Zero
	for _, tx := range window.BankTransactions {
		bank = bank.Add(tx.Amount)
	}
	ledger := decimal.Zero
	for _, e := range window.LedgerEntries {
		ledger = ledger.Add(e.SignedAmount())
	}
	return totals{
		bankBalance:   bank,
		ledgerBalance: ledger,
		difference:    bank.Sub(ledger).Abs(),
	}
}

// matchRate is matched bank transactions over all bank transactions in the
// window, zero when the window holds none.
func matchRate(matchedBank, totalBank int) float64 {
	if totalBank == 0 {
		return 0
	}
	return float64(matchedBank) / float64(totalBank)
}
