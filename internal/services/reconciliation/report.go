package reconciliation

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger-reconciliation-backend/internal/models"
)

// matchedRecord ties one bank transaction to the target it reconciled
// against, whether decided this run or by an earlier one. residual is the
// absolute amount difference inside tolerance.
type matchedRecord struct {
	tx         models.BankTransaction
	targetID   uuid.UUID
	targetType models.TargetType
	residual   decimal.Decimal
}

// buildReport assembles the report for one window. Items cover every bank
// transaction and every ledger entry of the window exactly once and sort by
// date with total-order tie-breaks, so two runs over the same window render
// byte-identical reports.
func buildReport(window *models.RecordWindow, periodStart, periodEnd time.Time, matched []matchedRecord, elsewhere []models.LedgerEntry, unmatchedTxs []models.BankTransaction, unmatchedEntries []models.LedgerEntry) models.ReconciliationReport {
	items := make([]models.ReconciliationItem, 0, len(matched)+len(elsewhere)+len(unmatchedTxs)+len(unmatchedEntries))

	for _, m := range matched {
		tx := m.tx
		item := models.ReconciliationItem{
			BankTransactionID: &tx.ID,
			Date:              tx.TransactionDate,
			Amount:            tx.Amount,
			Description:       tx.Description,
			Status:            models.ItemMatched,
		}
		target := m.targetID
		switch m.targetType {
		case models.TargetDocument:
			item.DocumentID = &target
		default:
			item.LedgerEntryID = &target
		}
		if !m.residual.IsZero() {
			residual := m.residual
			item.Discrepancy = &residual
		}
		items = append(items, item)
	}

	// Entries flagged reconciled whose bank transaction falls outside this
	// window still belong to the item list once.
	for _, e := range elsewhere {
		entry := e
		items = append(items, models.ReconciliationItem{
			LedgerEntryID: &entry.ID,
			Date:          entry.TransactionDate,
			Amount:        entry.SignedAmount(),
			Description:   entry.Description,
			Status:        models.ItemMatched,
		})
	}

	for _, tx := range unmatchedTxs {
		t := tx
		unexplained := t.Amount
		items = append(items, models.ReconciliationItem{
			BankTransactionID: &t.ID,
			Date:              t.TransactionDate,
			Amount:            t.Amount,
			Description:       t.Description,
			Status:            models.ItemUnmatched,
			Discrepancy:       &unexplained,
		})
	}

	for _, e := range unmatchedEntries {
		entry := e
		signed := entry.SignedAmount()
		items = append(items, models.ReconciliationItem{
			LedgerEntryID: &entry.ID,
			Date:          entry.TransactionDate,
			Amount:        signed,
			Description:   entry.Description,
			Status:        models.ItemUnmatched,
			Discrepancy:   &signed,
		})
	}

	sortItems(items)

	t := aggregate(window)
	unmatchedCount := len(unmatchedTxs) + len(unmatchedEntries)

	return models.ReconciliationReport{
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		BankBalance:   t.bankBalance,
		LedgerBalance: t.ledgerBalance,
		Difference:    t.difference,
		Matched:       len(matched) + len(elsewhere),
		Unmatched:     unmatchedCount,
		Items:         items,
		Summary: models.ReportSummary{
			TotalBankTransactions: len(window.BankTransactions),
			TotalLedgerEntries:    len(window.LedgerEntries),
			MatchRate:             matchRate(len(matched), len(window.BankTransactions)),
			Discrepancies:         unmatchedCount,
		},
	}
}

// sortItems orders by date, then matched before unmatched, then bank side
// before ledger side, then primary id. The ordering is total, which is what
// makes repeated runs reproducible down to the serialized bytes.
func sortItems(items []models.ReconciliationItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Status != b.Status {
			return a.Status == models.ItemMatched
		}
		ak, bk := itemKindRank(a), itemKindRank(b)
		if ak != bk {
			return ak < bk
		}
		return itemKey(a) < itemKey(b)
	})
}

func itemKindRank(it models.ReconciliationItem) int {
	if it.BankTransactionID != nil {
		return 0
	}
	return 1
}

func itemKey(it models.ReconciliationItem) string {
	switch {
	case it.BankTransactionID != nil:
		return it.BankTransactionID.String()
	case it.LedgerEntryID != nil:
		return it.LedgerEntryID.String()
	case it.DocumentID != nil:
		return it.DocumentID.String()
	}
	return ""
}
