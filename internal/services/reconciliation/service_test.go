package reconciliation_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ledger-reconciliation-backend/internal/models"
	"ledger-reconciliation-backend/internal/services/reconciliation"
	mock_reconciliation "ledger-reconciliation-backend/internal/services/reconciliation/mocks"
)

func newTestService(t *testing.T) (*reconciliation.Service, *mock_reconciliation.MockRecordSource, *mock_reconciliation.MockSnapshotStore, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	records := mock_reconciliation.NewMockRecordSource(ctrl)
	snapshots := mock_reconciliation.NewMockSnapshotStore(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return reconciliation.NewService(records, snapshots, logger), records, snapshots, ctrl
}

func amt(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestRunCleanWindow(t *testing.T) {
	svc, records, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	txs := []models.BankTransaction{
		{ID: uuid.New(), TenantID: tenant, TransactionDate: day(1), Amount: amt(t, "1200.00"), Description: "Invoice 1042 payment"},
		{ID: uuid.New(), TenantID: tenant, TransactionDate: day(5), Amount: amt(t, "-842.50"), Description: "Office rent"},
		{ID: uuid.New(), TenantID: tenant, TransactionDate: day(12), Amount: amt(t, "98.75"), Description: "Courier refund"},
	}
	entries := []models.LedgerEntry{
		{ID: uuid.New(), TenantID: tenant, TransactionDate: day(1), Amount: amt(t, "1200.00"), EntryType: models.EntryDebit, Description: "Invoice 1042 payment"},
		{ID: uuid.New(), TenantID: tenant, TransactionDate: day(5), Amount: amt(t, "842.50"), EntryType: models.EntryCredit, Description: "Office rent"},
		{ID: uuid.New(), TenantID: tenant, TransactionDate: day(12), Amount: amt(t, "98.75"), EntryType: models.EntryDebit, Description: "Courier refund"},
	}

	records.EXPECT().
		LoadWindow(gomock.Any(), tenant, gomock.Nil(), day(1), day(31)).
		Return(&models.RecordWindow{BankTransactions: txs, LedgerEntries: entries}, nil)

	report, err := svc.Run(context.Background(), reconciliation.RunRequest{
		TenantID:    tenant,
		PeriodStart: day(1),
		PeriodEnd:   day(31),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, report.Matched)
	assert.Equal(t, 0, report.Unmatched)
	assert.True(t, report.Difference.IsZero(), "difference %s", report.Difference)
	assert.True(t, report.BankBalance.Equal(amt(t, "456.25")))
	assert.True(t, report.LedgerBalance.Equal(amt(t, "456.25")))
	assert.InDelta(t, 1.0, report.Summary.MatchRate, 1e-9)
	assert.Equal(t, 3, report.Summary.TotalBankTransactions)
	assert.Equal(t, 3, report.Summary.TotalLedgerEntries)
	assert.Equal(t, 0, report.Summary.Discrepancies)

	require.Len(t, report.Items, 3)
	for _, item := range report.Items {
		assert.Equal(t, models.ItemMatched, item.Status)
		assert.NotNil(t, item.BankTransactionID)
		assert.NotNil(t, item.LedgerEntryID)
		assert.Nil(t, item.Discrepancy)
	}
}

func TestRunPartialMatch(t *testing.T) {
	svc, records, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	txs := []models.BankTransaction{
		{ID: uuid.New(), TenantID: tenant, TransactionDate: day(1), Amount: amt(t, "100.00"), Description: "Consulting"},
		{ID: uuid.New(), TenantID: tenant, TransactionDate: day(2), Amount: amt(t, "50.00"), Description: "Bank fee"},
	}
	entries := []models.LedgerEntry{
		{ID: uuid.New(), TenantID: tenant, TransactionDate: day(1), Amount: amt(t, "100.00"), EntryType: models.EntryDebit, Description: "Consulting"},
		{ID: uuid.New(), TenantID: tenant, TransactionDate: day(20), Amount: amt(t, "75.00"), EntryType: models.EntryCredit, Description: "Software subscription"},
	}

	records.EXPECT().
		LoadWindow(gomock.Any(), tenant, gomock.Nil(), day(1), day(31)).
		Return(&models.RecordWindow{BankTransactions: txs, LedgerEntries: entries}, nil)

	report, err := svc.Run(context.Background(), reconciliation.RunRequest{
		TenantID:    tenant,
		PeriodStart: day(1),
		PeriodEnd:   day(31),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Matched)
	assert.Equal(t, 2, report.Unmatched)
	assert.True(t, report.Difference.Equal(amt(t, "125.00")), "difference %s", report.Difference)
	assert.InDelta(t, 0.5, report.Summary.MatchRate, 1e-9)
	assert.Equal(t, 2, report.Summary.Discrepancies)

	require.Len(t, report.Items, 3)
	assert.Equal(t, models.ItemMatched, report.Items[0].Status)

	fee := report.Items[1]
	assert.Equal(t, models.ItemUnmatched, fee.Status)
	require.NotNil(t, fee.Discrepancy)
	assert.True(t, fee.Discrepancy.Equal(amt(t, "50.00")))

	subscription := report.Items[2]
	assert.Equal(t, models.ItemUnmatched, subscription.Status)
	assert.Nil(t, subscription.BankTransactionID)
	require.NotNil(t, subscription.Discrepancy)
	assert.True(t, subscription.Discrepancy.Equal(amt(t, "-75.00")))
}

func TestRunAppliesMatches(t *testing.T) {
	svc, records, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	tx := models.BankTransaction{ID: uuid.New(), TenantID: tenant, TransactionDate: day(4), Amount: amt(t, "310.40"), Description: "Hardware order"}
	entry := models.LedgerEntry{ID: uuid.New(), TenantID: tenant, TransactionDate: day(4), Amount: amt(t, "310.40"), EntryType: models.EntryDebit, Description: "Hardware order"}

	records.EXPECT().
		LoadWindow(gomock.Any(), tenant, gomock.Nil(), day(1), day(31)).
		Return(&models.RecordWindow{
			BankTransactions: []models.BankTransaction{tx},
			LedgerEntries:    []models.LedgerEntry{entry},
		}, nil)

	var captured []models.AppliedMatch
	records.EXPECT().
		ApplyMatches(gomock.Any(), tenant, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, applied []models.AppliedMatch) error {
			captured = applied
			return nil
		})

	_, err := svc.Run(context.Background(), reconciliation.RunRequest{
		TenantID:    tenant,
		PeriodStart: day(1),
		PeriodEnd:   day(31),
		Apply:       true,
	})

	require.NoError(t, err)
	require.Len(t, captured, 1)
	assert.Equal(t, tx.ID, captured[0].BankTransactionID)
	assert.Equal(t, entry.ID, captured[0].TargetID)
	assert.Equal(t, models.TargetLedgerEntry, captured[0].TargetType)
	assert.InDelta(t, 1.0, captured[0].Similarity, 1e-9)
	assert.Contains(t, captured[0].MatchReasons, "Exact amount match")
}

func TestRunRejectsInvalidWindow(t *testing.T) {
	svc, _, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	cases := []struct {
		name string
		req  reconciliation.RunRequest
	}{
		{"missing tenant", reconciliation.RunRequest{PeriodStart: day(1), PeriodEnd: day(31)}},
		{"missing bounds", reconciliation.RunRequest{TenantID: uuid.New()}},
		{"inverted bounds", reconciliation.RunRequest{TenantID: uuid.New(), PeriodStart: day(31), PeriodEnd: day(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Run(context.Background(), tc.req)
			assert.ErrorIs(t, err, reconciliation.ErrInvalidWindow)
		})
	}
}

func TestRunPropagatesLoadError(t *testing.T) {
	svc, records, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	dbErr := errors.New("connection reset")
	records.EXPECT().
		LoadWindow(gomock.Any(), tenant, gomock.Nil(), day(1), day(31)).
		Return(nil, dbErr)

	_, err := svc.Run(context.Background(), reconciliation.RunRequest{
		TenantID:    tenant,
		PeriodStart: day(1),
		PeriodEnd:   day(31),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "load record window")
}

func TestRunStoresSnapshot(t *testing.T) {
	svc, records, snapshots, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	tx := models.BankTransaction{ID: uuid.New(), TenantID: tenant, TransactionDate: day(8), Amount: amt(t, "64.00"), Description: "Domain renewal"}
	entry := models.LedgerEntry{ID: uuid.New(), TenantID: tenant, TransactionDate: day(8), Amount: amt(t, "64.00"), EntryType: models.EntryDebit, Description: "Domain renewal"}

	records.EXPECT().
		LoadWindow(gomock.Any(), tenant, gomock.Nil(), day(1), day(31)).
		Return(&models.RecordWindow{
			BankTransactions: []models.BankTransaction{tx},
			LedgerEntries:    []models.LedgerEntry{entry},
		}, nil)

	var captured *models.ReportSnapshot
	snapshots.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snap *models.ReportSnapshot) error {
			captured = snap
			return nil
		})

	report, err := svc.Run(context.Background(), reconciliation.RunRequest{
		TenantID:    tenant,
		PeriodStart: day(1),
		PeriodEnd:   day(31),
		Snapshot:    true,
	})

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.NotEqual(t, uuid.Nil, captured.ID)
	assert.Equal(t, tenant, captured.TenantID)
	assert.True(t, captured.PeriodStart.Equal(day(1)))
	assert.True(t, captured.PeriodEnd.Equal(day(31)))
	assert.False(t, captured.GeneratedAt.IsZero())

	var stored models.ReconciliationReport
	require.NoError(t, json.Unmarshal(captured.Report, &stored))
	assert.Equal(t, report.Matched, stored.Matched)
	assert.Equal(t, report.Unmatched, stored.Unmatched)
	assert.True(t, stored.BankBalance.Equal(report.BankBalance))
}

func TestRunRerunKeepsEarlierMatches(t *testing.T) {
	svc, records, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	settledEntry := models.LedgerEntry{ID: uuid.New(), TenantID: tenant, TransactionDate: day(3), Amount: amt(t, "320.00"), EntryType: models.EntryDebit, Description: "Fleet fuel", Reconciled: true}
	details, err := json.Marshal(models.MatchDetails{
		TargetID:   settledEntry.ID,
		TargetType: models.TargetLedgerEntry,
		Similarity: 1.0,
		Reasons:    []string{"Exact amount match"},
	})
	require.NoError(t, err)

	settledTx := models.BankTransaction{
		ID:              uuid.New(),
		TenantID:        tenant,
		TransactionDate: day(3),
		Amount:          amt(t, "320.00"),
		Description:     "Fleet fuel",
		Reconciled:      true,
		ReconciledWith:  &settledEntry.ID,
		MatchDetails:    datatypes.JSON(details),
	}
	openTx := models.BankTransaction{ID: uuid.New(), TenantID: tenant, TransactionDate: day(10), Amount: amt(t, "75.25"), Description: "Postage"}
	openEntry := models.LedgerEntry{ID: uuid.New(), TenantID: tenant, TransactionDate: day(10), Amount: amt(t, "75.25"), EntryType: models.EntryDebit, Description: "Postage"}

	records.EXPECT().
		LoadWindow(gomock.Any(), tenant, gomock.Nil(), day(1), day(31)).
		Return(&models.RecordWindow{
			BankTransactions: []models.BankTransaction{settledTx, openTx},
			LedgerEntries:    []models.LedgerEntry{settledEntry, openEntry},
		}, nil)

	var captured []models.AppliedMatch
	records.EXPECT().
		ApplyMatches(gomock.Any(), tenant, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, applied []models.AppliedMatch) error {
			captured = applied
			return nil
		})

	report, err := svc.Run(context.Background(), reconciliation.RunRequest{
		TenantID:    tenant,
		PeriodStart: day(1),
		PeriodEnd:   day(31),
		Apply:       true,
	})

	require.NoError(t, err)

	// only the newly decided pair is written back
	require.Len(t, captured, 1)
	assert.Equal(t, openTx.ID, captured[0].BankTransactionID)
	assert.Equal(t, openEntry.ID, captured[0].TargetID)

	assert.Equal(t, 2, report.Matched)
	assert.Equal(t, 0, report.Unmatched)
	assert.InDelta(t, 1.0, report.Summary.MatchRate, 1e-9)
	require.Len(t, report.Items, 2)
	require.NotNil(t, report.Items[0].BankTransactionID)
	assert.Equal(t, settledTx.ID, *report.Items[0].BankTransactionID)
	require.NotNil(t, report.Items[0].LedgerEntryID)
	assert.Equal(t, settledEntry.ID, *report.Items[0].LedgerEntryID)
}

func TestRunReportsEntriesReconciledOutsideWindow(t *testing.T) {
	svc, records, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	openTx := models.BankTransaction{ID: uuid.New(), TenantID: tenant, TransactionDate: day(1), Amount: amt(t, "40.00"), Description: "Parking"}
	carried := models.LedgerEntry{ID: uuid.New(), TenantID: tenant, TransactionDate: day(2), Amount: amt(t, "500.00"), EntryType: models.EntryDebit, Description: "February invoice settled late", Reconciled: true}

	records.EXPECT().
		LoadWindow(gomock.Any(), tenant, gomock.Nil(), day(1), day(31)).
		Return(&models.RecordWindow{
			BankTransactions: []models.BankTransaction{openTx},
			LedgerEntries:    []models.LedgerEntry{carried},
		}, nil)

	report, err := svc.Run(context.Background(), reconciliation.RunRequest{
		TenantID:    tenant,
		PeriodStart: day(1),
		PeriodEnd:   day(31),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Matched)
	assert.Equal(t, 1, report.Unmatched)
	assert.InDelta(t, 0.0, report.Summary.MatchRate, 1e-9)

	require.Len(t, report.Items, 2)
	assert.Equal(t, models.ItemUnmatched, report.Items[0].Status)

	carriedItem := report.Items[1]
	assert.Equal(t, models.ItemMatched, carriedItem.Status)
	assert.Nil(t, carriedItem.BankTransactionID)
	require.NotNil(t, carriedItem.LedgerEntryID)
	assert.Equal(t, carried.ID, *carriedItem.LedgerEntryID)
}

func TestSuggestRanksCandidates(t *testing.T) {
	svc, records, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	tx := models.BankTransaction{ID: uuid.New(), TenantID: tenant, TransactionDate: day(10), Amount: amt(t, "250.00"), Description: "Stripe payout"}
	exact := models.LedgerEntry{ID: uuid.New(), TenantID: tenant, TransactionDate: day(10), Amount: amt(t, "250.00"), EntryType: models.EntryDebit, Description: "Stripe payout"}
	nearby := models.LedgerEntry{ID: uuid.New(), TenantID: tenant, TransactionDate: day(13), Amount: amt(t, "250.00"), EntryType: models.EntryDebit, Description: "Stripe payout"}
	taken := models.LedgerEntry{ID: uuid.New(), TenantID: tenant, TransactionDate: day(10), Amount: amt(t, "250.00"), EntryType: models.EntryDebit, Description: "Stripe payout", Reconciled: true}

	records.EXPECT().
		GetBankTransaction(gomock.Any(), tenant, tx.ID).
		Return(&tx, nil)
	records.EXPECT().
		LoadWindow(gomock.Any(), tenant, gomock.Nil(), day(3), day(17)).
		Return(&models.RecordWindow{LedgerEntries: []models.LedgerEntry{exact, nearby, taken}}, nil)

	ranked, err := svc.Suggest(context.Background(), reconciliation.SuggestRequest{
		TenantID:          tenant,
		BankTransactionID: tx.ID,
	})

	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, exact.ID, ranked[0].TargetID)
	assert.Equal(t, nearby.ID, ranked[1].TargetID)
	assert.Greater(t, ranked[0].Similarity, ranked[1].Similarity)
	for _, c := range ranked {
		assert.NotEqual(t, taken.ID, c.TargetID)
		assert.GreaterOrEqual(t, c.Similarity, 0.7)
	}
}

func TestSuggestHonorsOverrides(t *testing.T) {
	svc, records, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	tx := models.BankTransaction{ID: uuid.New(), TenantID: tenant, TransactionDate: day(10), Amount: amt(t, "250.00"), Description: "Stripe payout"}
	exact := models.LedgerEntry{ID: uuid.New(), TenantID: tenant, TransactionDate: day(10), Amount: amt(t, "250.00"), EntryType: models.EntryDebit, Description: "Stripe payout"}
	nearby := models.LedgerEntry{ID: uuid.New(), TenantID: tenant, TransactionDate: day(13), Amount: amt(t, "250.00"), EntryType: models.EntryDebit, Description: "Stripe payout"}

	records.EXPECT().
		GetBankTransaction(gomock.Any(), tenant, tx.ID).
		Return(&tx, nil)
	records.EXPECT().
		LoadWindow(gomock.Any(), tenant, gomock.Nil(), day(7), day(13)).
		Return(&models.RecordWindow{LedgerEntries: []models.LedgerEntry{exact, nearby}}, nil)

	threshold := 0.95
	windowDays := 3
	ranked, err := svc.Suggest(context.Background(), reconciliation.SuggestRequest{
		TenantID:          tenant,
		BankTransactionID: tx.ID,
		Threshold:         &threshold,
		WindowDays:        &windowDays,
	})

	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, exact.ID, ranked[0].TargetID)
}

func TestSuggestRejectsBadParameters(t *testing.T) {
	svc, _, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	badThreshold := 1.5
	_, err := svc.Suggest(context.Background(), reconciliation.SuggestRequest{
		TenantID:          uuid.New(),
		BankTransactionID: uuid.New(),
		Threshold:         &badThreshold,
	})
	assert.ErrorIs(t, err, reconciliation.ErrInvalidWindow)

	badWindow := -1
	_, err = svc.Suggest(context.Background(), reconciliation.SuggestRequest{
		TenantID:          uuid.New(),
		BankTransactionID: uuid.New(),
		WindowDays:        &badWindow,
	})
	assert.ErrorIs(t, err, reconciliation.ErrInvalidWindow)
}

func TestSuggestPropagatesLookupError(t *testing.T) {
	svc, records, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	txID := uuid.New()
	records.EXPECT().
		GetBankTransaction(gomock.Any(), tenant, txID).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Suggest(context.Background(), reconciliation.SuggestRequest{
		TenantID:          tenant,
		BankTransactionID: txID,
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestConfirmMatchLedgerEntry(t *testing.T) {
	svc, records, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	tx := models.BankTransaction{ID: uuid.New(), TenantID: tenant, TransactionDate: day(5), Amount: amt(t, "-842.50"), Description: "Office rent"}
	entry := models.LedgerEntry{ID: uuid.New(), TenantID: tenant, TransactionDate: day(5), Amount: amt(t, "842.50"), EntryType: models.EntryCredit, Description: "Office rent"}

	records.EXPECT().
		GetBankTransaction(gomock.Any(), tenant, tx.ID).
		Return(&tx, nil)
	records.EXPECT().
		GetLedgerEntry(gomock.Any(), tenant, entry.ID).
		Return(&entry, nil)

	var captured models.AppliedMatch
	records.EXPECT().
		ConfirmMatch(gomock.Any(), tenant, gomock.Any(), "jane.doe", "statement review").
		DoAndReturn(func(_ context.Context, _ uuid.UUID, applied models.AppliedMatch, _, _ string) error {
			captured = applied
			return nil
		})

	applied, err := svc.ConfirmMatch(context.Background(), reconciliation.ManualMatchRequest{
		TenantID:          tenant,
		BankTransactionID: tx.ID,
		LedgerEntryID:     &entry.ID,
		PerformedBy:       "jane.doe",
		Reason:            "statement review",
	})

	require.NoError(t, err)
	require.NotNil(t, applied)
	assert.Equal(t, captured, *applied)
	assert.Equal(t, tx.ID, applied.BankTransactionID)
	assert.Equal(t, entry.ID, applied.TargetID)
	assert.Equal(t, models.TargetLedgerEntry, applied.TargetType)
	assert.InDelta(t, 1.0, applied.Similarity, 1e-9)
}

func TestConfirmMatchDocument(t *testing.T) {
	svc, records, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	tx := models.BankTransaction{ID: uuid.New(), TenantID: tenant, TransactionDate: day(5), Amount: amt(t, "-129.99"), Description: "Card purchase"}
	doc := models.CandidateDocument{ID: uuid.New(), TenantID: tenant, FileName: "receipt-129.pdf", ExtractedTotal: amt(t, "129.99"), CreatedAt: day(5)}

	records.EXPECT().
		GetBankTransaction(gomock.Any(), tenant, tx.ID).
		Return(&tx, nil)
	records.EXPECT().
		GetDocument(gomock.Any(), tenant, doc.ID).
		Return(&doc, nil)
	records.EXPECT().
		ConfirmMatch(gomock.Any(), tenant, gomock.Any(), "jane.doe", "receipt located").
		Return(nil)

	applied, err := svc.ConfirmMatch(context.Background(), reconciliation.ManualMatchRequest{
		TenantID:          tenant,
		BankTransactionID: tx.ID,
		DocumentID:        &doc.ID,
		PerformedBy:       "jane.doe",
		Reason:            "receipt located",
	})

	require.NoError(t, err)
	require.NotNil(t, applied)
	assert.Equal(t, doc.ID, applied.TargetID)
	assert.Equal(t, models.TargetDocument, applied.TargetType)
	// exact amount and same date alone guarantee at least the borderline band
	assert.GreaterOrEqual(t, applied.Similarity, 0.7)
}

func TestConfirmMatchRejectsAmbiguousTarget(t *testing.T) {
	svc, _, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	entryID := uuid.New()
	docID := uuid.New()

	_, err := svc.ConfirmMatch(context.Background(), reconciliation.ManualMatchRequest{
		TenantID:          tenant,
		BankTransactionID: uuid.New(),
	})
	assert.ErrorIs(t, err, reconciliation.ErrInvalidTarget)

	_, err = svc.ConfirmMatch(context.Background(), reconciliation.ManualMatchRequest{
		TenantID:          tenant,
		BankTransactionID: uuid.New(),
		LedgerEntryID:     &entryID,
		DocumentID:        &docID,
	})
	assert.ErrorIs(t, err, reconciliation.ErrInvalidTarget)
}

func TestUnmatch(t *testing.T) {
	svc, records, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	txID := uuid.New()
	records.EXPECT().
		ClearMatch(gomock.Any(), tenant, txID, "jane.doe", "wrong pairing").
		Return(nil)

	err := svc.Unmatch(context.Background(), tenant, txID, "jane.doe", "wrong pairing")
	assert.NoError(t, err)
}

func TestUnmatchPropagatesError(t *testing.T) {
	svc, records, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	txID := uuid.New()
	repoErr := errors.New("not reconciled")
	records.EXPECT().
		ClearMatch(gomock.Any(), tenant, txID, "jane.doe", "").
		Return(repoErr)

	err := svc.Unmatch(context.Background(), tenant, txID, "jane.doe", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr)
}

func TestSnapshotAccessors(t *testing.T) {
	svc, _, snapshots, ctrl := newTestService(t)
	defer ctrl.Finish()

	tenant := uuid.New()
	snap := models.ReportSnapshot{ID: uuid.New(), TenantID: tenant}

	snapshots.EXPECT().
		List(gomock.Any(), tenant, 20).
		Return([]models.ReportSnapshot{snap}, nil)
	listed, err := svc.Snapshots(context.Background(), tenant, 20)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, snap.ID, listed[0].ID)

	snapshots.EXPECT().
		Get(gomock.Any(), tenant, snap.ID).
		Return(&snap, nil)
	got, err := svc.Snapshot(context.Background(), tenant, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
}
