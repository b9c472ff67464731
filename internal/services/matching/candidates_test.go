package matching

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger-reconciliation-backend/internal/models"
)

func TestCandidatesForStrictAmountFilter(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	tx := models.BankTransaction{
		ID:              uuid.New(),
		TransactionDate: date,
		Amount:          dec(t, "100.00"),
	}
	entries := []models.LedgerEntry{
		{ID: uuid.New(), TransactionDate: date, Amount: dec(t, "100.005"), EntryType: models.EntryDebit},
		{ID: uuid.New(), TransactionDate: date, Amount: dec(t, "100.01"), EntryType: models.EntryDebit},
		{ID: uuid.New(), TransactionDate: date, Amount: dec(t, "100.02"), EntryType: models.EntryDebit},
	}

	cands := CandidatesFor(tx, entries, nil, StrictConfig())

	// the tolerance bound is exclusive: exactly 0.01 off is out
	require.Len(t, cands, 1)
	assert.Equal(t, entries[0].ID, cands[0].TargetID)
}

func TestCandidatesForSignNormalization(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	tx := models.BankTransaction{
		ID:              uuid.New(),
		TransactionDate: date,
		Amount:          dec(t, "-842.50"),
	}
	entries := []models.LedgerEntry{
		{ID: uuid.New(), TransactionDate: date, Amount: dec(t, "842.50"), EntryType: models.EntryCredit},
		{ID: uuid.New(), TransactionDate: date, Amount: dec(t, "842.50"), EntryType: models.EntryDebit},
	}

	cands := CandidatesFor(tx, entries, nil, StrictConfig())

	// only the credit posting lands on the money-out side
	require.Len(t, cands, 1)
	assert.Equal(t, entries[0].ID, cands[0].TargetID)
	assert.True(t, cands[0].Amount.Equal(dec(t, "-842.50")))
}

func TestCandidatesForDateWindow(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	tx := models.BankTransaction{
		ID:              uuid.New(),
		TransactionDate: date,
		Amount:          dec(t, "50.00"),
	}
	entries := []models.LedgerEntry{
		{ID: uuid.New(), TransactionDate: date.AddDate(0, 0, 7), Amount: dec(t, "50.00"), EntryType: models.EntryDebit},
		{ID: uuid.New(), TransactionDate: date.AddDate(0, 0, 8), Amount: dec(t, "50.00"), EntryType: models.EntryDebit},
		{ID: uuid.New(), TransactionDate: date.AddDate(0, 0, -7), Amount: dec(t, "50.00"), EntryType: models.EntryDebit},
	}

	cands := CandidatesFor(tx, entries, nil, StrictConfig())

	require.Len(t, cands, 2)
	assert.Equal(t, entries[0].ID, cands[0].TargetID)
	assert.Equal(t, entries[2].ID, cands[1].TargetID)
}

func TestCandidatesForDocuments(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	tx := models.BankTransaction{
		ID:              uuid.New(),
		TransactionDate: date,
		Amount:          dec(t, "-200.00"),
	}
	entries := []models.LedgerEntry{
		{ID: uuid.New(), TransactionDate: date, Amount: dec(t, "200.00"), EntryType: models.EntryCredit},
	}
	docs := []models.CandidateDocument{
		{ID: uuid.New(), FileName: "receipt_stationery.pdf", ExtractedTotal: dec(t, "200.00"), CreatedAt: date},
		{ID: uuid.New(), FileName: "receipt_other.pdf", ExtractedTotal: dec(t, "350.00"), CreatedAt: date},
	}

	cands := CandidatesFor(tx, entries, docs, StrictConfig())

	require.Len(t, cands, 2)
	// ledger entries come first, document totals take the bank side's sign
	assert.Equal(t, models.TargetLedgerEntry, cands[0].TargetType)
	assert.Equal(t, models.TargetDocument, cands[1].TargetType)
	assert.Equal(t, docs[0].ID, cands[1].TargetID)
	assert.True(t, cands[1].Amount.Equal(dec(t, "-200.00")))
}

func TestFuzzyToleranceWidensCandidateSet(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	tx := models.BankTransaction{
		ID:              uuid.New(),
		TransactionDate: date,
		Amount:          dec(t, "1000.00"),
	}
	entries := []models.LedgerEntry{
		{ID: uuid.New(), TransactionDate: date, Amount: dec(t, "1000.00"), EntryType: models.EntryDebit},
		{ID: uuid.New(), TransactionDate: date, Amount: dec(t, "960.00"), EntryType: models.EntryDebit},
		{ID: uuid.New(), TransactionDate: date, Amount: dec(t, "900.00"), EntryType: models.EntryDebit},
	}

	strict := CandidatesFor(tx, entries, nil, StrictConfig())
	fuzzy := CandidatesFor(tx, entries, nil, FuzzyConfig())

	require.Len(t, strict, 1)
	require.Len(t, fuzzy, 2)

	// widening the tolerance never drops a candidate
	strictIDs := map[uuid.UUID]bool{}
	for _, c := range strict {
		strictIDs[c.TargetID] = true
	}
	found := 0
	for _, c := range fuzzy {
		if strictIDs[c.TargetID] {
			found++
		}
	}
	assert.Equal(t, len(strict), found)
}

func TestToleranceForPicksLargerBound(t *testing.T) {
	cfg := FuzzyConfig()

	// 5% of 1000 beats the absolute cent
	assert.True(t, cfg.toleranceFor(dec(t, "1000.00")).Equal(dec(t, "50.00")))
	// tiny amounts fall back to the absolute tolerance
	assert.True(t, cfg.toleranceFor(dec(t, "0.10")).Equal(dec(t, "0.01")))
	// sign does not matter
	assert.True(t, cfg.toleranceFor(dec(t, "-1000.00")).Equal(dec(t, "50.00")))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"strict default", func(c *Config) {}, false},
		{"negative tolerance", func(c *Config) { c.AmountTolerance = dec(t, "-1") }, true},
		{"percent above one", func(c *Config) { c.AmountTolerancePercent = 1.5 }, true},
		{"negative window", func(c *Config) { c.DateWindowDays = -1 }, true},
		{"similarity above one", func(c *Config) { c.MinSimilarity = 1.2 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := StrictConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
