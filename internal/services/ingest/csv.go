package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ledger-reconciliation-backend/internal/models"
)

const csvDateLayout = "2006-01-02"

type bankTransactionRow struct {
	externalID  string
	date        time.Time
	amount      decimal.Decimal
	currency    string
	description string
}

type ledgerEntryRow struct {
	accountCode string
	date        time.Time
	amount      decimal.Decimal
	entryType   models.EntryType
	description string
}

// parseBankTransactionCSV reads the whole file so a malformed row fails the
// request instead of a half-finished background import. Expected header:
// external_transaction_id,transaction_date,amount,currency,description.
func parseBankTransactionCSV(file io.Reader) ([]bankTransactionRow, error) {
	records, err := readAll(file)
	if err != nil {
		return nil, err
	}

	rows := make([]bankTransactionRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) < 5 {
			return nil, fmt.Errorf("row %d: expected 5 columns, got %d", line, len(rec))
		}
		date, err := time.Parse(csvDateLayout, strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad transaction date %q", line, rec[1])
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad amount %q", line, rec[2])
		}
		externalID := strings.TrimSpace(rec[0])
		if externalID == "" {
			return nil, fmt.Errorf("row %d: external transaction id is empty", line)
		}
		rows = append(rows, bankTransactionRow{
			externalID:  externalID,
			date:        date,
			amount:      amount,
			currency:    strings.ToUpper(strings.TrimSpace(rec[3])),
			description: strings.TrimSpace(rec[4]),
		})
	}
	return rows, nil
}

// parseLedgerEntryCSV expects the header
// account_code,transaction_date,amount,entry_type,description. Amounts are
// unsigned; direction comes from entry_type.
func parseLedgerEntryCSV(file io.Reader) ([]ledgerEntryRow, error) {
	records, err := readAll(file)
	if err != nil {
		return nil, err
	}

	rows := make([]ledgerEntryRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) < 5 {
			return nil, fmt.Errorf("row %d: expected 5 columns, got %d", line, len(rec))
		}
		date, err := time.Parse(csvDateLayout, strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad transaction date %q", line, rec[1])
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad amount %q", line, rec[2])
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("row %d: ledger amounts are unsigned, got %s", line, amount)
		}
		entryType := models.EntryType(strings.ToLower(strings.TrimSpace(rec[3])))
		if entryType != models.EntryDebit && entryType != models.EntryCredit {
			return nil, fmt.Errorf("row %d: entry type must be debit or credit, got %q", line, rec[3])
		}
		rows = append(rows, ledgerEntryRow{
			accountCode: strings.TrimSpace(rec[0]),
			date:        date,
			amount:      amount,
			entryType:   entryType,
			description: strings.TrimSpace(rec[4]),
		})
	}
	return rows, nil
}

func readAll(file io.Reader) ([][]string, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, errors.New("csv has no data rows")
	}
	return records, nil
}
