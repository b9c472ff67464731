package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger-reconciliation-backend/internal/models"
)

// ErrBadFile marks an import file the parser could not make sense of. The
// file is rejected up front, before any batch is registered.
var ErrBadFile = errors.New("unreadable import file")

// progressEvery is how many rows a background import processes between
// progress writes.
const progressEvery = 100

// entryChunkSize bounds one batched ledger-entry insert.
const entryChunkSize = 200

// Store is the persistence surface the ingest service needs.
type Store interface {
	CreateBankTransaction(ctx context.Context, tx *models.BankTransaction) error
	CreateBankTransactions(ctx context.Context, txs []models.BankTransaction) error
	BankTransactionExists(ctx context.Context, tenantID uuid.UUID, externalID string) (bool, error)
	CreateLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error
	CreateLedgerEntries(ctx context.Context, entries []models.LedgerEntry) error
	CreateDocument(ctx context.Context, doc *models.CandidateDocument) error
	CreateImportBatch(ctx context.Context, batch *models.ImportBatch) error
	GetImportBatch(ctx context.Context, tenantID, id uuid.UUID) (*models.ImportBatch, error)
	UpdateImportProgress(ctx context.Context, id uuid.UUID, processed, skipped int) error
	CompleteImportBatch(ctx context.Context, id uuid.UUID, status string, processed, skipped int) error
}

// Service ingests collaborator-normalized records: single rows over JSON and
// CSV files processed in the background with per-batch progress.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// BankTransactionInput is one normalized statement row. Amount is signed:
// money in positive, money out negative.
type BankTransactionInput struct {
	TenantID              uuid.UUID
	AccountID             uuid.UUID
	ExternalTransactionID string
	TransactionDate       time.Time
	Amount                decimal.Decimal
	Currency              string
	Description           string
}

func (s *Service) AddBankTransaction(ctx context.Context, in BankTransactionInput) (*models.BankTransaction, error) {
	tx := &models.BankTransaction{
		ID:                    uuid.New(),
		TenantID:              in.TenantID,
		AccountID:             in.AccountID,
		ExternalTransactionID: in.ExternalTransactionID,
		TransactionDate:       in.TransactionDate,
		Amount:                in.Amount,
		Currency:              in.Currency,
		Description:           in.Description,
		CreatedAt:             time.Now().UTC(),
	}
	if err := s.store.CreateBankTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("create bank transaction: %w", err)
	}
	return tx, nil
}

// LedgerEntryInput is one posted entry. Amount is unsigned; direction lives
// in EntryType.
type LedgerEntryInput struct {
	TenantID        uuid.UUID
	AccountCode     string
	TransactionDate time.Time
	Amount          decimal.Decimal
	EntryType       models.EntryType
	Description     string
	DocumentID      *uuid.UUID
}

func (s *Service) AddLedgerEntry(ctx context.Context, in LedgerEntryInput) (*models.LedgerEntry, error) {
	entry := &models.LedgerEntry{
		ID:              uuid.New(),
		TenantID:        in.TenantID,
		AccountCode:     in.AccountCode,
		TransactionDate: in.TransactionDate,
		Amount:          in.Amount,
		EntryType:       in.EntryType,
		Description:     in.Description,
		DocumentID:      in.DocumentID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.CreateLedgerEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("create ledger entry: %w", err)
	}
	return entry, nil
}

// DocumentInput registers one extracted receipt or invoice total.
type DocumentInput struct {
	TenantID       uuid.UUID
	FileName       string
	ExtractedTotal decimal.Decimal
}

func (s *Service) AddDocument(ctx context.Context, in DocumentInput) (*models.CandidateDocument, error) {
	doc := &models.CandidateDocument{
		ID:             uuid.New(),
		TenantID:       in.TenantID,
		FileName:       in.FileName,
		ExtractedTotal: in.ExtractedTotal,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

// StartBankTransactionImport parses the whole file up front, registers an
// import batch and processes the rows in the background. The returned batch
// carries the id the caller polls for progress.
func (s *Service) StartBankTransactionImport(ctx context.Context, tenantID, accountID uuid.UUID, filename string, file io.Reader) (*models.ImportBatch, error) {
	rows, err := parseBankTransactionCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadFile, err)
	}

	batch := &models.ImportBatch{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Filename:  filename,
		Kind:      models.ImportKindBankTransactions,
		TotalRows: len(rows),
		Status:    models.ImportStatusProcessing,
		StartedAt: time.Now().UTC(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateImportBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("create import batch: %w", err)
	}

	go s.processBankTransactionRows(batch.ID, tenantID, accountID, rows)

	return batch, nil
}

// StartLedgerEntryImport is the ledger-side counterpart of
// StartBankTransactionImport.
func (s *Service) StartLedgerEntryImport(ctx context.Context, tenantID uuid.UUID, filename string, file io.Reader) (*models.ImportBatch, error) {
	rows, err := parseLedgerEntryCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadFile, err)
	}

	batch := &models.ImportBatch{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Filename:  filename,
		Kind:      models.ImportKindLedgerEntries,
		TotalRows: len(rows),
		Status:    models.ImportStatusProcessing,
		StartedAt: time.Now().UTC(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateImportBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("create import batch: %w", err)
	}

	go s.processLedgerEntryRows(batch.ID, tenantID, rows)

	return batch, nil
}

// ImportProgress returns the current state of one import batch.
func (s *Service) ImportProgress(ctx context.Context, tenantID, batchID uuid.UUID) (*models.ImportBatch, error) {
	return s.store.GetImportBatch(ctx, tenantID, batchID)
}

// processBankTransactionRows runs detached from the upload request. Rows
// whose external id the tenant already holds are skipped, everything else is
// inserted one by one so a duplicate never blocks the rest of the file.
func (s *Service) processBankTransactionRows(batchID, tenantID, accountID uuid.UUID, rows []bankTransactionRow) {
	ctx := context.Background()
	processed, skipped := 0, 0

	for i, row := range rows {
		exists, err := s.store.BankTransactionExists(ctx, tenantID, row.externalID)
		if err != nil {
			s.failImport(ctx, batchID, processed, skipped, err)
			return
		}
		if exists {
			skipped++
		} else {
			tx := models.BankTransaction{
				ID:                    uuid.New(),
				TenantID:              tenantID,
				AccountID:             accountID,
				ExternalTransactionID: row.externalID,
				TransactionDate:       row.date,
				Amount:                row.amount,
				Currency:              row.currency,
				Description:           row.description,
				CreatedAt:             time.Now().UTC(),
			}
			if err := s.store.CreateBankTransaction(ctx, &tx); err != nil {
				s.failImport(ctx, batchID, processed, skipped, err)
				return
			}
			processed++
		}

		if (i+1)%progressEvery == 0 {
			if err := s.store.UpdateImportProgress(ctx, batchID, processed, skipped); err != nil {
				s.logger.Error("update import progress", "batch_id", batchID, "error", err)
			}
		}
	}

	if err := s.store.CompleteImportBatch(ctx, batchID, models.ImportStatusCompleted, processed, skipped); err != nil {
		s.logger.Error("complete import batch", "batch_id", batchID, "error", err)
		return
	}
	s.logger.Info("bank transaction import complete",
		"batch_id", batchID,
		"processed", processed,
		"skipped", skipped,
	)
}

// processLedgerEntryRows inserts in chunks; ledger entries carry no external
// dedup key, so the whole file goes in.
func (s *Service) processLedgerEntryRows(batchID, tenantID uuid.UUID, rows []ledgerEntryRow) {
	ctx := context.Background()
	processed := 0

	for start := 0; start < len(rows); start += entryChunkSize {
		end := start + entryChunkSize
		if end > len(rows) {
			end = len(rows)
		}

		entries := make([]models.LedgerEntry, 0, end-start)
		for _, row := range rows[start:end] {
			entries = append(entries, models.LedgerEntry{
				ID:              uuid.New(),
				TenantID:        tenantID,
				AccountCode:     row.accountCode,
				TransactionDate: row.date,
				Amount:          row.amount,
				EntryType:       row.entryType,
				Description:     row.description,
				CreatedAt:       time.Now().UTC(),
			})
		}
		if err := s.store.CreateLedgerEntries(ctx, entries); err != nil {
			s.failImport(ctx, batchID, processed, 0, err)
			return
		}
		processed += len(entries)

		if err := s.store.UpdateImportProgress(ctx, batchID, processed, 0); err != nil {
			s.logger.Error("update import progress", "batch_id", batchID, "error", err)
		}
	}

	if err := s.store.CompleteImportBatch(ctx, batchID, models.ImportStatusCompleted, processed, 0); err != nil {
		s.logger.Error("complete import batch", "batch_id", batchID, "error", err)
		return
	}
	s.logger.Info("ledger entry import complete",
		"batch_id", batchID,
		"processed", processed,
	)
}

func (s *Service) failImport(ctx context.Context, batchID uuid.UUID, processed, skipped int, cause error) {
	s.logger.Error("import failed", "batch_id", batchID, "error", cause)
	if err := s.store.CompleteImportBatch(ctx, batchID, models.ImportStatusFailed, processed, skipped); err != nil {
		s.logger.Error("mark import failed", "batch_id", batchID, "error", err)
	}
}
