package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ledger-reconciliation-backend/internal/models"
)

// createBatchSize bounds one multi-row insert during CSV ingest.
const createBatchSize = 500

// IngestRepository persists collaborator-delivered records and tracks
// background CSV imports.
type IngestRepository struct {
	db *gorm.DB
}

func NewIngestRepository(db *gorm.DB) *IngestRepository {
	return &IngestRepository{db: db}
}

func (r *IngestRepository) CreateBankTransaction(ctx context.Context, tx *models.BankTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *IngestRepository) CreateBankTransactions(ctx context.Context, txs []models.BankTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(txs, createBatchSize).Error
}

// BankTransactionExists reports whether the tenant already holds a bank
// transaction with this external id. Used to skip duplicate CSV rows.
func (r *IngestRepository) BankTransactionExists(ctx context.Context, tenantID uuid.UUID, externalID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BankTransaction{}).
		Where("tenant_id = ? AND external_transaction_id = ?", tenantID, externalID).
		Count(&count).Error
	return count > 0, err
}

func (r *IngestRepository) CreateLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *IngestRepository) CreateLedgerEntries(ctx context.Context, entries []models.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(entries, createBatchSize).Error
}

func (r *IngestRepository) CreateDocument(ctx context.Context, doc *models.CandidateDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// Import batch lifecycle. Background ingest goroutines call the update
// methods as they chew through a file; the progress endpoint reads the row.

func (r *IngestRepository) CreateImportBatch(ctx context.Context, batch *models.ImportBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *IngestRepository) GetImportBatch(ctx context.Context, tenantID, id uuid.UUID) (*models.ImportBatch, error) {
	var batch models.ImportBatch
	if err := r.db.WithContext(ctx).First(&batch, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *IngestRepository) UpdateImportProgress(ctx context.Context, id uuid.UUID, processed, skipped int) error {
	return r.db.WithContext(ctx).Model(&models.ImportBatch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"processed_count": processed,
			"skipped_count":   skipped,
		}).Error
}

func (r *IngestRepository) CompleteImportBatch(ctx context.Context, id uuid.UUID, status string, processed, skipped int) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&models.ImportBatch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          status,
			"processed_count": processed,
			"skipped_count":   skipped,
			"completed_at":    &now,
		}).Error
}
