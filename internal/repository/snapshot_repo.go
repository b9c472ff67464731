package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ledger-reconciliation-backend/internal/models"
)

// SnapshotRepository stores report snapshots. Append-only by construction:
// there is no update or delete here.
type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Create(ctx context.Context, snap *models.ReportSnapshot) error {
	return r.db.WithContext(ctx).Create(snap).Error
}

func (r *SnapshotRepository) List(ctx context.Context, tenantID uuid.UUID, limit int) ([]models.ReportSnapshot, error) {
	q := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("generated_at DESC, id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var snaps []models.ReportSnapshot
	err := q.Find(&snaps).Error
	return snaps, err
}

func (r *SnapshotRepository) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.ReportSnapshot, error) {
	var snap models.ReportSnapshot
	if err := r.db.WithContext(ctx).First(&snap, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return nil, err
	}
	return &snap, nil
}
