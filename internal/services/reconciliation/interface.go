package reconciliation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ledger-reconciliation-backend/internal/models"
)

//go:generate mockgen -source=interface.go -destination=mocks/mock_record_source.go -package=mock_reconciliation

// RecordSource is the engine's data boundary. The pipeline itself stays
// pure; every read and write of tenant records crosses this interface, so
// production runs against Postgres and tests run against mocks.
type RecordSource interface {
	// LoadWindow returns every bank transaction, ledger entry and candidate
	// document of the tenant inside the closed interval
	// [periodStart, periodEnd], each slice in deterministic order. A nil
	// accountID loads bank transactions of all accounts.
	LoadWindow(ctx context.Context, tenantID uuid.UUID, accountID *uuid.UUID, periodStart, periodEnd time.Time) (*models.RecordWindow, error)

	// ApplyMatches persists one strict pass atomically: both sides flagged
	// reconciled, match details stored, one audit row per pair. All or
	// nothing.
	ApplyMatches(ctx context.Context, tenantID uuid.UUID, applied []models.AppliedMatch) error

	GetBankTransaction(ctx context.Context, tenantID, id uuid.UUID) (*models.BankTransaction, error)
	GetLedgerEntry(ctx context.Context, tenantID, id uuid.UUID) (*models.LedgerEntry, error)
	GetDocument(ctx context.Context, tenantID, id uuid.UUID) (*models.CandidateDocument, error)

	// ConfirmMatch persists one reviewer-chosen pairing with an audit row.
	ConfirmMatch(ctx context.Context, tenantID uuid.UUID, applied models.AppliedMatch, performedBy, reason string) error

	// ClearMatch reverts a bank transaction to unreconciled and reopens its
	// target, with an audit row.
	ClearMatch(ctx context.Context, tenantID, bankTransactionID uuid.UUID, performedBy, reason string) error
}

// SnapshotStore persists immutable report snapshots. Append-only: snapshots
// are never updated or deleted.
type SnapshotStore interface {
	Create(ctx context.Context, snap *models.ReportSnapshot) error
	List(ctx context.Context, tenantID uuid.UUID, limit int) ([]models.ReportSnapshot, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*models.ReportSnapshot, error)
}
