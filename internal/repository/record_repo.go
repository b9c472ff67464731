package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ledger-reconciliation-backend/internal/models"
)

// enginePerformer is the audit-log actor for matches the engine decided on
// its own.
const enginePerformer = "engine"

// RecordRepository is the gorm-backed record source of the reconciliation
// service.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// LoadWindow reads one tenant's records inside the closed period interval.
// Ordering is part of the contract: the assignment pass depends on a stable
// input order, so every query orders by a unique key suffix. accountID
// narrows bank transactions only; ledger entries and documents are not
// account-scoped.
func (r *RecordRepository) LoadWindow(ctx context.Context, tenantID uuid.UUID, accountID *uuid.UUID, periodStart, periodEnd time.Time) (*models.RecordWindow, error) {
	var window models.RecordWindow

	txQuery := r.db.WithContext(ctx).
		Where("tenant_id = ? AND transaction_date BETWEEN ? AND ?", tenantID, periodStart, periodEnd)
	if accountID != nil {
		txQuery = txQuery.Where("account_id = ?", *accountID)
	}
	if err := txQuery.Order("transaction_date, amount, id").Find(&window.BankTransactions).Error; err != nil {
		return nil, fmt.Errorf("load bank transactions: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND transaction_date BETWEEN ? AND ?", tenantID, periodStart, periodEnd).
		Order("transaction_date, amount, id").
		Find(&window.LedgerEntries).Error; err != nil {
		return nil, fmt.Errorf("load ledger entries: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND created_at BETWEEN ? AND ?", tenantID, periodStart, periodEnd).
		Order("created_at, id").
		Find(&window.Documents).Error; err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	return &window, nil
}

// ApplyMatches persists one strict pass in a single database transaction. A
// failing update rolls back the whole batch, so the next run starts from an
// untouched state.
func (r *RecordRepository) ApplyMatches(ctx context.Context, tenantID uuid.UUID, applied []models.AppliedMatch) error {
	if len(applied) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range applied {
			details, err := json.Marshal(models.MatchDetails{
				TargetID:   m.TargetID,
				TargetType: m.TargetType,
				Similarity: m.Similarity,
				Reasons:    m.MatchReasons,
			})
			if err != nil {
				return fmt.Errorf("encode match details: %w", err)
			}

			res := tx.Model(&models.BankTransaction{}).
				Where("id = ? AND tenant_id = ? AND reconciled = ?", m.BankTransactionID, tenantID, false).
				Updates(map[string]interface{}{
					"reconciled":      true,
					"reconciled_with": m.TargetID,
					"match_details":   datatypes.JSON(details),
				})
			if res.Error != nil {
				return fmt.Errorf("update bank transaction %s: %w", m.BankTransactionID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("bank transaction %s: %w", m.BankTransactionID, ErrTargetNotOpen)
			}

			if m.TargetType == models.TargetLedgerEntry {
				res := tx.Model(&models.LedgerEntry{}).
					Where("id = ? AND tenant_id = ? AND reconciled = ?", m.TargetID, tenantID, false).
					Update("reconciled", true)
				if res.Error != nil {
					return fmt.Errorf("update ledger entry %s: %w", m.TargetID, res.Error)
				}
				if res.RowsAffected == 0 {
					return fmt.Errorf("ledger entry %s: %w", m.TargetID, ErrTargetNotOpen)
				}
			}

			target := m.TargetID
			audit := models.MatchAuditLog{
				ID:                uuid.New(),
				TenantID:          tenantID,
				BankTransactionID: m.BankTransactionID,
				Action:            models.AuditActionMatched,
				TargetType:        m.TargetType,
				NewTarget:         &target,
				Similarity:        m.Similarity,
				PerformedBy:       enginePerformer,
				CreatedAt:         time.Now().UTC(),
			}
			if err := tx.Create(&audit).Error; err != nil {
				return fmt.Errorf("write audit log: %w", err)
			}
		}
		return nil
	})
}

func (r *RecordRepository) GetBankTransaction(ctx context.Context, tenantID, id uuid.UUID) (*models.BankTransaction, error) {
	var tx models.BankTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *RecordRepository) GetLedgerEntry(ctx context.Context, tenantID, id uuid.UUID) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *RecordRepository) GetDocument(ctx context.Context, tenantID, id uuid.UUID) (*models.CandidateDocument, error) {
	var doc models.CandidateDocument
	if err := r.db.WithContext(ctx).First(&doc, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// ConfirmMatch persists one reviewer-chosen pairing. Unlike the engine's
// batch write-back it may overwrite an existing pairing; the audit row keeps
// the previous target.
func (r *RecordRepository) ConfirmMatch(ctx context.Context, tenantID uuid.UUID, applied models.AppliedMatch, performedBy, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bankTx models.BankTransaction
		if err := tx.First(&bankTx, "id = ? AND tenant_id = ?", applied.BankTransactionID, tenantID).Error; err != nil {
			return err
		}

		var previous *uuid.UUID
		if bankTx.ReconciledWith != nil {
			p := *bankTx.ReconciledWith
			previous = &p
		}

		// Release the previous ledger target before pointing at the new one.
		// Documents carry no reconciled flag, so releasing one is a no-op
		// row-count-wise.
		if previous != nil && *previous != applied.TargetID {
			if err := tx.Model(&models.LedgerEntry{}).
				Where("id = ? AND tenant_id = ?", *previous, tenantID).
				Update("reconciled", false).Error; err != nil {
				return fmt.Errorf("release previous target %s: %w", *previous, err)
			}
		}

		if applied.TargetType == models.TargetLedgerEntry && (previous == nil || *previous != applied.TargetID) {
			res := tx.Model(&models.LedgerEntry{}).
				Where("id = ? AND tenant_id = ? AND reconciled = ?", applied.TargetID, tenantID, false).
				Update("reconciled", true)
			if res.Error != nil {
				return fmt.Errorf("update ledger entry %s: %w", applied.TargetID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("ledger entry %s: %w", applied.TargetID, ErrTargetNotOpen)
			}
		}

		details, err := json.Marshal(models.MatchDetails{
			TargetID:   applied.TargetID,
			TargetType: applied.TargetType,
			Similarity: applied.Similarity,
			Reasons:    applied.MatchReasons,
		})
		if err != nil {
			return fmt.Errorf("encode match details: %w", err)
		}
		if err := tx.Model(&models.BankTransaction{}).
			Where("id = ? AND tenant_id = ?", applied.BankTransactionID, tenantID).
			Updates(map[string]interface{}{
				"reconciled":      true,
				"reconciled_with": applied.TargetID,
				"match_details":   datatypes.JSON(details),
			}).Error; err != nil {
			return fmt.Errorf("update bank transaction %s: %w", applied.BankTransactionID, err)
		}

		target := applied.TargetID
		audit := models.MatchAuditLog{
			ID:                uuid.New(),
			TenantID:          tenantID,
			BankTransactionID: applied.BankTransactionID,
			Action:            models.AuditActionManualMatch,
			TargetType:        applied.TargetType,
			PreviousTarget:    previous,
			NewTarget:         &target,
			Similarity:        applied.Similarity,
			PerformedBy:       performedBy,
			Reason:            reason,
			CreatedAt:         time.Now().UTC(),
		}
		return tx.Create(&audit).Error
	})
}

// ClearMatch reverts one bank transaction to unreconciled and reopens its
// ledger target.
func (r *RecordRepository) ClearMatch(ctx context.Context, tenantID, bankTransactionID uuid.UUID, performedBy, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bankTx models.BankTransaction
		if err := tx.First(&bankTx, "id = ? AND tenant_id = ?", bankTransactionID, tenantID).Error; err != nil {
			return err
		}
		if !bankTx.Reconciled {
			return fmt.Errorf("bank transaction %s: %w", bankTransactionID, ErrNotReconciled)
		}

		var previous *uuid.UUID
		targetType := models.TargetLedgerEntry
		if bankTx.ReconciledWith != nil {
			p := *bankTx.ReconciledWith
			previous = &p
			var details models.MatchDetails
			if len(bankTx.MatchDetails) > 0 && json.Unmarshal(bankTx.MatchDetails, &details) == nil && details.TargetType != "" {
				targetType = details.TargetType
			}
			if targetType == models.TargetLedgerEntry {
				if err := tx.Model(&models.LedgerEntry{}).
					Where("id = ? AND tenant_id = ?", p, tenantID).
					Update("reconciled", false).Error; err != nil {
					return fmt.Errorf("reopen ledger entry %s: %w", p, err)
				}
			}
		}

		if err := tx.Model(&models.BankTransaction{}).
			Where("id = ? AND tenant_id = ?", bankTransactionID, tenantID).
			Updates(map[string]interface{}{
				"reconciled":      false,
				"reconciled_with": nil,
				"match_details":   nil,
			}).Error; err != nil {
			return fmt.Errorf("clear bank transaction %s: %w", bankTransactionID, err)
		}

		audit := models.MatchAuditLog{
			ID:                uuid.New(),
			TenantID:          tenantID,
			BankTransactionID: bankTransactionID,
			Action:            models.AuditActionManualUnmatch,
			TargetType:        targetType,
			PreviousTarget:    previous,
			PerformedBy:       performedBy,
			Reason:            reason,
			CreatedAt:         time.Now().UTC(),
		}
		return tx.Create(&audit).Error
	})
}
