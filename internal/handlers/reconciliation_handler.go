package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ledger-reconciliation-backend/internal/repository"
	service "ledger-reconciliation-backend/internal/services/reconciliation"
)

const dateLayout = "2006-01-02"

// ReconciliationHandler exposes the reconciliation pipeline over HTTP.
type ReconciliationHandler struct {
	service *service.Service
}

func NewReconciliationHandler(svc *service.Service) *ReconciliationHandler {
	return &ReconciliationHandler{service: svc}
}

// Run executes one strict pass over a tenant period and returns the report.
func (h *ReconciliationHandler) Run(c *gin.Context) {
	var payload struct {
		TenantID    string `json:"tenant_id" binding:"required"`
		AccountID   string `json:"account_id"`
		PeriodStart string `json:"period_start" binding:"required"`
		PeriodEnd   string `json:"period_end" binding:"required"`
		Apply       bool   `json:"apply"`
		Snapshot    bool   `json:"snapshot"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	tenantID, err := uuid.Parse(payload.TenantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}

	req := service.RunRequest{
		TenantID: tenantID,
		Apply:    payload.Apply,
		Snapshot: payload.Snapshot,
	}

	if payload.AccountID != "" {
		accountID, err := uuid.Parse(payload.AccountID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account ID"})
			return
		}
		req.AccountID = &accountID
	}

	req.PeriodStart, err = time.Parse(dateLayout, payload.PeriodStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period start, expected yyyy-mm-dd"})
		return
	}
	req.PeriodEnd, err = time.Parse(dateLayout, payload.PeriodEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period end, expected yyyy-mm-dd"})
		return
	}

	report, err := h.service.Run(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrTargetNotOpen):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// Suggestions returns ranked fuzzy candidates for one bank transaction.
func (h *ReconciliationHandler) Suggestions(c *gin.Context) {
	txID, err := uuid.Parse(c.Param("transactionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return
	}
	tenantID, err := uuid.Parse(c.Query("tenant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}

	req := service.SuggestRequest{TenantID: tenantID, BankTransactionID: txID}

	if raw := c.Query("threshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid threshold"})
			return
		}
		req.Threshold = &threshold
	}
	if raw := c.Query("window_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window_days"})
			return
		}
		req.WindowDays = &days
	}

	candidates, err := h.service.Suggest(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "bank transaction not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": candidates})
}

// ManualMatch pairs one bank transaction with a reviewer-chosen target.
func (h *ReconciliationHandler) ManualMatch(c *gin.Context) {
	txID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return
	}

	var payload struct {
		TenantID      string `json:"tenant_id" binding:"required"`
		LedgerEntryID string `json:"ledger_entry_id"`
		DocumentID    string `json:"document_id"`
		PerformedBy   string `json:"performed_by" binding:"required"`
		Reason        string `json:"reason"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	tenantID, err := uuid.Parse(payload.TenantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}

	req := service.ManualMatchRequest{
		TenantID:          tenantID,
		BankTransactionID: txID,
		PerformedBy:       payload.PerformedBy,
		Reason:            payload.Reason,
	}
	if payload.LedgerEntryID != "" {
		entryID, err := uuid.Parse(payload.LedgerEntryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ledger entry ID"})
			return
		}
		req.LedgerEntryID = &entryID
	}
	if payload.DocumentID != "" {
		docID, err := uuid.Parse(payload.DocumentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document ID"})
			return
		}
		req.DocumentID = &docID
	}

	applied, err := h.service.ConfirmMatch(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTarget):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		case errors.Is(err, repository.ErrTargetNotOpen):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "transaction matched", "match": applied})
}

// Unmatch clears a bank transaction's applied match.
func (h *ReconciliationHandler) Unmatch(c *gin.Context) {
	txID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return
	}

	var payload struct {
		TenantID    string `json:"tenant_id" binding:"required"`
		PerformedBy string `json:"performed_by" binding:"required"`
		Reason      string `json:"reason"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	tenantID, err := uuid.Parse(payload.TenantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}

	if err := h.service.Unmatch(c.Request.Context(), tenantID, txID, payload.PerformedBy, payload.Reason); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "bank transaction not found"})
		case errors.Is(err, repository.ErrNotReconciled):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "match cleared"})
}

// ListSnapshots returns persisted report snapshots, newest first.
func (h *ReconciliationHandler) ListSnapshots(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Query("tenant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
	}

	snaps, err := h.service.Snapshots(c.Request.Context(), tenantID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots": snaps})
}

// GetSnapshot returns one persisted report snapshot.
func (h *ReconciliationHandler) GetSnapshot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid snapshot ID"})
		return
	}
	tenantID, err := uuid.Parse(c.Query("tenant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}

	snap, err := h.service.Snapshot(c.Request.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "snapshot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshot": snap})
}
