package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger-reconciliation-backend/internal/models"
	"ledger-reconciliation-backend/internal/services/ingest"
)

// IngestHandler receives collaborator-normalized records: single rows over
// JSON and CSV files for background import.
type IngestHandler struct {
	service *ingest.Service
}

func NewIngestHandler(svc *ingest.Service) *IngestHandler {
	return &IngestHandler{service: svc}
}

func (h *IngestHandler) CreateBankTransaction(c *gin.Context) {
	var payload struct {
		TenantID              string          `json:"tenant_id" binding:"required"`
		AccountID             string          `json:"account_id" binding:"required"`
		ExternalTransactionID string          `json:"external_transaction_id" binding:"required"`
		TransactionDate       string          `json:"transaction_date" binding:"required"`
		Amount                decimal.Decimal `json:"amount"`
		Currency              string          `json:"currency" binding:"required"`
		Description           string          `json:"description"`
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
	accountID, err := uuid.Parse(payload.AccountID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account ID"})
		return
	}
	date, err := time.Parse(dateLayout, payload.TransactionDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction date, expected yyyy-mm-dd"})
		return
	}

	tx, err := h.service.AddBankTransaction(c.Request.Context(), ingest.BankTransactionInput{
		TenantID:              tenantID,
		AccountID:             accountID,
		ExternalTransactionID: payload.ExternalTransactionID,
		TransactionDate:       date,
		Amount:                payload.Amount,
		Currency:              payload.Currency,
		Description:           payload.Description,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "bank transaction created", "transaction": tx})
}

func (h *IngestHandler) CreateLedgerEntry(c *gin.Context) {
	var payload struct {
		TenantID        string          `json:"tenant_id" binding:"required"`
		AccountCode     string          `json:"account_code" binding:"required"`
		TransactionDate string          `json:"transaction_date" binding:"required"`
		Amount          decimal.Decimal `json:"amount"`
		EntryType       string          `json:"entry_type" binding:"required,oneof=debit credit"`
		Description     string          `json:"description"`
		DocumentID      string          `json:"document_id"`
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
	date, err := time.Parse(dateLayout, payload.TransactionDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction date, expected yyyy-mm-dd"})
		return
	}
	if payload.Amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ledger amounts are unsigned, use entry_type for direction"})
		return
	}

	in := ingest.LedgerEntryInput{
		TenantID:        tenantID,
		AccountCode:     payload.AccountCode,
		TransactionDate: date,
		Amount:          payload.Amount,
		EntryType:       models.EntryType(payload.EntryType),
		Description:     payload.Description,
	}
	if payload.DocumentID != "" {
		docID, err := uuid.Parse(payload.DocumentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document ID"})
			return
		}
		in.DocumentID = &docID
	}

	entry, err := h.service.AddLedgerEntry(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "ledger entry created", "entry": entry})
}

func (h *IngestHandler) CreateDocument(c *gin.Context) {
	var payload struct {
		TenantID       string          `json:"tenant_id" binding:"required"`
		FileName       string          `json:"file_name" binding:"required"`
		ExtractedTotal decimal.Decimal `json:"extracted_total"`
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
	if payload.ExtractedTotal.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "extracted total cannot be negative"})
		return
	}

	doc, err := h.service.AddDocument(c.Request.Context(), ingest.DocumentInput{
		TenantID:       tenantID,
		FileName:       payload.FileName,
		ExtractedTotal: payload.ExtractedTotal,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "document registered", "document": doc})
}

// UploadBankTransactions accepts a CSV file and imports it in the
// background. The response carries the batch id to poll for progress.
func (h *IngestHandler) UploadBankTransactions(c *gin.Context) {
	tenantID, err := uuid.Parse(c.PostForm("tenant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}
	accountID, err := uuid.Parse(c.PostForm("account_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account ID"})
		return
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	defer file.Close()

	batch, err := h.service.StartBankTransactionImport(c.Request.Context(), tenantID, accountID, header.Filename, file)
	if err != nil {
		if errors.Is(err, ingest.ErrBadFile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":    "import started",
		"batch_id":   batch.ID,
		"total_rows": batch.TotalRows,
	})
}

func (h *IngestHandler) UploadLedgerEntries(c *gin.Context) {
	tenantID, err := uuid.Parse(c.PostForm("tenant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	defer file.Close()

	batch, err := h.service.StartLedgerEntryImport(c.Request.Context(), tenantID, header.Filename, file)
	if err != nil {
		if errors.Is(err, ingest.ErrBadFile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":    "import started",
		"batch_id":   batch.ID,
		"total_rows": batch.TotalRows,
	})
}

// GetImportProgress reports how far a background import has come.
func (h *IngestHandler) GetImportProgress(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}
	tenantID, err := uuid.Parse(c.Query("tenant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}

	batch, err := h.service.ImportProgress(c.Request.Context(), tenantID, batchID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batch_id":        batch.ID,
		"status":          batch.Status,
		"total_rows":      batch.TotalRows,
		"processed_count": batch.ProcessedCount,
		"skipped_count":   batch.SkippedCount,
	})
}
