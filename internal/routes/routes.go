package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	handler "ledger-reconciliation-backend/internal/handlers"
	"ledger-reconciliation-backend/internal/repository"
	"ledger-reconciliation-backend/internal/services/ingest"
	service "ledger-reconciliation-backend/internal/services/reconciliation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *slog.Logger) {
	recordRepo := repository.NewRecordRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	ingestRepo := repository.NewIngestRepository(db)

	reconService := service.NewService(recordRepo, snapshotRepo, logger)
	ingestService := ingest.NewService(ingestRepo, logger)

	reconHandler := handler.NewReconciliationHandler(reconService)
	ingestHandler := handler.NewIngestHandler(ingestService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Reconciliation routes
	recon := api.Group("/reconciliation")
	recon.POST("/run", reconHandler.Run)
	recon.GET("/suggestions/:transactionId", reconHandler.Suggestions)
	recon.GET("/snapshots", reconHandler.ListSnapshots)
	recon.GET("/snapshots/:id", reconHandler.GetSnapshot)
	recon.GET("/imports/:batchId", ingestHandler.GetImportProgress)

	// Transaction-level routes
	tx := api.Group("/transactions")
	tx.POST("/:id/match", reconHandler.ManualMatch)
	tx.POST("/:id/unmatch", reconHandler.Unmatch)

	// Record ingest routes
	bank := api.Group("/bank-transactions")
	bank.POST("", ingestHandler.CreateBankTransaction)
	bank.POST("/upload", ingestHandler.UploadBankTransactions)

	ledger := api.Group("/ledger-entries")
	ledger.POST("", ingestHandler.CreateLedgerEntry)
	ledger.POST("/upload", ingestHandler.UploadLedgerEntries)

	api.POST("/documents", ingestHandler.CreateDocument)
}
