package reconciliation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"ledger-reconciliation-backend/internal/models"
	"ledger-reconciliation-backend/internal/services/matching"
)

// Service drives full reconciliation runs, interactive suggestions and the
// manual match operations. It keeps no per-run state: every invocation
// loads a fresh window through RecordSource, so concurrent runs for
// different tenants or periods share nothing above the database.
type Service struct {
	records   RecordSource
	snapshots SnapshotStore
	strict    matching.Config
	fuzzy     matching.Config
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewService wires a reconciliation service with the default strict and
// fuzzy matching profiles.
func NewService(records RecordSource, snapshots SnapshotStore, logger *slog.Logger) *Service {
	return &Service{
		records:   records,
		snapshots: snapshots,
		strict:    matching.StrictConfig(),
		fuzzy:     matching.FuzzyConfig(),
		logger:    logger,
		tracer:    otel.Tracer("reconciliation"),
	}
}

// RunRequest identifies one reconciliation window and what to do with the
// outcome. Apply persists the accepted matches; Snapshot stores the built
// report as an immutable audit copy.
type RunRequest struct {
	TenantID    uuid.UUID
	AccountID   *uuid.UUID
	PeriodStart time.Time
	PeriodEnd   time.Time
	Apply       bool
	Snapshot    bool
}

// Run executes one strict pass over the requested window and returns the
// reconciliation report. Records reconciled by earlier runs keep their
// pairing and pre-seed the exclusion set, so re-running a period is
// idempotent.
func (s *Service) Run(ctx context.Context, req RunRequest) (*models.ReconciliationReport, error) {
	ctx, span := s.tracer.Start(ctx, "reconciliation.Run")
	defer span.End()

	if err := validateWindow(req); err != nil {
		return nil, err
	}

	window, err := s.loadWindow(ctx, req)
	if err != nil {
		return nil, err
	}

	matched, elsewhere, openTxs, openEntries, openDocs := partitionWindow(window)

	assignment := s.assign(ctx, openTxs, openEntries, openDocs)

	applied := make([]models.AppliedMatch, 0, len(assignment.Pairs))
	for _, p := range assignment.Pairs {
		applied = append(applied, models.AppliedMatch{
			BankTransactionID: p.BankTransaction.ID,
			TargetID:          p.Candidate.TargetID,
			TargetType:        p.Candidate.TargetType,
			Similarity:        p.Score.Similarity,
			MatchReasons:      p.Score.Reasons,
		})
		matched = append(matched, matchedRecord{
			tx:         p.BankTransaction,
			targetID:   p.Candidate.TargetID,
			targetType: p.Candidate.TargetType,
			residual:   p.BankTransaction.Amount.Sub(p.Candidate.Amount).Abs(),
		})
	}

	if req.Apply && len(applied) > 0 {
		if err := s.applyMatches(ctx, req.TenantID, applied); err != nil {
			return nil, err
		}
	}

	report := buildReport(window, req.PeriodStart, req.PeriodEnd, matched, elsewhere, assignment.UnmatchedBank, assignment.UnmatchedLedger)

	if req.Snapshot {
		if err := s.saveSnapshot(ctx, req, &report); err != nil {
			return nil, err
		}
	}

	s.logger.Info("reconciliation run complete",
		"tenant_id", req.TenantID,
		"period_start", req.PeriodStart.Format("2006-01-02"),
		"period_end", req.PeriodEnd.Format("2006-01-02"),
		"matched", report.Matched,
		"unmatched", report.Unmatched,
		"applied", req.Apply && len(applied) > 0,
	)
	return &report, nil
}

// SuggestRequest tunes one interactive suggestion query. Nil Threshold and
// WindowDays keep the fuzzy profile defaults.
type SuggestRequest struct {
	TenantID          uuid.UUID
	BankTransactionID uuid.UUID
	Threshold         *float64
	WindowDays        *int
}

// Suggest returns ranked fuzzy candidates for one bank transaction. Nothing
// is consumed or locked; confirming a suggestion is a separate, explicit
// call.
func (s *Service) Suggest(ctx context.Context, req SuggestRequest) ([]models.MatchCandidate, error) {
	ctx, span := s.tracer.Start(ctx, "reconciliation.Suggest")
	defer span.End()

	cfg := s.fuzzy
	if req.Threshold != nil {
		cfg.MinSimilarity = *req.Threshold
	}
	if req.WindowDays != nil {
		cfg.DateWindowDays = *req.WindowDays
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWindow, err)
	}

	tx, err := s.records.GetBankTransaction(ctx, req.TenantID, req.BankTransactionID)
	if err != nil {
		return nil, fmt.Errorf("load bank transaction: %w", err)
	}

	start := tx.TransactionDate.AddDate(0, 0, -cfg.DateWindowDays)
	end := tx.TransactionDate.AddDate(0, 0, cfg.DateWindowDays)
	window, err := s.records.LoadWindow(ctx, req.TenantID, nil, start, end)
	if err != nil {
		return nil, fmt.Errorf("load record window: %w", err)
	}

	_, _, _, openEntries, openDocs := partitionWindow(window)
	return matching.Rank(*tx, openEntries, openDocs, cfg), nil
}

// ManualMatchRequest is a reviewer's explicit pairing decision. Exactly one
// of LedgerEntryID and DocumentID must be set.
type ManualMatchRequest struct {
	TenantID          uuid.UUID
	BankTransactionID uuid.UUID
	LedgerEntryID     *uuid.UUID
	DocumentID        *uuid.UUID
	PerformedBy       string
	Reason            string
}

// ConfirmMatch applies one reviewer-chosen pairing. The pair is scored so
// the persisted details stay explainable, but the score never overrides the
// reviewer.
func (s *Service) ConfirmMatch(ctx context.Context, req ManualMatchRequest) (*models.AppliedMatch, error) {
	ctx, span := s.tracer.Start(ctx, "reconciliation.ConfirmMatch")
	defer span.End()

	if (req.LedgerEntryID == nil) == (req.DocumentID == nil) {
		return nil, ErrInvalidTarget
	}

	tx, err := s.records.GetBankTransaction(ctx, req.TenantID, req.BankTransactionID)
	if err != nil {
		return nil, fmt.Errorf("load bank transaction: %w", err)
	}

	var cand matching.Candidate
	if req.LedgerEntryID != nil {
		entry, err := s.records.GetLedgerEntry(ctx, req.TenantID, *req.LedgerEntryID)
		if err != nil {
			return nil, fmt.Errorf("load ledger entry: %w", err)
		}
		cand = matching.Candidate{
			TargetID:    entry.ID,
			TargetType:  models.TargetLedgerEntry,
			Amount:      entry.SignedAmount(),
			Date:        entry.TransactionDate,
			Description: entry.Description,
		}
	} else {
		doc, err := s.records.GetDocument(ctx, req.TenantID, *req.DocumentID)
		if err != nil {
			return nil, fmt.Errorf("load document: %w", err)
		}
		amt := doc.ExtractedTotal
		if tx.Amount.IsNegative() {
			amt = amt.Neg()
		}
		cand = matching.Candidate{
			TargetID:    doc.ID,
			TargetType:  models.TargetDocument,
			Amount:      amt,
			Date:        doc.CreatedAt,
			Description: doc.FileName,
		}
	}

	score := matching.ScorePair(*tx, cand)
	applied := models.AppliedMatch{
		BankTransactionID: tx.ID,
		TargetID:          cand.TargetID,
		TargetType:        cand.TargetType,
		Similarity:        score.Similarity,
		MatchReasons:      score.Reasons,
	}
	if err := s.records.ConfirmMatch(ctx, req.TenantID, applied, req.PerformedBy, req.Reason); err != nil {
		return nil, fmt.Errorf("confirm match: %w", err)
	}

	s.logger.Info("manual match confirmed",
		"tenant_id", req.TenantID,
		"bank_transaction_id", req.BankTransactionID,
		"target_id", cand.TargetID,
		"target_type", cand.TargetType,
		"similarity", score.Similarity,
	)
	return &applied, nil
}

// Unmatch clears a bank transaction's reconciliation state and reopens its
// target for future passes.
func (s *Service) Unmatch(ctx context.Context, tenantID, bankTransactionID uuid.UUID, performedBy, reason string) error {
	ctx, span := s.tracer.Start(ctx, "reconciliation.Unmatch")
	defer span.End()

	if err := s.records.ClearMatch(ctx, tenantID, bankTransactionID, performedBy, reason); err != nil {
		return fmt.Errorf("clear match: %w", err)
	}

	s.logger.Info("match cleared",
		"tenant_id", tenantID,
		"bank_transaction_id", bankTransactionID,
	)
	return nil
}

// Snapshots lists persisted report snapshots for a tenant, newest first.
func (s *Service) Snapshots(ctx context.Context, tenantID uuid.UUID, limit int) ([]models.ReportSnapshot, error) {
	snaps, err := s.snapshots.List(ctx, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list report snapshots: %w", err)
	}
	return snaps, nil
}

// Snapshot returns one persisted report snapshot.
func (s *Service) Snapshot(ctx context.Context, tenantID, id uuid.UUID) (*models.ReportSnapshot, error) {
	snap, err := s.snapshots.Get(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("get report snapshot: %w", err)
	}
	return snap, nil
}

func validateWindow(req RunRequest) error {
	if req.TenantID == uuid.Nil {
		return fmt.Errorf("%w: tenant id is required", ErrInvalidWindow)
	}
	if req.PeriodStart.IsZero() || req.PeriodEnd.IsZero() {
		return fmt.Errorf("%w: period bounds are required", ErrInvalidWindow)
	}
	if req.PeriodEnd.Before(req.PeriodStart) {
		return fmt.Errorf("%w: period end %s is before period start %s",
			ErrInvalidWindow,
			req.PeriodEnd.Format("2006-01-02"),
			req.PeriodStart.Format("2006-01-02"))
	}
	return nil
}

// partitionWindow splits a loaded window into records still open for
// matching and records reconciled earlier. Earlier matches keep their
// targets out of the candidate pool; entries flagged reconciled whose bank
// transaction lies outside the window are reported separately so the item
// list still covers them.
func partitionWindow(window *models.RecordWindow) (matched []matchedRecord, elsewhere []models.LedgerEntry, openTxs []models.BankTransaction, openEntries []models.LedgerEntry, openDocs []models.CandidateDocument) {
	entriesByID := make(map[uuid.UUID]models.LedgerEntry, len(window.LedgerEntries))
	for _, e := range window.LedgerEntries {
		entriesByID[e.ID] = e
	}
	docsByID := make(map[uuid.UUID]models.CandidateDocument, len(window.Documents))
	for _, d := range window.Documents {
		docsByID[d.ID] = d
	}

	consumed := make(map[uuid.UUID]bool)
	for _, tx := range window.BankTransactions {
		if !tx.Reconciled || tx.ReconciledWith == nil {
			openTxs = append(openTxs, tx)
			continue
		}
		target := *tx.ReconciledWith
		consumed[target] = true

		rec := matchedRecord{tx: tx, targetID: target, targetType: models.TargetLedgerEntry}
		var details models.MatchDetails
		if len(tx.MatchDetails) > 0 && json.Unmarshal(tx.MatchDetails, &details) == nil && details.TargetType != "" {
			rec.targetType = details.TargetType
		}
		switch rec.targetType {
		case models.TargetDocument:
			if d, ok := docsByID[target]; ok {
				amt := d.ExtractedTotal
				if tx.Amount.IsNegative() {
					amt = amt.Neg()
				}
				rec.residual = tx.Amount.Sub(amt).Abs()
			}
		default:
			if e, ok := entriesByID[target]; ok {
				rec.residual = tx.Amount.Sub(e.SignedAmount()).Abs()
			}
		}
		matched = append(matched, rec)
	}

	for _, e := range window.LedgerEntries {
		if consumed[e.ID] {
			continue
		}
		if e.Reconciled {
			elsewhere = append(elsewhere, e)
			continue
		}
		openEntries = append(openEntries, e)
	}
	for _, d := range window.Documents {
		if consumed[d.ID] {
			continue
		}
		openDocs = append(openDocs, d)
	}
	return matched, elsewhere, openTxs, openEntries, openDocs
}

func (s *Service) loadWindow(ctx context.Context, req RunRequest) (*models.RecordWindow, error) {
	ctx, span := s.tracer.Start(ctx, "reconciliation.loadWindow")
	defer span.End()

	window, err := s.records.LoadWindow(ctx, req.TenantID, req.AccountID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("load record window: %w", err)
	}
	return window, nil
}

func (s *Service) assign(ctx context.Context, txs []models.BankTransaction, entries []models.LedgerEntry, docs []models.CandidateDocument) matching.Assignment {
	_, span := s.tracer.Start(ctx, "reconciliation.assign")
	defer span.End()

	return matching.Assign(txs, entries, docs, s.strict)
}

func (s *Service) applyMatches(ctx context.Context, tenantID uuid.UUID, applied []models.AppliedMatch) error {
	ctx, span := s.tracer.Start(ctx, "reconciliation.applyMatches")
	defer span.End()

	if err := s.records.ApplyMatches(ctx, tenantID, applied); err != nil {
		return fmt.Errorf("apply matches: %w", err)
	}
	return nil
}

func (s *Service) saveSnapshot(ctx context.Context, req RunRequest, report *models.ReconciliationReport) error {
	ctx, span := s.tracer.Start(ctx, "reconciliation.saveSnapshot")
	defer span.End()

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report snapshot: %w", err)
	}
	snap := &models.ReportSnapshot{
		ID:          uuid.New(),
		TenantID:    req.TenantID,
		AccountID:   req.AccountID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		GeneratedAt: time.Now().UTC(),
		Report:      payload,
	}
	if err := s.snapshots.Create(ctx, snap); err != nil {
		return fmt.Errorf("store report snapshot: %w", err)
	}
	return nil
}
