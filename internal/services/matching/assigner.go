package matching

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"ledger-reconciliation-backend/internal/models"
)

// Pair is one accepted pairing from a strict pass.
type Pair struct {
	BankTransaction models.BankTransaction
	Candidate       Candidate
	Score           Score
}

// Assignment is the outcome of one conflict-free strict pass over a record
// window.
type Assignment struct {
	Pairs           []Pair
	UnmatchedBank   []models.BankTransaction
	UnmatchedLedger []models.LedgerEntry
}

type scoredCandidate struct {
	Candidate Candidate
	Score     Score
}

// Assign runs the deterministic greedy pass. Bank transactions are visited
// in date, amount, id order; each takes the first candidate whose target is
// not yet consumed, not the best-scoring one, and a consumed target is
// excluded for the rest of the pass. Scoring fans out over a bounded worker
// pool, assignment itself stays single-threaded.
func Assign(txs []models.BankTransaction, entries []models.LedgerEntry, docs []models.CandidateDocument, cfg Config) Assignment {
	ordered := sortTransactions(txs)
	orderedEntries := sortEntries(entries)

	lists := scoreAll(ordered, orderedEntries, docs, cfg)

	consumed := make(map[uuid.UUID]bool)
	var a Assignment
	for i, tx := range ordered {
		var chosen *scoredCandidate
		for j := range lists[i] {
			if !consumed[lists[i][j].Candidate.TargetID] {
				chosen = &lists[i][j]
				break
			}
		}
		if chosen == nil {
			a.UnmatchedBank = append(a.UnmatchedBank, tx)
			continue
		}
		consumed[chosen.Candidate.TargetID] = true
		a.Pairs = append(a.Pairs, Pair{
			BankTransaction: tx,
			Candidate:       chosen.Candidate,
			Score:           chosen.Score,
		})
	}

	for _, e := range orderedEntries {
		if !consumed[e.ID] {
			a.UnmatchedLedger = append(a.UnmatchedLedger, e)
		}
	}
	return a
}

// Rank scores every candidate for one bank transaction and returns those at
// or above MinSimilarity, best first. Nothing is consumed or locked; the
// reviewer confirming a suggestion makes the commitment.
func Rank(tx models.BankTransaction, entries []models.LedgerEntry, docs []models.CandidateDocument, cfg Config) []models.MatchCandidate {
	scored := scoreCandidates(tx, entries, docs, cfg)

	out := make([]models.MatchCandidate, 0, len(scored))
	for _, sc := range scored {
		if sc.Score.Similarity < cfg.MinSimilarity {
			continue
		}
		out = append(out, models.MatchCandidate{
			TargetID:     sc.Candidate.TargetID,
			TargetType:   sc.Candidate.TargetType,
			Similarity:   sc.Score.Similarity,
			MatchReasons: sc.Score.Reasons,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		if out[i].TargetType != out[j].TargetType {
			return out[i].TargetType == models.TargetLedgerEntry
		}
		return out[i].TargetID.String() < out[j].TargetID.String()
	})
	return out
}

// scoreAll generates and scores candidates for every transaction. Each
// transaction is independent of the others here, so the work spreads over
// cfg.Workers goroutines and fans back in before assignment.
func scoreAll(txs []models.BankTransaction, entries []models.LedgerEntry, docs []models.CandidateDocument, cfg Config) [][]scoredCandidate {
	lists := make([][]scoredCandidate, len(txs))

	workers := cfg.Workers
	if workers > len(txs) {
		workers = len(txs)
	}
	if workers <= 1 {
		for i, tx := range txs {
			lists[i] = scoreCandidates(tx, entries, docs, cfg)
		}
		return lists
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				lists[i] = scoreCandidates(txs[i], entries, docs, cfg)
			}
		}()
	}
	for i := range txs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return lists
}

func scoreCandidates(tx models.BankTransaction, entries []models.LedgerEntry, docs []models.CandidateDocument, cfg Config) []scoredCandidate {
	cands := CandidatesFor(tx, entries, docs, cfg)
	out := make([]scoredCandidate, 0, len(cands))
	for _, c := range cands {
		out = append(out, scoredCandidate{Candidate: c, Score: ScorePair(tx, c)})
	}
	return out
}

func sortTransactions(txs []models.BankTransaction) []models.BankTransaction {
	out := make([]models.BankTransaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.Before(out[j].TransactionDate)
		}
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.LessThan(out[j].Amount)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func sortEntries(entries []models.LedgerEntry) []models.LedgerEntry {
	out := make([]models.LedgerEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.Before(out[j].TransactionDate)
		}
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.LessThan(out[j].Amount)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
