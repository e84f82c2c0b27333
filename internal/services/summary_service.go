package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chapterfund-backend/internal/cache"
	"chapterfund-backend/internal/ledger"
	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/repositories"
	"chapterfund-backend/internal/timeutil"
)

// SummaryService derives every read-side view: purpose summaries, pending
// contribution lists, reconciliation reports and cash positions. Nothing
// here writes; every figure is recomputed from the event tables, with Redis
// shaving repeat reads.
type SummaryService struct {
	TxRepo       *repositories.TransactionRepository
	MemberRepo   *repositories.MemberRepository
	PurposeRepo  *repositories.PurposeRepository
	CustodyRepo  *repositories.CustodyRepository
	MovementRepo *repositories.BankMovementRepository
}

func NewSummaryService(
	txRepo *repositories.TransactionRepository,
	memberRepo *repositories.MemberRepository,
	purposeRepo *repositories.PurposeRepository,
	custodyRepo *repositories.CustodyRepository,
	movementRepo *repositories.BankMovementRepository,
) *SummaryService {
	return &SummaryService{
		TxRepo:       txRepo,
		MemberRepo:   memberRepo,
		PurposeRepo:  purposeRepo,
		CustodyRepo:  custodyRepo,
		MovementRepo: movementRepo,
	}
}

const summaryTTL = 5 * time.Minute

// scopeKey renders the cache scope segment: "chapter:<id>" or "national".
func scopeKey(chapterID *int) string {
	if chapterID != nil {
		return fmt.Sprintf("chapter:%d", *chapterID)
	}
	return "national"
}

// PurposeSummaries reduces each active purpose's history for one chapter
func (s *SummaryService) PurposeSummaries(ctx context.Context, chapterID int) ([]models.PurposeSummary, error) {
	cacheKey := fmt.Sprintf(cache.ChapterSummaryKeyFmt, chapterID)
	if data, ok := cache.GetCached(ctx, cacheKey); ok {
		var cached []models.PurposeSummary
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	purposes, err := s.PurposeRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	activeMembers, err := s.MemberRepo.CountActive(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	var summaries []models.PurposeSummary
	for _, p := range purposes {
		if !p.IsActive {
			continue
		}
		txs, err := s.TxRepo.ListByPurpose(ctx, p.ID, &chapterID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ledger.Summarize(p, activeMembers, txs))
	}

	if data, err := json.Marshal(summaries); err == nil {
		cache.SetCached(ctx, cacheKey, data, summaryTTL)
	}
	return summaries, nil
}

// NationalPurposeSummaries rolls every active purpose up across all
// chapters: total collected association-wide, with the target derived from
// the association-wide active member count for per-member purposes.
func (s *SummaryService) NationalPurposeSummaries(ctx context.Context) ([]models.PurposeSummary, error) {
	if data, ok := cache.GetCached(ctx, cache.NationalSummaryKey); ok {
		var cached []models.PurposeSummary
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	purposes, err := s.PurposeRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	activeMembers, err := s.MemberRepo.CountActiveAll(ctx)
	if err != nil {
		return nil, err
	}

	var summaries []models.PurposeSummary
	for _, p := range purposes {
		if !p.IsActive {
			continue
		}
		txs, err := s.TxRepo.ListByPurpose(ctx, p.ID, nil)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ledger.Summarize(p, activeMembers, txs))
	}

	if data, err := json.Marshal(summaries); err == nil {
		cache.SetCached(ctx, cache.NationalSummaryKey, data, summaryTTL)
	}
	return summaries, nil
}

// PendingContributions lists members yet to cover a purpose's per-member
// expectation
func (s *SummaryService) PendingContributions(ctx context.Context, chapterID, purposeID int) ([]models.PendingContribution, error) {
	purpose, err := s.PurposeRepo.Get(ctx, purposeID)
	if err != nil {
		return nil, &ledger.ReferenceNotFoundError{Kind: "purpose", ID: purposeID}
	}

	members, err := s.MemberRepo.ListByChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	txs, err := s.TxRepo.ListByPurpose(ctx, purposeID, &chapterID)
	if err != nil {
		return nil, err
	}

	return ledger.PendingContributions(purpose, members, txs), nil
}

// AllPendingContributions merges the pending lists of every active purpose
// for one chapter, so the FS dashboard needs a single call.
func (s *SummaryService) AllPendingContributions(ctx context.Context, chapterID int) ([]models.PendingContribution, error) {
	purposes, err := s.PurposeRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	members, err := s.MemberRepo.ListByChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	txs, err := s.TxRepo.ListByChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	return ledger.AllPendingContributions(purposes, members, txs), nil
}

// Reconciliation diffs declared against confirmed at one boundary. A nil
// chapterID produces the national rollup across chapters.
func (s *SummaryService) Reconciliation(ctx context.Context, boundary models.Boundary, chapterID *int) (*models.ReconciliationReport, error) {
	if _, _, err := ledger.BoundaryRoles(boundary); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf(cache.ReconciliationKeyFmt, boundary, scopeKey(chapterID))
	if data, ok := cache.GetCached(ctx, cacheKey); ok {
		var cached models.ReconciliationReport
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	transfers, err := s.CustodyRepo.ListTransfers(ctx, boundary, chapterID)
	if err != nil {
		return nil, err
	}
	receipts, err := s.CustodyRepo.ListReceiptsForBoundary(ctx, boundary, chapterID)
	if err != nil {
		return nil, err
	}

	report := ledger.Reconcile(transfers, receipts)
	if data, err := json.Marshal(report); err == nil {
		cache.SetCached(ctx, cacheKey, data, summaryTTL)
	}
	return &report, nil
}

// ChapterCashPosition recomputes the chapter treasurer's cash and bank
// standing from the event history
func (s *SummaryService) ChapterCashPosition(ctx context.Context, chapterID int) (*models.CashPosition, error) {
	return s.cashPosition(ctx, models.ScopeChapter, &chapterID)
}

// NationalCashPosition recomputes the national treasurer's standing
func (s *SummaryService) NationalCashPosition(ctx context.Context) (*models.CashPosition, error) {
	return s.cashPosition(ctx, models.ScopeNational, nil)
}

func (s *SummaryService) cashPosition(ctx context.Context, scope models.CustodianScope, chapterID *int) (*models.CashPosition, error) {
	cacheKey := fmt.Sprintf(cache.CashPositionKeyFmt, scopeKey(chapterID))
	if data, ok := cache.GetCached(ctx, cacheKey); ok {
		var cached models.CashPosition
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	cash, bank, err := s.MovementRepo.Balances(ctx, scope, chapterID)
	if err != nil {
		return nil, err
	}
	position := &models.CashPosition{
		Scope:       scope,
		ChapterID:   chapterID,
		CashBalance: cash,
		BankBalance: bank,
		ComputedAt:  timeutil.Now(),
	}

	if data, err := json.Marshal(position); err == nil {
		cache.SetCached(ctx, cacheKey, data, summaryTTL)
	}
	return position, nil
}
