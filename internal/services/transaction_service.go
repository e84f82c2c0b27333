package services

import (
	"context"
	"time"

	"chapterfund-backend/internal/cache"
	"chapterfund-backend/internal/ledger"
	"chapterfund-backend/internal/metrics"
	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/repositories"
	"chapterfund-backend/internal/stream"
	"chapterfund-backend/internal/timeutil"
)

// TransactionService records member contributions and disbursements. Records
// are immutable; there is no update or delete path, corrections are new
// dated records.
type TransactionService struct {
	Repo        *repositories.TransactionRepository
	MemberRepo  *repositories.MemberRepository
	PurposeRepo *repositories.PurposeRepository
	Hub         *stream.Hub
}

func NewTransactionService(
	repo *repositories.TransactionRepository,
	memberRepo *repositories.MemberRepository,
	purposeRepo *repositories.PurposeRepository,
	hub *stream.Hub,
) *TransactionService {
	return &TransactionService{
		Repo:        repo,
		MemberRepo:  memberRepo,
		PurposeRepo: purposeRepo,
		Hub:         hub,
	}
}

// Record writes one ledger event for a member in the actor's chapter.
// actorChapterID comes from the authenticated user, not the request.
func (s *TransactionService) Record(ctx context.Context, actorChapterID, actorUserID int, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if err := ledger.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.Type != models.TransactionCollection && req.Type != models.TransactionDisbursement {
		return nil, &ledger.ValidationError{Field: "transaction_type", Reason: "must be COLLECTION or DISBURSEMENT"}
	}
	if req.Destination != models.DestinationChapter && req.Destination != models.DestinationNational {
		return nil, &ledger.ValidationError{Field: "destination", Reason: "must be CHAPTER or NATIONAL"}
	}

	txDate, err := timeutil.ParseInWAT(timeutil.DateLayout, req.TransactionDate)
	if err != nil {
		return nil, &ledger.ValidationError{Field: "transaction_date", Reason: "must be YYYY-MM-DD"}
	}

	member, err := s.MemberRepo.Get(ctx, req.MemberID)
	if err != nil || !member.IsActive {
		return nil, &ledger.ReferenceNotFoundError{Kind: "member", ID: req.MemberID}
	}
	// Members can only be recorded against by their own chapter
	if member.ChapterID != actorChapterID {
		return nil, &ledger.ValidationError{Field: "member_id", Reason: "member belongs to another chapter"}
	}

	purpose, err := s.PurposeRepo.Get(ctx, req.PurposeID)
	if err != nil || !purpose.IsActive {
		return nil, &ledger.ReferenceNotFoundError{Kind: "purpose", ID: req.PurposeID}
	}

	tx := &models.Transaction{
		MemberID:        req.MemberID,
		PurposeID:       req.PurposeID,
		ChapterID:       actorChapterID,
		Amount:          req.Amount,
		Type:            req.Type,
		Destination:     req.Destination,
		TransactionDate: txDate,
		RecordedBy:      actorUserID,
	}
	if err := s.Repo.Create(ctx, tx); err != nil {
		return nil, err
	}

	metrics.ContributionsRecorded.WithLabelValues(string(tx.Type)).Inc()
	cache.InvalidateLedgerCaches(ctx, &actorChapterID)
	if s.Hub != nil {
		s.Hub.Publish(stream.Event{Kind: "transaction", ChapterID: &actorChapterID, Payload: tx})
	}

	tx.MemberName = member.FullName
	tx.PurposeName = purpose.Name
	return tx, nil
}

// ListByChapter returns the chapter ledger, newest first
func (s *TransactionService) ListByChapter(ctx context.Context, chapterID int) ([]models.Transaction, error) {
	return s.Repo.ListByChapter(ctx, chapterID)
}

// ListByDestination narrows the chapter ledger to one collection tier
func (s *TransactionService) ListByDestination(ctx context.Context, chapterID int, dest models.Destination) ([]models.Transaction, error) {
	return s.Repo.ListByChapterAndDestination(ctx, chapterID, dest)
}

// ListByDateRange returns the chapter ledger within an inclusive window
func (s *TransactionService) ListByDateRange(ctx context.Context, chapterID int, from, to time.Time) ([]models.Transaction, error) {
	return s.Repo.ListByDateRange(ctx, chapterID, from, to)
}

// MemberLedger assembles a member's statement with per-purpose standing
func (s *TransactionService) MemberLedger(ctx context.Context, memberID int) (*models.MemberLedger, error) {
	member, err := s.MemberRepo.Get(ctx, memberID)
	if err != nil {
		return nil, &ledger.ReferenceNotFoundError{Kind: "member", ID: memberID}
	}

	txs, err := s.Repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	// Standing against every active bounded purpose
	purposes, err := s.PurposeRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}

	var standing []models.PendingContribution
	for _, p := range purposes {
		if !p.IsActive || p.ExpectedAmount == nil {
			continue
		}
		paid := ledger.AmountPaid(memberID, p.ID, txs)
		standing = append(standing, models.PendingContribution{
			MemberID:         member.ID,
			FullName:         member.FullName,
			MembershipNumber: member.MembershipNumber,
			PurposeID:        p.ID,
			PurposeName:      p.Name,
			ExpectedAmount:   *p.ExpectedAmount,
			AmountPaid:       paid,
			Balance:          ledger.MemberBalance(p, paid),
		})
	}

	return &models.MemberLedger{
		Member:       member,
		Transactions: txs,
		Standing:     standing,
	}, nil
}
