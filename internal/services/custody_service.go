package services

import (
	"context"
	"fmt"

	"chapterfund-backend/internal/cache"
	"chapterfund-backend/internal/ledger"
	"chapterfund-backend/internal/metrics"
	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/repositories"
	"chapterfund-backend/internal/stream"
	"chapterfund-backend/internal/timeutil"
)

// CustodyService runs the declare/confirm handshake at every boundary of the
// custody chain. The sender's declaration and the receiver's confirmation
// are independent records; reconciliation reads both.
type CustodyService struct {
	Repo        *repositories.CustodyRepository
	PurposeRepo *repositories.PurposeRepository
	Hub         *stream.Hub
}

func NewCustodyService(repo *repositories.CustodyRepository, purposeRepo *repositories.PurposeRepository, hub *stream.Hub) *CustodyService {
	return &CustodyService{Repo: repo, PurposeRepo: purposeRepo, Hub: hub}
}

// Declare records that the actor handed funds across a boundary. The amount
// is deliberately not checked against holdings; over-declaration must
// surface in reconciliation, not be blocked here.
func (s *CustodyService) Declare(ctx context.Context, actorUserID int, actorRole string, actorChapterID *int, req *models.DeclareTransferRequest) (*models.CustodyTransfer, error) {
	if err := ledger.ValidateDeclare(req.Boundary, actorRole, req.Amount); err != nil {
		return nil, err
	}

	// Chapter scope comes from the actor, never the request body
	var chapterID *int
	if ledger.BoundaryIsChapterScoped(req.Boundary) {
		if actorChapterID == nil {
			return nil, &ledger.ValidationError{Field: "boundary", Reason: "chapter boundary requires a chapter-bound actor"}
		}
		chapterID = actorChapterID
	}

	purpose, err := s.PurposeRepo.Get(ctx, req.PurposeID)
	if err != nil || !purpose.IsActive {
		return nil, &ledger.ReferenceNotFoundError{Kind: "purpose", ID: req.PurposeID}
	}

	reference := req.Reference
	if reference == "" {
		reference = generateReference()
	}

	transfer := &models.CustodyTransfer{
		Boundary:       req.Boundary,
		ChapterID:      chapterID,
		PurposeID:      req.PurposeID,
		AmountDeclared: req.Amount,
		Reference:      reference,
		DeclaredBy:     actorUserID,
	}
	if err := s.Repo.CreateTransfer(ctx, transfer); err != nil {
		return nil, err
	}

	metrics.TransfersDeclared.WithLabelValues(string(transfer.Boundary)).Inc()
	cache.InvalidateLedgerCaches(ctx, chapterID)
	if s.Hub != nil {
		s.Hub.Publish(stream.Event{Kind: "transfer", ChapterID: chapterID, Payload: transfer})
	}

	transfer.PurposeName = purpose.Name
	return transfer, nil
}

// generateReference builds a voucher number for declarations made without a
// bank slip. Uniqueness is enforced by the database constraint.
func generateReference() string {
	return fmt.Sprintf("TRF-%s", timeutil.Now().Format("20060102-150405.000"))
}

// Confirm records the receiver's count for a pending transfer. Partial or
// excess amounts are accepted: the point is recording what was actually
// received, and letting reconciliation show the gap.
func (s *CustodyService) Confirm(ctx context.Context, transferID, actorUserID int, actorRole string, actorChapterID *int, req *models.ConfirmReceiptRequest) (*models.CustodyReceipt, error) {
	transfer, err := s.Repo.GetTransfer(ctx, transferID)
	if err != nil {
		return nil, &ledger.ReferenceNotFoundError{Kind: "transfer", ID: transferID}
	}

	if err := ledger.ValidateConfirm(transfer, actorRole, req.AmountConfirmed); err != nil {
		return nil, err
	}

	// A chapter treasurer only confirms their own chapter's handovers
	if actorRole == models.RoleChapterTreasurer {
		if actorChapterID == nil || transfer.ChapterID == nil || *transfer.ChapterID != *actorChapterID {
			return nil, &ledger.ValidationError{Field: "transfer_id", Reason: "transfer belongs to another chapter"}
		}
	}

	receipt := &models.CustodyReceipt{
		TransferID:      transferID,
		AmountConfirmed: req.AmountConfirmed,
		ConfirmedBy:     actorUserID,
	}
	if err := s.Repo.ConfirmTransfer(ctx, receipt); err != nil {
		return nil, err
	}

	metrics.ReceiptsConfirmed.WithLabelValues(string(transfer.Boundary)).Inc()
	cache.InvalidateLedgerCaches(ctx, transfer.ChapterID)
	if s.Hub != nil {
		s.Hub.Publish(stream.Event{Kind: "receipt", ChapterID: transfer.ChapterID, Payload: receipt})
	}

	return receipt, nil
}

// GetTransfer returns one transfer with its receipt when present
func (s *CustodyService) GetTransfer(ctx context.Context, id int) (*models.CustodyTransfer, *models.CustodyReceipt, error) {
	transfer, err := s.Repo.GetTransfer(ctx, id)
	if err != nil {
		return nil, nil, &ledger.ReferenceNotFoundError{Kind: "transfer", ID: id}
	}
	receipt, err := s.Repo.GetReceipt(ctx, id)
	if err != nil {
		return transfer, nil, nil // pending, no receipt yet
	}
	return transfer, receipt, nil
}

// ListTransfers returns transfers at a boundary, chapter-scoped for chapter
// actors
func (s *CustodyService) ListTransfers(ctx context.Context, boundary models.Boundary, chapterID *int) ([]models.CustodyTransfer, error) {
	if _, _, err := ledger.BoundaryRoles(boundary); err != nil {
		return nil, err
	}
	return s.Repo.ListTransfers(ctx, boundary, chapterID)
}

// ListPending returns the receiver's confirmation backlog, oldest first
func (s *CustodyService) ListPending(ctx context.Context, boundary models.Boundary, chapterID *int) ([]models.CustodyTransfer, error) {
	if _, _, err := ledger.BoundaryRoles(boundary); err != nil {
		return nil, err
	}
	return s.Repo.ListPendingTransfers(ctx, boundary, chapterID)
}
