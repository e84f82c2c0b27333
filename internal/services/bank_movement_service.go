package services

import (
	"context"
	"errors"

	"chapterfund-backend/internal/cache"
	"chapterfund-backend/internal/ledger"
	"chapterfund-backend/internal/metrics"
	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/repositories"
	"chapterfund-backend/internal/stream"
	"chapterfund-backend/internal/timeutil"
)

// serializationRetries bounds how often a movement is replayed after a
// serialization conflict before the error is surfaced to the client.
const serializationRetries = 3

// BankMovementService records deposits and withdrawals under the solvency
// rule. The scope is derived from the actor's role: chapter treasurers move
// their chapter's money, the national treasurer moves national money.
type BankMovementService struct {
	Repo        *repositories.BankMovementRepository
	PurposeRepo *repositories.PurposeRepository
	Hub         *stream.Hub
}

func NewBankMovementService(repo *repositories.BankMovementRepository, purposeRepo *repositories.PurposeRepository, hub *stream.Hub) *BankMovementService {
	return &BankMovementService{Repo: repo, PurposeRepo: purposeRepo, Hub: hub}
}

// Record validates and persists a movement, retrying the solvency-checked
// insert when a concurrent commit aborts it
func (s *BankMovementService) Record(ctx context.Context, actorUserID int, actorRole string, actorChapterID *int, req *models.CreateBankMovementRequest) (*models.BankMovement, error) {
	if err := ledger.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.Type != models.MovementDeposit && req.Type != models.MovementWithdrawal {
		return nil, &ledger.ValidationError{Field: "movement_type", Reason: "must be DEPOSIT or WITHDRAWAL"}
	}

	scope, chapterID, err := movementScope(actorRole, actorChapterID)
	if err != nil {
		return nil, err
	}

	moveDate, err := timeutil.ParseInWAT(timeutil.DateLayout, req.MovementDate)
	if err != nil {
		return nil, &ledger.ValidationError{Field: "movement_date", Reason: "must be YYYY-MM-DD"}
	}

	purpose, err := s.PurposeRepo.Get(ctx, req.PurposeID)
	if err != nil || !purpose.IsActive {
		return nil, &ledger.ReferenceNotFoundError{Kind: "purpose", ID: req.PurposeID}
	}

	movement := &models.BankMovement{
		Scope:        scope,
		ChapterID:    chapterID,
		PurposeID:    req.PurposeID,
		Amount:       req.Amount,
		Type:         req.Type,
		MovementDate: moveDate,
		Reference:    req.Reference,
		RecordedBy:   actorUserID,
	}

	for attempt := 0; ; attempt++ {
		err = s.Repo.CreateChecked(ctx, movement)
		if err == nil {
			break
		}
		if errors.Is(err, ledger.ErrConcurrencyConflict) && attempt < serializationRetries {
			metrics.SerializationRetries.Inc()
			continue
		}
		var cashErr *ledger.InsufficientCashError
		var bankErr *ledger.InsufficientBankFundsError
		if errors.As(err, &cashErr) || errors.As(err, &bankErr) {
			metrics.SolvencyRejections.Inc()
		}
		return nil, err
	}

	cache.InvalidateLedgerCaches(ctx, chapterID)
	if s.Hub != nil {
		s.Hub.Publish(stream.Event{Kind: "bank_movement", ChapterID: chapterID, Payload: movement})
	}

	movement.PurposeName = purpose.Name
	return movement, nil
}

// movementScope maps the actor's role to the custody scope they bank for
func movementScope(role string, chapterID *int) (models.CustodianScope, *int, error) {
	switch role {
	case models.RoleChapterTreasurer:
		if chapterID == nil {
			return "", nil, &ledger.ValidationError{Field: "role", Reason: "chapter treasurer has no chapter binding"}
		}
		return models.ScopeChapter, chapterID, nil
	case models.RoleNationalTreasurer:
		return models.ScopeNational, nil, nil
	case models.RoleAdmin:
		// Admin acts at whichever scope their request context carries
		if chapterID != nil {
			return models.ScopeChapter, chapterID, nil
		}
		return models.ScopeNational, nil, nil
	}
	return "", nil, &ledger.ValidationError{Field: "role", Reason: "only treasurers record bank movements"}
}

// List returns movements visible to the actor's scope
func (s *BankMovementService) List(ctx context.Context, actorRole string, actorChapterID *int) ([]models.BankMovement, error) {
	scope, chapterID, err := movementScope(actorRole, actorChapterID)
	if err != nil {
		return nil, err
	}
	return s.Repo.List(ctx, scope, chapterID)
}
