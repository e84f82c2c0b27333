package services

import (
	"context"
	"errors"

	"chapterfund-backend/internal/cache"
	"chapterfund-backend/internal/ledger"
	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/repositories"
)

type PurposeService struct {
	Repo *repositories.PurposeRepository
}

func NewPurposeService(repo *repositories.PurposeRepository) *PurposeService {
	return &PurposeService{Repo: repo}
}

func (s *PurposeService) Create(ctx context.Context, req *models.CreatePurposeRequest) (*models.Purpose, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.Level != models.PurposeLevelChapter && req.Level != models.PurposeLevelNational {
		return nil, errors.New("level must be CHAPTER or NATIONAL")
	}
	if req.TargetMode != "" && req.TargetMode != models.TargetPerMember && req.TargetMode != models.TargetFixed {
		return nil, errors.New("target_mode must be PER_MEMBER or FIXED")
	}
	if req.ExpectedAmount != nil {
		if err := ledger.ValidateAmount(*req.ExpectedAmount); err != nil {
			return nil, err
		}
	}

	purpose := &models.Purpose{
		Name:           req.Name,
		Level:          req.Level,
		ExpectedAmount: req.ExpectedAmount,
		TargetMode:     req.TargetMode,
	}
	if err := s.Repo.Create(ctx, purpose); err != nil {
		return nil, err
	}

	cache.InvalidatePurposeCaches(ctx)
	return purpose, nil
}

// targetChanged reports whether an update alters the purpose's target. Name
// changes alone never trip the edit guard.
func targetChanged(req *models.UpdatePurposeRequest, p *models.Purpose) bool {
	if req.TargetMode != "" && req.TargetMode != p.TargetMode {
		return true
	}
	if req.ExpectedAmount == nil || p.ExpectedAmount == nil {
		return req.ExpectedAmount != nil || p.ExpectedAmount != nil
	}
	return *req.ExpectedAmount != *p.ExpectedAmount
}

// Update renames a purpose and, while nothing references it yet, retunes
// its target. Once a ledger row references the purpose the target is
// locked: realization figures must keep meaning the same thing over time.
func (s *PurposeService) Update(ctx context.Context, id int, req *models.UpdatePurposeRequest) (*models.Purpose, error) {
	purpose, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, errors.New("purpose not found")
	}
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.TargetMode != "" && req.TargetMode != models.TargetPerMember && req.TargetMode != models.TargetFixed {
		return nil, errors.New("target_mode must be PER_MEMBER or FIXED")
	}
	if req.ExpectedAmount != nil {
		if err := ledger.ValidateAmount(*req.ExpectedAmount); err != nil {
			return nil, err
		}
	}

	if targetChanged(req, purpose) {
		referenced, err := s.Repo.HasTransactions(ctx, id)
		if err != nil {
			return nil, err
		}
		if referenced {
			return nil, errors.New("target is locked once ledger records reference the purpose")
		}
	}

	purpose.Name = req.Name
	purpose.ExpectedAmount = req.ExpectedAmount
	if req.TargetMode != "" {
		purpose.TargetMode = req.TargetMode
	}
	if err := s.Repo.Update(ctx, purpose); err != nil {
		return nil, err
	}

	cache.InvalidatePurposeCaches(ctx)
	return purpose, nil
}

func (s *PurposeService) Get(ctx context.Context, id int) (*models.Purpose, error) {
	return s.Repo.Get(ctx, id)
}

func (s *PurposeService) List(ctx context.Context, level models.PurposeLevel) ([]*models.Purpose, error) {
	return s.Repo.List(ctx, level)
}

// Deactivate retires a purpose. Removal is never offered: once a single
// ledger row references the purpose the history must keep resolving.
func (s *PurposeService) Deactivate(ctx context.Context, id int) error {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return errors.New("purpose not found")
	}
	if err := s.Repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	cache.InvalidatePurposeCaches(ctx)
	return nil
}

// Reactivate reopens a retired purpose for new transactions
func (s *PurposeService) Reactivate(ctx context.Context, id int) error {
	if err := s.Repo.SetActive(ctx, id, true); err != nil {
		return err
	}
	cache.InvalidatePurposeCaches(ctx)
	return nil
}
