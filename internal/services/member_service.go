package services

import (
	"context"
	"errors"

	"chapterfund-backend/internal/cache"
	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/repositories"
)

type MemberService struct {
	Repo        *repositories.MemberRepository
	ChapterRepo *repositories.ChapterRepository
}

func NewMemberService(repo *repositories.MemberRepository, chapterRepo *repositories.ChapterRepository) *MemberService {
	return &MemberService{Repo: repo, ChapterRepo: chapterRepo}
}

// Register creates a member in the given chapter
func (s *MemberService) Register(ctx context.Context, chapterID int, req *models.CreateMemberRequest) (*models.Member, error) {
	if req.FullName == "" || req.MembershipNumber == "" {
		return nil, errors.New("full name and membership number are required")
	}

	chapter, err := s.ChapterRepo.Get(ctx, chapterID)
	if err != nil || !chapter.IsActive {
		return nil, errors.New("chapter not found or inactive")
	}

	member := &models.Member{
		ChapterID:        chapterID,
		FullName:         req.FullName,
		MembershipNumber: req.MembershipNumber,
		PhoneNumber:      req.PhoneNumber,
		MembershipYear:   req.MembershipYear,
	}
	if err := s.Repo.Create(ctx, member); err != nil {
		return nil, err
	}

	cache.InvalidateMemberCaches(ctx)
	return member, nil
}

func (s *MemberService) Get(ctx context.Context, id int) (*models.Member, error) {
	return s.Repo.Get(ctx, id)
}

// ListByChapter returns a chapter's member roll
func (s *MemberService) ListByChapter(ctx context.Context, chapterID int) ([]models.Member, error) {
	return s.Repo.ListByChapter(ctx, chapterID)
}

// Update edits contact details. Chapter and membership number never change.
func (s *MemberService) Update(ctx context.Context, id int, req *models.UpdateMemberRequest) (*models.Member, error) {
	member, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, errors.New("member not found")
	}

	member.FullName = req.FullName
	member.PhoneNumber = req.PhoneNumber
	member.MembershipYear = req.MembershipYear

	if err := s.Repo.Update(ctx, member); err != nil {
		return nil, err
	}

	cache.InvalidateMemberCaches(ctx)
	return s.Repo.Get(ctx, id)
}

// Deactivate soft-removes a member. Their transaction history stays; they
// simply drop out of targets and pending lists.
func (s *MemberService) Deactivate(ctx context.Context, id int) error {
	if err := s.Repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	cache.InvalidateMemberCaches(ctx)
	return nil
}

// Reactivate restores a previously deactivated member
func (s *MemberService) Reactivate(ctx context.Context, id int) error {
	if err := s.Repo.SetActive(ctx, id, true); err != nil {
		return err
	}
	cache.InvalidateMemberCaches(ctx)
	return nil
}
