package services

import (
	"context"
	"errors"
	"log"

	"chapterfund-backend/internal/auth"
	"chapterfund-backend/internal/cache"
	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/repositories"
)

// ErrTOTPRequired signals that password auth succeeded but the account has
// 2FA enabled; the caller must present a code against the temp token.
var ErrTOTPRequired = errors.New("totp verification required")

type UserService struct {
	Repo         *repositories.UserRepository
	LoginLogRepo *repositories.LoginLogRepository
	JWTManager   *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, loginLogRepo *repositories.LoginLogRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:         repo,
		LoginLogRepo: loginLogRepo,
		JWTManager:   jwtManager,
	}
}

// CreateUser registers a portal user. Admin only; there is no self-signup.
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errors.New("name, email, and password are required")
	}
	if err := validateRoleAssignment(req.Role, req.ChapterID); err != nil {
		return nil, err
	}

	// Check if user already exists
	existing, _ := s.Repo.GetByEmail(ctx, req.Email)
	if existing != nil && existing.ID != 0 {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		Role:         req.Role,
		ChapterID:    req.ChapterID,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	cache.InvalidateUserCaches(ctx)
	return user, nil
}

// validateRoleAssignment enforces the chapter binding rule: chapter roles
// must carry a chapter, national roles and admin must not.
func validateRoleAssignment(role string, chapterID *int) error {
	switch role {
	case models.RoleAdmin, models.RoleChapterFS, models.RoleChapterTreasurer,
		models.RoleNationalFS, models.RoleNationalTreasurer:
	default:
		return errors.New("unknown role")
	}

	if models.IsChapterRole(role) {
		if chapterID == nil {
			return errors.New("chapter roles require a chapter")
		}
	} else if chapterID != nil {
		return errors.New("national roles and admin carry no chapter")
	}
	return nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

// ListUsers returns all users
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

// ListUsersByChapter returns the accounts bound to one chapter
func (s *UserService) ListUsersByChapter(ctx context.Context, chapterID int) ([]*models.User, error) {
	return s.Repo.ListByChapter(ctx, chapterID)
}

// UpdateUser updates an existing user
func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if err := validateRoleAssignment(req.Role, req.ChapterID); err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Phone = req.Phone
	user.Role = req.Role
	user.ChapterID = req.ChapterID

	// If password is provided, hash it; empty keeps the old one
	user.PasswordHash = ""
	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, err
	}

	cache.InvalidateUserCaches(ctx)
	return s.Repo.Get(ctx, id)
}

// SetActive suspends or restores a user account
func (s *UserService) SetActive(ctx context.Context, id int, active bool) error {
	if err := s.Repo.ToggleActiveStatus(ctx, id, active); err != nil {
		return err
	}
	cache.InvalidateUserCaches(ctx)
	return nil
}

// Login authenticates a user. When 2FA is enabled the returned response
// carries a short-lived temp token and ErrTOTPRequired; the client follows
// up with the verify-totp endpoint.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest, ipAddress, userAgent string) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	// Check credential cache first, fall back to bcrypt
	if cachedID, ok := cache.GetCachedAuth(ctx, req.Email, req.Password); !ok || int(cachedID) != user.ID {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, errors.New("invalid email or password")
		}
		cache.CacheAuth(ctx, req.Email, req.Password, int64(user.ID))
	}

	if !user.IsActive {
		return nil, errors.New("account suspended")
	}

	// 2FA accounts get a temp token instead of a session
	if user.TOTPEnabled {
		tempToken, err := s.JWTManager.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &models.AuthResponse{Token: tempToken, User: user}, ErrTOTPRequired
	}

	return s.completeLogin(ctx, user, ipAddress, userAgent)
}

// completeLogin issues the session token and records the login
func (s *UserService) completeLogin(ctx context.Context, user *models.User, ipAddress, userAgent string) (*models.AuthResponse, error) {
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	if _, err := s.LoginLogRepo.CreateLoginLog(ctx, user.ID, ipAddress, userAgent); err != nil {
		// Audit failure never blocks a login
		log.Printf("[Auth] failed to record login for user %d: %v", user.ID, err)
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

// CompleteTOTPLogin finishes the second step of a 2FA login after the code
// was verified by TOTPService
func (s *UserService) CompleteTOTPLogin(ctx context.Context, userID int, ipAddress, userAgent string) (*models.AuthResponse, error) {
	user, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if !user.IsActive {
		return nil, errors.New("account suspended")
	}
	return s.completeLogin(ctx, user, ipAddress, userAgent)
}

// Logout stamps the logout time on the user's most recent login
func (s *UserService) Logout(ctx context.Context, userID int) error {
	return s.LoginLogRepo.UpdateLogoutTimeByUser(ctx, userID)
}

// LoginHistory returns the recent login log for the admin audit view
func (s *UserService) LoginHistory(ctx context.Context, limit int) ([]*models.LoginLog, error) {
	return s.LoginLogRepo.ListAll(ctx, limit)
}
