package models

import "time"

// Roles in the custody chain. Chapter roles are always scoped to a chapter;
// national roles and admin have no chapter.
const (
	RoleAdmin             = "admin"
	RoleChapterFS         = "chapter_fs"
	RoleChapterTreasurer  = "chapter_treasurer"
	RoleNationalFS        = "national_fs"
	RoleNationalTreasurer = "national_treasurer"
)

// IsChapterRole reports whether the role operates within a single chapter.
func IsChapterRole(role string) bool {
	return role == RoleChapterFS || role == RoleChapterTreasurer
}

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"`
	ChapterID    *int      `json:"chapter_id"` // nil for national roles and admin
	TOTPEnabled  bool      `json:"totp_enabled"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// 2FA storage, never serialized
	TOTPSecret     string     `json:"-"`
	TOTPVerifiedAt *time.Time `json:"-"`
	BackupCodes    string     `json:"-"`
}

// TOTPSetupResponse is returned when a user initiates 2FA setup
type TOTPSetupResponse struct {
	Secret      string `json:"secret"`
	QRCode      string `json:"qr_code"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

// BackupCodesResponse carries freshly generated one-time backup codes
type BackupCodesResponse struct {
	Codes []string `json:"codes"`
}

// User2FAStatus reports whether 2FA is active for a user
type User2FAStatus struct {
	Enabled        bool       `json:"enabled"`
	EnabledAt      *time.Time `json:"enabled_at"`
	HasBackupCodes bool       `json:"has_backup_codes"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// CreateUserRequest represents the request body for creating a user (admin only)
type CreateUserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	ChapterID *int   `json:"chapter_id"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password,omitempty"` // Optional
	Role      string `json:"role"`
	ChapterID *int   `json:"chapter_id"`
}
