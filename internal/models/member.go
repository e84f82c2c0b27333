package models

import "time"

// Member belongs to exactly one chapter. Members are soft-deactivated rather
// than deleted so their transaction history stays intact.
type Member struct {
	ID               int       `json:"id"`
	ChapterID        int       `json:"chapter_id"`
	FullName         string    `json:"full_name"`
	MembershipNumber string    `json:"membership_number"` // unique within the chapter
	PhoneNumber      string    `json:"phone_number"`
	MembershipYear   *int      `json:"membership_year"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CreateMemberRequest struct {
	FullName         string `json:"full_name"`
	MembershipNumber string `json:"membership_number"`
	PhoneNumber      string `json:"phone_number"`
	MembershipYear   *int   `json:"membership_year"`
}

// UpdateMemberRequest covers the editable fields only. Chapter and membership
// number are fixed at registration.
type UpdateMemberRequest struct {
	FullName       string `json:"full_name"`
	PhoneNumber    string `json:"phone_number"`
	MembershipYear *int   `json:"membership_year"`
}
