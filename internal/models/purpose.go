package models

import "time"

// PurposeLevel scopes a purpose to chapter or national fundraising.
type PurposeLevel string

const (
	PurposeLevelChapter  PurposeLevel = "CHAPTER"
	PurposeLevelNational PurposeLevel = "NATIONAL"
)

// TargetMode controls how total_expected is derived for a purpose.
type TargetMode string

const (
	// TargetPerMember: expected_amount is per head, the chapter target is
	// expected_amount multiplied by the active member count.
	TargetPerMember TargetMode = "PER_MEMBER"
	// TargetFixed: expected_amount is the target itself, independent of
	// membership.
	TargetFixed TargetMode = "FIXED"
)

// Purpose is a named fundraising or expenditure goal. Once transactions
// reference it, only deactivation is permitted.
type Purpose struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	Level          PurposeLevel `json:"level"`
	ExpectedAmount *int64       `json:"expected_amount"` // nil = unbounded goal
	TargetMode     TargetMode   `json:"target_mode"`
	IsActive       bool         `json:"is_active"`
	CreatedAt      time.Time    `json:"created_at"`
}

type CreatePurposeRequest struct {
	Name           string       `json:"name"`
	Level          PurposeLevel `json:"level"`
	ExpectedAmount *int64       `json:"expected_amount"`
	TargetMode     TargetMode   `json:"target_mode"`
}

// UpdatePurposeRequest renames a purpose or retunes its target. Target
// changes are only accepted while no transaction references the purpose.
type UpdatePurposeRequest struct {
	Name           string     `json:"name"`
	ExpectedAmount *int64     `json:"expected_amount"`
	TargetMode     TargetMode `json:"target_mode"`
}
