package models

import "time"

// CustodianScope identifies whose cash and bank balances a movement or
// position belongs to.
type CustodianScope string

const (
	ScopeChapter  CustodianScope = "CHAPTER"
	ScopeNational CustodianScope = "NATIONAL"
)

type MovementType string

const (
	MovementDeposit    MovementType = "DEPOSIT"
	MovementWithdrawal MovementType = "WITHDRAWAL"
)

// BankMovement records a deposit into or withdrawal from the custodian's
// bank account. Creation is guarded by the solvency check: a deposit cannot
// exceed cash on hand, a withdrawal cannot exceed the bank balance.
type BankMovement struct {
	ID           int            `json:"id"`
	Scope        CustodianScope `json:"custodian_scope"`
	ChapterID    *int           `json:"chapter_id"` // nil at national scope
	PurposeID    int            `json:"purpose_id"`
	Amount       int64          `json:"amount"`
	Type         MovementType   `json:"movement_type"`
	MovementDate time.Time      `json:"movement_date"`
	Reference    string         `json:"reference"`
	RecordedBy   int            `json:"recorded_by"`
	CreatedAt    time.Time      `json:"created_at"`

	PurposeName string `json:"purpose_name,omitempty"`
}

type CreateBankMovementRequest struct {
	PurposeID    int          `json:"purpose_id"`
	Amount       int64        `json:"amount"`
	Type         MovementType `json:"movement_type"`
	MovementDate string       `json:"movement_date"` // YYYY-MM-DD
	Reference    string       `json:"reference"`
}
