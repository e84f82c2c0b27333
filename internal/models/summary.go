package models

import "time"

// PurposeSummary is the aggregate a dashboard shows for one purpose within a
// scope (one chapter, or the national rollup).
type PurposeSummary struct {
	PurposeID      int          `json:"purpose_id"`
	PurposeName    string       `json:"purpose_name"`
	Level          PurposeLevel `json:"level"`
	TargetMode     TargetMode   `json:"target_mode"`
	TotalExpected  int64        `json:"total_expected"`
	TotalCollected int64        `json:"total_collected"`
	TotalDisbursed int64        `json:"total_disbursed"`
	Contributors   int          `json:"contributors"`
	// RealizationPct is 0 when TotalExpected is 0, never a division fault.
	RealizationPct float64 `json:"realization_pct"`
}

// PendingContribution is one row of the "members yet to contribute" listing.
// Members whose balance reached zero are excluded.
type PendingContribution struct {
	MemberID         int    `json:"member_id"`
	FullName         string `json:"full_name"`
	MembershipNumber string `json:"membership_number"`
	PurposeID        int    `json:"purpose_id"`
	PurposeName      string `json:"purpose_name"`
	ExpectedAmount   int64  `json:"expected_amount"`
	AmountPaid       int64  `json:"amount_paid"`
	Balance          int64  `json:"balance"`
}

// ReconciliationStatus classifies a declared-vs-confirmed difference.
type ReconciliationStatus string

const (
	ReconBalanced   ReconciliationStatus = "BALANCED"
	ReconUnbalanced ReconciliationStatus = "UNBALANCED"
)

// ReconciliationRow is the per-purpose figure at one custody boundary.
// A positive difference means the receiver confirmed less than was declared.
type ReconciliationRow struct {
	Boundary          Boundary             `json:"boundary"`
	ChapterID         *int                 `json:"chapter_id,omitempty"`
	ChapterName       string               `json:"chapter_name,omitempty"`
	PurposeID         int                  `json:"purpose_id"`
	PurposeName       string               `json:"purpose_name"`
	FSHandedOver      int64                `json:"fs_handed_over"`
	TreasurerReceived int64                `json:"treasurer_received"`
	Difference        int64                `json:"difference"`
	Status            ReconciliationStatus `json:"status"`
}

// ReconciliationReport carries both granularities: per-purpose rows and the
// overall rollup. Purposes cancelling each other out shows only here, never
// as a balanced row.
type ReconciliationReport struct {
	Rows            []ReconciliationRow  `json:"rows"`
	TotalDeclared   int64                `json:"total_declared"`
	TotalConfirmed  int64                `json:"total_confirmed"`
	TotalDifference int64                `json:"total_difference"`
	Status          ReconciliationStatus `json:"status"`
}

// CashPosition is the derived cash/bank standing of a custodian scope,
// recomputed from the full event history on every read.
type CashPosition struct {
	Scope       CustodianScope `json:"custodian_scope"`
	ChapterID   *int           `json:"chapter_id,omitempty"`
	CashBalance int64          `json:"cash_balance"`
	BankBalance int64          `json:"bank_balance"`
	ComputedAt  time.Time      `json:"computed_at"`
}

// MemberLedger is a member's full history with per-purpose standing.
type MemberLedger struct {
	Member       *Member               `json:"member"`
	Transactions []Transaction         `json:"transactions"`
	Standing     []PendingContribution `json:"standing"`
}
