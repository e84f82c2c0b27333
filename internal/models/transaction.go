package models

import "time"

// TransactionType carries the sign of a ledger event; amounts themselves are
// always positive.
type TransactionType string

const (
	TransactionCollection   TransactionType = "COLLECTION"
	TransactionDisbursement TransactionType = "DISBURSEMENT"
)

// Destination marks which tier the funds are collected for.
type Destination string

const (
	DestinationChapter  Destination = "CHAPTER"
	DestinationNational Destination = "NATIONAL"
)

// Transaction is the base ledger event: a member contribution collected by
// the financial secretary, or a disbursement against a purpose. Immutable
// once recorded; corrections are new, dated records.
type Transaction struct {
	ID              int             `json:"id"`
	MemberID        int             `json:"member_id"`
	PurposeID       int             `json:"purpose_id"`
	ChapterID       int             `json:"chapter_id"`
	Amount          int64           `json:"amount"` // whole XAF, always positive
	Type            TransactionType `json:"transaction_type"`
	Destination     Destination     `json:"destination"`
	TransactionDate time.Time       `json:"transaction_date"`
	RecordedBy      int             `json:"recorded_by"`
	CreatedAt       time.Time       `json:"created_at"`

	// Joined display fields
	MemberName  string `json:"member_name,omitempty"`
	PurposeName string `json:"purpose_name,omitempty"`
}

type CreateTransactionRequest struct {
	MemberID        int             `json:"member_id"`
	PurposeID       int             `json:"purpose_id"`
	Amount          int64           `json:"amount"`
	Type            TransactionType `json:"transaction_type"`
	Destination     Destination     `json:"destination"`
	TransactionDate string          `json:"transaction_date"` // YYYY-MM-DD
}
