package models

import "time"

// Boundary names one of the custody handover points in the chain. The same
// declare/confirm handshake runs at every boundary; only the role pair
// differs.
type Boundary string

const (
	BoundaryFSToChapterTreasurer  Boundary = "FS_TO_CHAPTER_TREASURER"
	BoundaryChapterToNational     Boundary = "CHAPTER_TO_NATIONAL"
	BoundaryNationalFSToTreasurer Boundary = "NATIONAL_FS_TO_NATIONAL_TREASURER"
)

// TransferStatus is the two-state lifecycle of a declared transfer.
// PENDING is a valid standing state: funds declared handed over but not yet
// verified by the receiver.
type TransferStatus string

const (
	TransferPending   TransferStatus = "PENDING"
	TransferConfirmed TransferStatus = "CONFIRMED"
)

// CustodyTransfer is the sender's declaration that funds moved across a
// boundary. The declared amount is never mutated; corrections are new
// transfers.
type CustodyTransfer struct {
	ID             int            `json:"id"`
	Boundary       Boundary       `json:"boundary"`
	ChapterID      *int           `json:"chapter_id"` // nil at the national-only boundary
	PurposeID      int            `json:"purpose_id"`
	AmountDeclared int64          `json:"amount_declared"`
	Reference      string         `json:"reference"` // bank slip / voucher number
	Status         TransferStatus `json:"status"`
	DeclaredBy     int            `json:"declared_by"`
	DeclaredAt     time.Time      `json:"declared_at"`

	// Joined display fields
	PurposeName string `json:"purpose_name,omitempty"`
	ChapterName string `json:"chapter_name,omitempty"`
}

// CustodyReceipt is the receiver's independent confirmation. The confirmed
// amount need not match the declared amount; the gap is what reconciliation
// reports.
type CustodyReceipt struct {
	ID              int       `json:"id"`
	TransferID      int       `json:"transfer_id"`
	AmountConfirmed int64     `json:"amount_confirmed"`
	ConfirmedBy     int       `json:"confirmed_by"`
	ConfirmedAt     time.Time `json:"confirmed_at"`
}

type DeclareTransferRequest struct {
	Boundary  Boundary `json:"boundary"`
	PurposeID int      `json:"purpose_id"`
	Amount    int64    `json:"amount"`
	Reference string   `json:"reference"`
}

type ConfirmReceiptRequest struct {
	AmountConfirmed int64 `json:"amount_confirmed"`
}
