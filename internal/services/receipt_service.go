package services

import (
	"bytes"
	"context"
	"fmt"

	"chapterfund-backend/internal/ledger"
	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/repositories"
	"chapterfund-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReceiptService renders handover receipts as PDFs so both parties can file
// a signed paper copy of a custody transfer.
type ReceiptService struct {
	CustodyRepo *repositories.CustodyRepository
	UserRepo    *repositories.UserRepository
}

func NewReceiptService(custodyRepo *repositories.CustodyRepository, userRepo *repositories.UserRepository) *ReceiptService {
	return &ReceiptService{CustodyRepo: custodyRepo, UserRepo: userRepo}
}

// TransferReceiptPDF renders the receipt for one transfer, pending or
// confirmed
func (s *ReceiptService) TransferReceiptPDF(ctx context.Context, transferID int) ([]byte, error) {
	transfer, err := s.CustodyRepo.GetTransfer(ctx, transferID)
	if err != nil {
		return nil, &ledger.ReferenceNotFoundError{Kind: "transfer", ID: transferID}
	}

	var receipt *models.CustodyReceipt
	if transfer.Status == models.TransferConfirmed {
		receipt, _ = s.CustodyRepo.GetReceipt(ctx, transferID)
	}

	declaredBy, _ := s.UserRepo.Get(ctx, transfer.DeclaredBy)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Fund Handover Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Transfer details box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Transfer Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Reference: %s", transfer.Reference), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Boundary: %s", boundaryLabel(transfer.Boundary)), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Purpose: %s", transfer.PurposeName), "LB", 0, "L", false, 0, "")
	if transfer.ChapterName != "" {
		pdf.CellFormat(95, 7, fmt.Sprintf("Chapter: %s", transfer.ChapterName), "RB", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(95, 7, "Scope: National", "RB", 1, "L", false, 0, "")
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Declared: %s XAF", formatAmount(transfer.AmountDeclared)), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", timeutil.FormatWAT(transfer.DeclaredAt, timeutil.DateLayout)), "RB", 1, "L", false, 0, "")
	if declaredBy != nil && declaredBy.ID != 0 {
		pdf.CellFormat(190, 7, fmt.Sprintf("Declared by: %s", declaredBy.Name), "LRB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Confirmation box
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Confirmation", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	if receipt != nil {
		confirmedBy, _ := s.UserRepo.Get(ctx, receipt.ConfirmedBy)
		pdf.CellFormat(95, 7, fmt.Sprintf("Confirmed: %s XAF", formatAmount(receipt.AmountConfirmed)), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", timeutil.FormatWAT(receipt.ConfirmedAt, timeutil.DateLayout)), "RB", 1, "L", false, 0, "")
		if confirmedBy != nil && confirmedBy.ID != 0 {
			pdf.CellFormat(190, 7, fmt.Sprintf("Confirmed by: %s", confirmedBy.Name), "LRB", 1, "L", false, 0, "")
		}

		difference := transfer.AmountDeclared - receipt.AmountConfirmed
		if difference != 0 {
			pdf.Ln(3)
			pdf.SetFont("Arial", "B", 11)
			pdf.SetTextColor(180, 0, 0)
			pdf.CellFormat(190, 7, fmt.Sprintf("Unresolved difference: %s XAF", formatAmount(difference)), "", 1, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
	} else {
		pdf.CellFormat(190, 7, "Status: PENDING - awaiting receiver confirmation", "LRB", 1, "L", false, 0, "")
	}
	pdf.Ln(15)

	// Signature lines
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 7, "_______________________", "", 0, "C", false, 0, "")
	pdf.CellFormat(95, 7, "_______________________", "", 1, "C", false, 0, "")
	pdf.CellFormat(95, 6, "Handed over by", "", 0, "C", false, 0, "")
	pdf.CellFormat(95, 6, "Received by", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// boundaryLabel renders a boundary constant for humans
func boundaryLabel(b models.Boundary) string {
	switch b {
	case models.BoundaryFSToChapterTreasurer:
		return "FS to Chapter Treasurer"
	case models.BoundaryChapterToNational:
		return "Chapter to National"
	case models.BoundaryNationalFSToTreasurer:
		return "National FS to National Treasurer"
	}
	return string(b)
}

// formatAmount groups thousands for readability: 1450000 -> 1,450,000
func formatAmount(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	s := fmt.Sprintf("%d", amount)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if negative {
		return "-" + s
	}
	return s
}
