package ledger

import (
	"testing"

	"chapterfund-backend/internal/models"
)

func intp(v int) *int { return &v }

func TestReconcileUnconfirmedTransfer(t *testing.T) {
	transfers := []models.CustodyTransfer{
		{ID: 1, Boundary: models.BoundaryFSToChapterTreasurer, ChapterID: intp(1), PurposeID: 5, AmountDeclared: 20000, Status: models.TransferPending},
	}

	report := Reconcile(transfers, nil)
	if len(report.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(report.Rows))
	}
	row := report.Rows[0]
	if row.FSHandedOver != 20000 || row.TreasurerReceived != 0 {
		t.Errorf("row = handed %d / received %d, want 20000 / 0", row.FSHandedOver, row.TreasurerReceived)
	}
	if row.Difference != 20000 || row.Status != models.ReconUnbalanced {
		t.Errorf("row = diff %d status %s, want 20000 UNBALANCED", row.Difference, row.Status)
	}
}

func TestReconcilePartialConfirmation(t *testing.T) {
	transfers := []models.CustodyTransfer{
		{ID: 1, Boundary: models.BoundaryFSToChapterTreasurer, ChapterID: intp(1), PurposeID: 5, AmountDeclared: 14000},
	}
	receipts := []models.CustodyReceipt{
		{ID: 1, TransferID: 1, AmountConfirmed: 13000},
	}

	report := Reconcile(transfers, receipts)
	row := report.Rows[0]
	if row.Difference != 1000 {
		t.Errorf("difference = %d, want 1000 (receiver confirmed less)", row.Difference)
	}
	if row.Status != models.ReconUnbalanced {
		t.Errorf("status = %s, want UNBALANCED", row.Status)
	}
}

func TestReconcileExcessConfirmationIsNegative(t *testing.T) {
	transfers := []models.CustodyTransfer{
		{ID: 1, Boundary: models.BoundaryNationalFSToTreasurer, PurposeID: 2, AmountDeclared: 5000},
	}
	receipts := []models.CustodyReceipt{
		{ID: 1, TransferID: 1, AmountConfirmed: 7000},
	}

	report := Reconcile(transfers, receipts)
	if got := report.Rows[0].Difference; got != -2000 {
		t.Errorf("difference = %d, want -2000 (receiver confirmed more than declared)", got)
	}
}

// Per-purpose differences that cancel out must stay visible as unbalanced
// rows even when the rollup nets to zero.
func TestReconcileCancellationOnlyBalancedAtRollup(t *testing.T) {
	transfers := []models.CustodyTransfer{
		{ID: 1, Boundary: models.BoundaryFSToChapterTreasurer, ChapterID: intp(1), PurposeID: 1, AmountDeclared: 10000},
		{ID: 2, Boundary: models.BoundaryFSToChapterTreasurer, ChapterID: intp(1), PurposeID: 2, AmountDeclared: 10000},
	}
	receipts := []models.CustodyReceipt{
		{ID: 1, TransferID: 1, AmountConfirmed: 8000},  // short by 2000
		{ID: 2, TransferID: 2, AmountConfirmed: 12000}, // over by 2000
	}

	report := Reconcile(transfers, receipts)
	for _, row := range report.Rows {
		if row.Status != models.ReconUnbalanced {
			t.Errorf("purpose %d status = %s, want UNBALANCED despite rollup cancelling", row.PurposeID, row.Status)
		}
	}
	if report.TotalDifference != 0 || report.Status != models.ReconBalanced {
		t.Errorf("rollup = diff %d status %s, want 0 BALANCED", report.TotalDifference, report.Status)
	}
}

// Summing the per-purpose differences always equals the overall difference.
func TestReconcileDifferenceIsAdditive(t *testing.T) {
	transfers := []models.CustodyTransfer{
		{ID: 1, Boundary: models.BoundaryChapterToNational, ChapterID: intp(1), PurposeID: 1, AmountDeclared: 30000},
		{ID: 2, Boundary: models.BoundaryChapterToNational, ChapterID: intp(2), PurposeID: 1, AmountDeclared: 45000},
		{ID: 3, Boundary: models.BoundaryChapterToNational, ChapterID: intp(2), PurposeID: 3, AmountDeclared: 12000},
	}
	receipts := []models.CustodyReceipt{
		{ID: 1, TransferID: 1, AmountConfirmed: 30000},
		{ID: 2, TransferID: 2, AmountConfirmed: 40000},
	}

	report := Reconcile(transfers, receipts)
	var sum int64
	for _, row := range report.Rows {
		sum += row.Difference
	}
	if sum != report.TotalDifference {
		t.Errorf("sum of row differences = %d, rollup = %d; must be equal", sum, report.TotalDifference)
	}
	if report.TotalDifference != 17000 {
		t.Errorf("rollup difference = %d, want 17000", report.TotalDifference)
	}
}

func TestReconcileGroupsByChapterAndPurpose(t *testing.T) {
	transfers := []models.CustodyTransfer{
		{ID: 1, Boundary: models.BoundaryFSToChapterTreasurer, ChapterID: intp(1), PurposeID: 1, AmountDeclared: 1000},
		{ID: 2, Boundary: models.BoundaryFSToChapterTreasurer, ChapterID: intp(1), PurposeID: 1, AmountDeclared: 2000},
		{ID: 3, Boundary: models.BoundaryFSToChapterTreasurer, ChapterID: intp(2), PurposeID: 1, AmountDeclared: 4000},
	}

	report := Reconcile(transfers, nil)
	if len(report.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 (chapter 1 merged, chapter 2 separate)", len(report.Rows))
	}
	if report.Rows[0].FSHandedOver != 3000 {
		t.Errorf("chapter 1 handed over = %d, want 3000", report.Rows[0].FSHandedOver)
	}
	if report.TotalDeclared != 7000 {
		t.Errorf("total declared = %d, want 7000", report.TotalDeclared)
	}
}
