package ledger

import (
	"sort"

	"chapterfund-backend/internal/models"
)

// Reconcile diffs declared transfers against confirmed receipts at one
// boundary, grouped per (chapter, purpose). A transfer with no receipt
// contributes its full declared amount to fs_handed_over and nothing to
// treasurer_received, which is exactly what keeps an unverified handover
// visible. The engine never corrects a difference; new transfers and
// receipts are the only way the figures move.
func Reconcile(transfers []models.CustodyTransfer, receipts []models.CustodyReceipt) models.ReconciliationReport {
	confirmedByTransfer := make(map[int]int64, len(receipts))
	for _, r := range receipts {
		confirmedByTransfer[r.TransferID] += r.AmountConfirmed
	}

	type key struct {
		chapter int // 0 when the boundary is not chapter-scoped
		purpose int
	}
	rows := make(map[key]*models.ReconciliationRow)
	var order []key

	for _, t := range transfers {
		k := key{purpose: t.PurposeID}
		if t.ChapterID != nil {
			k.chapter = *t.ChapterID
		}
		row, ok := rows[k]
		if !ok {
			row = &models.ReconciliationRow{
				Boundary:    t.Boundary,
				ChapterID:   t.ChapterID,
				ChapterName: t.ChapterName,
				PurposeID:   t.PurposeID,
				PurposeName: t.PurposeName,
			}
			rows[k] = row
			order = append(order, k)
		}
		row.FSHandedOver += t.AmountDeclared
		row.TreasurerReceived += confirmedByTransfer[t.ID]
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].chapter != order[j].chapter {
			return order[i].chapter < order[j].chapter
		}
		return order[i].purpose < order[j].purpose
	})

	report := models.ReconciliationReport{Status: models.ReconBalanced}
	for _, k := range order {
		row := rows[k]
		row.Difference = row.FSHandedOver - row.TreasurerReceived
		if row.Difference == 0 {
			row.Status = models.ReconBalanced
		} else {
			row.Status = models.ReconUnbalanced
		}
		report.Rows = append(report.Rows, *row)
		report.TotalDeclared += row.FSHandedOver
		report.TotalConfirmed += row.TreasurerReceived
	}
	report.TotalDifference = report.TotalDeclared - report.TotalConfirmed
	if report.TotalDifference != 0 {
		report.Status = models.ReconUnbalanced
	}
	return report
}
