package ledger

import "chapterfund-backend/internal/models"

// TotalExpected derives the collection target for a purpose within a scope
// holding activeMembers active members. A nil expected amount means an
// unbounded goal, target 0.
func TotalExpected(p *models.Purpose, activeMembers int) int64 {
	if p.ExpectedAmount == nil {
		return 0
	}
	if p.TargetMode == models.TargetFixed {
		return *p.ExpectedAmount
	}
	return *p.ExpectedAmount * int64(activeMembers)
}

// Summarize reduces a purpose's transaction history into the dashboard
// aggregate. Realization is defined as 0% when the target is 0; the division
// never faults.
func Summarize(p *models.Purpose, activeMembers int, txs []models.Transaction) models.PurposeSummary {
	s := models.PurposeSummary{
		PurposeID:     p.ID,
		PurposeName:   p.Name,
		Level:         p.Level,
		TargetMode:    p.TargetMode,
		TotalExpected: TotalExpected(p, activeMembers),
	}

	contributors := make(map[int]struct{})
	for _, tx := range txs {
		if tx.PurposeID != p.ID {
			continue
		}
		switch tx.Type {
		case models.TransactionCollection:
			s.TotalCollected += tx.Amount
			contributors[tx.MemberID] = struct{}{}
		case models.TransactionDisbursement:
			s.TotalDisbursed += tx.Amount
		}
	}
	s.Contributors = len(contributors)

	if s.TotalExpected > 0 {
		s.RealizationPct = float64(s.TotalCollected) / float64(s.TotalExpected) * 100
	}
	return s
}

// AmountPaid sums a member's collections for one purpose.
func AmountPaid(memberID, purposeID int, txs []models.Transaction) int64 {
	var paid int64
	for _, tx := range txs {
		if tx.MemberID == memberID && tx.PurposeID == purposeID && tx.Type == models.TransactionCollection {
			paid += tx.Amount
		}
	}
	return paid
}

// MemberBalance is what the member still owes: max(0, expected - paid).
// Overpayment never yields a negative balance.
func MemberBalance(p *models.Purpose, paid int64) int64 {
	if p.ExpectedAmount == nil {
		return 0
	}
	balance := *p.ExpectedAmount - paid
	if balance < 0 {
		return 0
	}
	return balance
}

// AllPendingContributions merges the pending lists of every active purpose
// with a per-member expectation, for the single-call "who still owes what"
// view. Retired and unbounded purposes contribute no rows.
func AllPendingContributions(purposes []*models.Purpose, members []models.Member, txs []models.Transaction) []models.PendingContribution {
	var pending []models.PendingContribution
	for _, p := range purposes {
		if !p.IsActive || p.ExpectedAmount == nil {
			continue
		}
		pending = append(pending, PendingContributions(p, members, txs)...)
	}
	return pending
}

// PendingContributions lists members who have not yet covered the per-member
// expectation for a purpose. A member whose balance reached zero drops off
// the list. Unbounded purposes (no expected amount) have no pending list.
func PendingContributions(p *models.Purpose, members []models.Member, txs []models.Transaction) []models.PendingContribution {
	if p.ExpectedAmount == nil {
		return nil
	}
	var pending []models.PendingContribution
	for _, m := range members {
		if !m.IsActive {
			continue
		}
		paid := AmountPaid(m.ID, p.ID, txs)
		balance := MemberBalance(p, paid)
		if balance == 0 {
			continue
		}
		pending = append(pending, models.PendingContribution{
			MemberID:         m.ID,
			FullName:         m.FullName,
			MembershipNumber: m.MembershipNumber,
			PurposeID:        p.ID,
			PurposeName:      p.Name,
			ExpectedAmount:   *p.ExpectedAmount,
			AmountPaid:       paid,
			Balance:          balance,
		})
	}
	return pending
}
