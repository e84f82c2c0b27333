package ledger

import (
	"testing"

	"chapterfund-backend/internal/models"
)

func int64p(v int64) *int64 { return &v }

func TestSummarizeZeroTargetNoFault(t *testing.T) {
	p := &models.Purpose{ID: 1, Name: "Open Donation", Level: models.PurposeLevelChapter, TargetMode: models.TargetPerMember}
	txs := []models.Transaction{
		{PurposeID: 1, MemberID: 10, Amount: 5000, Type: models.TransactionCollection},
	}

	s := Summarize(p, 25, txs)
	if s.TotalExpected != 0 {
		t.Fatalf("TotalExpected = %d, want 0 for unbounded purpose", s.TotalExpected)
	}
	if s.RealizationPct != 0 {
		t.Fatalf("RealizationPct = %f, want 0 when target is 0", s.RealizationPct)
	}
	if s.TotalCollected != 5000 {
		t.Fatalf("TotalCollected = %d, want 5000", s.TotalCollected)
	}
}

func TestSummarizeTargetModes(t *testing.T) {
	tests := []struct {
		name          string
		mode          models.TargetMode
		expected      int64
		activeMembers int
		want          int64
	}{
		{"per member multiplies by membership", models.TargetPerMember, 10000, 3, 30000},
		{"fixed ignores membership", models.TargetFixed, 250000, 3, 250000},
		{"per member with empty chapter", models.TargetPerMember, 10000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Purpose{ID: 1, ExpectedAmount: int64p(tt.expected), TargetMode: tt.mode}
			if got := TotalExpected(p, tt.activeMembers); got != tt.want {
				t.Errorf("TotalExpected = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSummarizeCountsDistinctContributors(t *testing.T) {
	p := &models.Purpose{ID: 7, ExpectedAmount: int64p(10000), TargetMode: models.TargetPerMember}
	txs := []models.Transaction{
		{PurposeID: 7, MemberID: 1, Amount: 4000, Type: models.TransactionCollection},
		{PurposeID: 7, MemberID: 1, Amount: 6000, Type: models.TransactionCollection},
		{PurposeID: 7, MemberID: 2, Amount: 2000, Type: models.TransactionCollection},
		{PurposeID: 7, MemberID: 3, Amount: 1000, Type: models.TransactionDisbursement},
		{PurposeID: 8, MemberID: 4, Amount: 9999, Type: models.TransactionCollection}, // other purpose
	}

	s := Summarize(p, 2, txs)
	if s.Contributors != 2 {
		t.Errorf("Contributors = %d, want 2 (disbursements and other purposes excluded)", s.Contributors)
	}
	if s.TotalCollected != 12000 {
		t.Errorf("TotalCollected = %d, want 12000", s.TotalCollected)
	}
	if s.TotalDisbursed != 1000 {
		t.Errorf("TotalDisbursed = %d, want 1000", s.TotalDisbursed)
	}
	if s.RealizationPct != 60 {
		t.Errorf("RealizationPct = %f, want 60", s.RealizationPct)
	}
}

func TestMemberBalanceNeverNegative(t *testing.T) {
	p := &models.Purpose{ExpectedAmount: int64p(10000)}

	tests := []struct {
		paid int64
		want int64
	}{
		{0, 10000},
		{4000, 6000},
		{10000, 0},
		{15000, 0}, // overpayment clamps to zero, not negative
	}
	for _, tt := range tests {
		if got := MemberBalance(p, tt.paid); got != tt.want {
			t.Errorf("MemberBalance(paid=%d) = %d, want %d", tt.paid, got, tt.want)
		}
	}
}

func TestPendingContributionsExcludesSettledMembers(t *testing.T) {
	p := &models.Purpose{ID: 3, Name: "Building Fund", ExpectedAmount: int64p(10000), TargetMode: models.TargetPerMember}
	members := []models.Member{
		{ID: 1, FullName: "Member A", IsActive: true},
		{ID: 2, FullName: "Member B", IsActive: true},
		{ID: 3, FullName: "Departed", IsActive: false},
	}
	txs := []models.Transaction{
		{PurposeID: 3, MemberID: 1, Amount: 10000, Type: models.TransactionCollection},
		{PurposeID: 3, MemberID: 2, Amount: 4000, Type: models.TransactionCollection},
	}

	pending := PendingContributions(p, members, txs)
	if len(pending) != 1 {
		t.Fatalf("pending = %d rows, want 1 (A settled, Departed inactive)", len(pending))
	}
	row := pending[0]
	if row.MemberID != 2 || row.AmountPaid != 4000 || row.Balance != 6000 {
		t.Errorf("pending row = %+v, want member 2 paid 4000 balance 6000", row)
	}
}

func TestPendingContributionsUnboundedPurpose(t *testing.T) {
	p := &models.Purpose{ID: 4, Name: "Voluntary"}
	members := []models.Member{{ID: 1, IsActive: true}}
	if pending := PendingContributions(p, members, nil); pending != nil {
		t.Errorf("pending = %v, want nil for purpose without expected amount", pending)
	}
}

func TestSummarizeNationalRollup(t *testing.T) {
	// Collections for the same purpose land in different chapters; the
	// national view sums them all, with the target spanning the whole
	// association's membership.
	p := &models.Purpose{ID: 5, Name: "Convention Levy", Level: models.PurposeLevelNational, ExpectedAmount: int64p(5000), TargetMode: models.TargetPerMember}
	txs := []models.Transaction{
		{PurposeID: 5, MemberID: 1, ChapterID: 1, Amount: 5000, Type: models.TransactionCollection},
		{PurposeID: 5, MemberID: 2, ChapterID: 2, Amount: 5000, Type: models.TransactionCollection},
		{PurposeID: 5, MemberID: 3, ChapterID: 3, Amount: 2500, Type: models.TransactionCollection},
		{PurposeID: 5, MemberID: 0, ChapterID: 2, Amount: 1000, Type: models.TransactionDisbursement},
	}

	s := Summarize(p, 10, txs)
	if s.TotalCollected != 12500 {
		t.Errorf("TotalCollected = %d, want 12500 across all chapters", s.TotalCollected)
	}
	if s.TotalExpected != 50000 {
		t.Errorf("TotalExpected = %d, want 50000 for 10 members association-wide", s.TotalExpected)
	}
	if s.Contributors != 3 {
		t.Errorf("Contributors = %d, want 3", s.Contributors)
	}
	if s.RealizationPct != 25 {
		t.Errorf("RealizationPct = %f, want 25", s.RealizationPct)
	}
}

func TestAllPendingContributionsMergesActivePurposes(t *testing.T) {
	purposes := []*models.Purpose{
		{ID: 1, Name: "Dues", ExpectedAmount: int64p(10000), TargetMode: models.TargetPerMember, IsActive: true},
		{ID: 2, Name: "Building Fund", ExpectedAmount: int64p(20000), TargetMode: models.TargetPerMember, IsActive: true},
		{ID: 3, Name: "Retired Levy", ExpectedAmount: int64p(5000), IsActive: false},
		{ID: 4, Name: "Voluntary", IsActive: true}, // unbounded
	}
	members := []models.Member{
		{ID: 1, FullName: "Member A", IsActive: true},
		{ID: 2, FullName: "Member B", IsActive: true},
	}
	txs := []models.Transaction{
		{PurposeID: 1, MemberID: 1, Amount: 10000, Type: models.TransactionCollection}, // A settled dues
		{PurposeID: 2, MemberID: 2, Amount: 5000, Type: models.TransactionCollection},
	}

	pending := AllPendingContributions(purposes, members, txs)
	// B owes dues, both owe on the building fund; retired and unbounded
	// purposes contribute nothing.
	if len(pending) != 3 {
		t.Fatalf("pending = %d rows, want 3", len(pending))
	}
	for _, row := range pending {
		if row.PurposeID == 3 || row.PurposeID == 4 {
			t.Errorf("purpose %d must not appear in the pending view", row.PurposeID)
		}
	}
	if pending[0].PurposeID != 1 || pending[0].MemberID != 2 || pending[0].Balance != 10000 {
		t.Errorf("row 0 = %+v, want member 2 owing full dues", pending[0])
	}
}
