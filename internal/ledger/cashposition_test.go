package ledger

import (
	"errors"
	"math/rand"
	"testing"

	"chapterfund-backend/internal/models"
)

func TestPositionFull(t *testing.T) {
	in := CashInputs{
		Transactions: []models.Transaction{
			{Amount: 50000, Type: models.TransactionCollection},
			{Amount: 20000, Type: models.TransactionCollection},
			{Amount: 5000, Type: models.TransactionDisbursement},
		},
		ReceiptsIn: []models.CustodyReceipt{
			{AmountConfirmed: 30000},
		},
		TransfersOut: []models.CustodyTransfer{
			{AmountDeclared: 10000},
		},
		Movements: []models.BankMovement{
			{Amount: 40000, Type: models.MovementDeposit},
			{Amount: 15000, Type: models.MovementWithdrawal},
		},
	}

	pos := Position(models.ScopeChapter, intp(1), in)
	// 50000+20000-5000+30000-10000-40000 = 45000
	if pos.CashBalance != 45000 {
		t.Errorf("cash = %d, want 45000", pos.CashBalance)
	}
	// 40000-15000 = 25000
	if pos.BankBalance != 25000 {
		t.Errorf("bank = %d, want 25000", pos.BankBalance)
	}
}

// Recomputing from the full log must equal applying events in any order:
// the reduction is a plain sum, so shuffling the history cannot change it.
func TestPositionOrderIndependent(t *testing.T) {
	txs := []models.Transaction{
		{Amount: 1000, Type: models.TransactionCollection},
		{Amount: 2500, Type: models.TransactionCollection},
		{Amount: 700, Type: models.TransactionDisbursement},
		{Amount: 300, Type: models.TransactionDisbursement},
		{Amount: 9000, Type: models.TransactionCollection},
	}
	want := Position(models.ScopeChapter, nil, CashInputs{Transactions: txs}).CashBalance

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]models.Transaction, len(txs))
		copy(shuffled, txs)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := Position(models.ScopeChapter, nil, CashInputs{Transactions: shuffled}).CashBalance
		if got != want {
			t.Fatalf("shuffled cash = %d, want %d", got, want)
		}
	}
}

func TestCheckMovementDepositBoundaries(t *testing.T) {
	pos := models.CashPosition{CashBalance: 10000, BankBalance: 0}

	// Exactly the cash balance is allowed and would zero the cash.
	if err := CheckMovement(pos, models.MovementDeposit, 10000); err != nil {
		t.Fatalf("deposit of exact balance rejected: %v", err)
	}

	err := CheckMovement(pos, models.MovementDeposit, 10001)
	var insufficient *InsufficientCashError
	if !errors.As(err, &insufficient) {
		t.Fatalf("deposit of balance+1: err = %v, want InsufficientCashError", err)
	}
	if insufficient.Available != 10000 {
		t.Errorf("Available = %d, want 10000", insufficient.Available)
	}
}

func TestCheckMovementWithdrawalBoundaries(t *testing.T) {
	pos := models.CashPosition{CashBalance: 0, BankBalance: 8000}

	if err := CheckMovement(pos, models.MovementWithdrawal, 8000); err != nil {
		t.Fatalf("withdrawal of exact bank balance rejected: %v", err)
	}

	err := CheckMovement(pos, models.MovementWithdrawal, 8001)
	var insufficient *InsufficientBankFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("overdraw: err = %v, want InsufficientBankFundsError", err)
	}
}

func TestCheckMovementRejectsNonPositiveAmounts(t *testing.T) {
	pos := models.CashPosition{CashBalance: 10000, BankBalance: 10000}
	for _, amount := range []int64{0, -500} {
		err := CheckMovement(pos, models.MovementDeposit, amount)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("amount %d: err = %v, want ValidationError", amount, err)
		}
	}
}

// The end-to-end flow from the chapter floor to reconciliation: two members
// contribute, the FS declares a handover, the treasurer confirms less than
// stated, and the shortfall stands out.
func TestChapterScenario(t *testing.T) {
	purpose := &models.Purpose{ID: 1, Name: "Development Levy", ExpectedAmount: int64p(10000), TargetMode: models.TargetPerMember}
	members := []models.Member{
		{ID: 1, FullName: "Member A", IsActive: true},
		{ID: 2, FullName: "Member B", IsActive: true},
	}
	txs := []models.Transaction{
		{PurposeID: 1, MemberID: 1, ChapterID: 1, Amount: 10000, Type: models.TransactionCollection},
		{PurposeID: 1, MemberID: 2, ChapterID: 1, Amount: 4000, Type: models.TransactionCollection},
	}

	s := Summarize(purpose, len(members), txs)
	if s.TotalCollected != 14000 || s.Contributors != 2 {
		t.Fatalf("summary = collected %d contributors %d, want 14000 / 2", s.TotalCollected, s.Contributors)
	}

	pending := PendingContributions(purpose, members, txs)
	if len(pending) != 1 || pending[0].MemberID != 2 || pending[0].Balance != 6000 {
		t.Fatalf("pending = %+v, want only member B with balance 6000", pending)
	}

	// FS declares the full 14000; declaring is never blocked by holdings.
	if err := ValidateDeclare(models.BoundaryFSToChapterTreasurer, models.RoleChapterFS, 14000); err != nil {
		t.Fatalf("declare rejected: %v", err)
	}
	transfers := []models.CustodyTransfer{
		{ID: 1, Boundary: models.BoundaryFSToChapterTreasurer, ChapterID: intp(1), PurposeID: 1, AmountDeclared: 14000, Status: models.TransferPending},
	}

	// Treasurer confirms only 13000: 1000 lost in transit.
	if err := ValidateConfirm(&transfers[0], models.RoleChapterTreasurer, 13000); err != nil {
		t.Fatalf("partial confirmation rejected: %v", err)
	}
	receipts := []models.CustodyReceipt{{ID: 1, TransferID: 1, AmountConfirmed: 13000}}

	report := Reconcile(transfers, receipts)
	row := report.Rows[0]
	if row.FSHandedOver != 14000 || row.TreasurerReceived != 13000 || row.Difference != 1000 {
		t.Fatalf("reconciliation = %+v, want 14000 / 13000 / 1000", row)
	}
	if row.Status != models.ReconUnbalanced {
		t.Fatalf("status = %s, want UNBALANCED", row.Status)
	}
}
