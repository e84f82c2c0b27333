package ledger

import (
	"time"

	"chapterfund-backend/internal/models"
)

// CashInputs is the slice of event history relevant to one custodian scope.
// The caller decides what belongs to the custodian (which transactions are
// held directly, which transfers flow in and out); the reduction itself is
// the same everywhere.
type CashInputs struct {
	Transactions []models.Transaction     // funds the custodian holds directly
	ReceiptsIn   []models.CustodyReceipt  // confirmed incoming handovers
	TransfersOut []models.CustodyTransfer // declared outgoing handovers
	Movements    []models.BankMovement
}

// Position recomputes the custodian's cash and bank balances from the full
// event history:
//
//	cash = collections - disbursements + confirmed receipts in
//	       - declared transfers out - deposits
//	bank = deposits - withdrawals
//
// Declared outgoing transfers reduce cash immediately, before the receiver
// confirms: the sender has stated the money left their hands.
func Position(scope models.CustodianScope, chapterID *int, in CashInputs) models.CashPosition {
	var cash, bank int64

	for _, tx := range in.Transactions {
		switch tx.Type {
		case models.TransactionCollection:
			cash += tx.Amount
		case models.TransactionDisbursement:
			cash -= tx.Amount
		}
	}
	for _, r := range in.ReceiptsIn {
		cash += r.AmountConfirmed
	}
	for _, t := range in.TransfersOut {
		cash -= t.AmountDeclared
	}
	for _, m := range in.Movements {
		switch m.Type {
		case models.MovementDeposit:
			cash -= m.Amount
			bank += m.Amount
		case models.MovementWithdrawal:
			bank -= m.Amount
		}
	}

	return models.CashPosition{
		Scope:       scope,
		ChapterID:   chapterID,
		CashBalance: cash,
		BankBalance: bank,
		ComputedAt:  time.Now(),
	}
}

// CheckMovement applies the solvency rule for a prospective bank movement
// against a freshly computed position. Deposits are capped by cash on hand,
// withdrawals by the bank balance. The persisted check in the repository
// runs the same rule inside a serializable transaction; this function is the
// single definition of the rule.
func CheckMovement(pos models.CashPosition, mvType models.MovementType, amount int64) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	switch mvType {
	case models.MovementDeposit:
		if amount > pos.CashBalance {
			return &InsufficientCashError{Requested: amount, Available: pos.CashBalance}
		}
	case models.MovementWithdrawal:
		if amount > pos.BankBalance {
			return &InsufficientBankFundsError{Requested: amount, Available: pos.BankBalance}
		}
	default:
		return &ValidationError{Field: "movement_type", Reason: "must be DEPOSIT or WITHDRAWAL"}
	}
	return nil
}
