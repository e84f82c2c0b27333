package ledger

import (
	"errors"
	"fmt"
)

// ErrConcurrencyConflict signals that a solvency check was invalidated by a
// concurrently committed movement. The caller should retry the whole
// read-then-insert sequence.
var ErrConcurrencyConflict = errors.New("balance check invalidated by a concurrent commit, retry")

// ValidationError rejects a malformed request before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ReferenceNotFoundError rejects a ledger row pointing at a missing or
// inactive reference record.
type ReferenceNotFoundError struct {
	Kind string // "member", "purpose", "chapter", "transfer"
	ID   int
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found or inactive", e.Kind, e.ID)
}

// InsufficientCashError rejects a deposit exceeding cash on hand.
type InsufficientCashError struct {
	Requested int64
	Available int64
}

func (e *InsufficientCashError) Error() string {
	return fmt.Sprintf("Insufficient cash. Available: %d", e.Available)
}

// InsufficientBankFundsError rejects a withdrawal exceeding the bank balance.
type InsufficientBankFundsError struct {
	Requested int64
	Available int64
}

func (e *InsufficientBankFundsError) Error() string {
	return fmt.Sprintf("Insufficient bank funds. Available: %d", e.Available)
}

// ValidateAmount enforces the invariant shared by every monetary record:
// the amount is strictly positive, the sign lives in the record type.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be greater than 0"}
	}
	return nil
}
