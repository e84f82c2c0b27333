package ledger

import (
	"fmt"

	"chapterfund-backend/internal/models"
)

// BoundaryRoles returns the (sender, receiver) role pair for a custody
// boundary. Declaring is the sender's action, confirming the receiver's.
func BoundaryRoles(b models.Boundary) (from, to string, err error) {
	switch b {
	case models.BoundaryFSToChapterTreasurer:
		return models.RoleChapterFS, models.RoleChapterTreasurer, nil
	case models.BoundaryChapterToNational:
		return models.RoleChapterTreasurer, models.RoleNationalFS, nil
	case models.BoundaryNationalFSToTreasurer:
		return models.RoleNationalFS, models.RoleNationalTreasurer, nil
	}
	return "", "", &ValidationError{Field: "boundary", Reason: fmt.Sprintf("unknown boundary %q", b)}
}

// BoundaryIsChapterScoped reports whether transfers at this boundary carry a
// chapter reference. The national FS to national treasurer handover does not.
func BoundaryIsChapterScoped(b models.Boundary) bool {
	return b != models.BoundaryNationalFSToTreasurer
}

// ValidateDeclare checks a transfer declaration. Deliberately, the declared
// amount is NOT checked against the sender's current holdings: declaring more
// than held must be possible so the discrepancy becomes visible in
// reconciliation instead of being silently blocked.
func ValidateDeclare(b models.Boundary, actorRole string, amount int64) error {
	from, _, err := BoundaryRoles(b)
	if err != nil {
		return err
	}
	if actorRole != from && actorRole != models.RoleAdmin {
		return &ValidationError{
			Field:  "boundary",
			Reason: fmt.Sprintf("role %s cannot declare at boundary %s", actorRole, b),
		}
	}
	return ValidateAmount(amount)
}

// ValidateConfirm checks a receipt against its transfer. Partial or excess
// confirmation is allowed; only a second receipt for the same transfer is
// rejected, because the PENDING to CONFIRMED transition is terminal.
func ValidateConfirm(t *models.CustodyTransfer, actorRole string, amountConfirmed int64) error {
	_, to, err := BoundaryRoles(t.Boundary)
	if err != nil {
		return err
	}
	if actorRole != to && actorRole != models.RoleAdmin {
		return &ValidationError{
			Field:  "transfer_id",
			Reason: fmt.Sprintf("role %s cannot confirm at boundary %s", actorRole, t.Boundary),
		}
	}
	if t.Status == models.TransferConfirmed {
		return &ValidationError{Field: "transfer_id", Reason: "transfer already confirmed"}
	}
	return ValidateAmount(amountConfirmed)
}
