package ledger

import (
	"errors"
	"testing"

	"chapterfund-backend/internal/models"
)

func TestBoundaryRoles(t *testing.T) {
	tests := []struct {
		boundary models.Boundary
		from, to string
	}{
		{models.BoundaryFSToChapterTreasurer, models.RoleChapterFS, models.RoleChapterTreasurer},
		{models.BoundaryChapterToNational, models.RoleChapterTreasurer, models.RoleNationalFS},
		{models.BoundaryNationalFSToTreasurer, models.RoleNationalFS, models.RoleNationalTreasurer},
	}
	for _, tt := range tests {
		from, to, err := BoundaryRoles(tt.boundary)
		if err != nil {
			t.Fatalf("%s: %v", tt.boundary, err)
		}
		if from != tt.from || to != tt.to {
			t.Errorf("%s = (%s, %s), want (%s, %s)", tt.boundary, from, to, tt.from, tt.to)
		}
	}

	if _, _, err := BoundaryRoles("TREASURER_TO_MEMBER"); err == nil {
		t.Error("unknown boundary accepted")
	}
}

func TestValidateDeclareRoleOwnership(t *testing.T) {
	// Only the sending role of the boundary may declare there.
	if err := ValidateDeclare(models.BoundaryChapterToNational, models.RoleChapterFS, 1000); err == nil {
		t.Error("chapter FS allowed to declare at the chapter-to-national boundary")
	}
	if err := ValidateDeclare(models.BoundaryChapterToNational, models.RoleChapterTreasurer, 1000); err != nil {
		t.Errorf("chapter treasurer rejected at own boundary: %v", err)
	}
	if err := ValidateDeclare(models.BoundaryChapterToNational, models.RoleAdmin, 1000); err != nil {
		t.Errorf("admin rejected: %v", err)
	}
}

func TestValidateDeclareRejectsNonPositive(t *testing.T) {
	err := ValidateDeclare(models.BoundaryFSToChapterTreasurer, models.RoleChapterFS, 0)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("zero amount: err = %v, want ValidationError", err)
	}
}

func TestValidateConfirmTerminalState(t *testing.T) {
	confirmed := &models.CustodyTransfer{
		Boundary: models.BoundaryFSToChapterTreasurer,
		Status:   models.TransferConfirmed,
	}
	if err := ValidateConfirm(confirmed, models.RoleChapterTreasurer, 5000); err == nil {
		t.Error("second confirmation of a CONFIRMED transfer accepted")
	}

	pending := &models.CustodyTransfer{
		Boundary: models.BoundaryFSToChapterTreasurer,
		Status:   models.TransferPending,
	}
	if err := ValidateConfirm(pending, models.RoleChapterTreasurer, 5000); err != nil {
		t.Errorf("confirmation of PENDING transfer rejected: %v", err)
	}
	if err := ValidateConfirm(pending, models.RoleChapterFS, 5000); err == nil {
		t.Error("sending role allowed to confirm its own transfer")
	}
}
