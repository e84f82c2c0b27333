package services

import (
	"testing"

	"chapterfund-backend/internal/models"
)

func amountp(v int64) *int64 { return &v }

func TestTargetChanged(t *testing.T) {
	base := &models.Purpose{Name: "Dues", ExpectedAmount: amountp(10000), TargetMode: models.TargetPerMember}

	tests := []struct {
		name string
		req  models.UpdatePurposeRequest
		want bool
	}{
		{"rename only", models.UpdatePurposeRequest{Name: "Annual Dues", ExpectedAmount: amountp(10000), TargetMode: models.TargetPerMember}, false},
		{"mode omitted keeps current", models.UpdatePurposeRequest{Name: "Dues", ExpectedAmount: amountp(10000)}, false},
		{"new amount", models.UpdatePurposeRequest{Name: "Dues", ExpectedAmount: amountp(15000), TargetMode: models.TargetPerMember}, true},
		{"mode flip", models.UpdatePurposeRequest{Name: "Dues", ExpectedAmount: amountp(10000), TargetMode: models.TargetFixed}, true},
		{"amount dropped to unbounded", models.UpdatePurposeRequest{Name: "Dues", TargetMode: models.TargetPerMember}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := targetChanged(&tt.req, base); got != tt.want {
				t.Errorf("targetChanged = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTargetChangedUnboundedPurpose(t *testing.T) {
	base := &models.Purpose{Name: "Voluntary", TargetMode: models.TargetPerMember}

	if targetChanged(&models.UpdatePurposeRequest{Name: "Voluntary Giving"}, base) {
		t.Error("rename of an unbounded purpose must not trip the target guard")
	}
	if !targetChanged(&models.UpdatePurposeRequest{Name: "Voluntary", ExpectedAmount: amountp(5000)}, base) {
		t.Error("introducing an expected amount is a target change")
	}
}
