package services

import (
	"testing"

	"chapterfund-backend/internal/models"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0"},
		{500, "500"},
		{1500, "1,500"},
		{250000, "250,000"},
		{1450000, "1,450,000"},
		{-75000, "-75,000"},
	}

	for _, tt := range tests {
		if got := formatAmount(tt.amount); got != tt.want {
			t.Errorf("formatAmount(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestBoundaryLabel(t *testing.T) {
	if got := boundaryLabel(models.BoundaryChapterToNational); got != "Chapter to National" {
		t.Errorf("boundaryLabel = %q", got)
	}
	// Unknown boundaries fall back to the raw constant
	if got := boundaryLabel(models.Boundary("X")); got != "X" {
		t.Errorf("fallback label = %q", got)
	}
}
