package services

import (
	"testing"

	"chapterfund-backend/internal/models"
)

func TestValidateRoleAssignment(t *testing.T) {
	chapterID := 2

	tests := []struct {
		name      string
		role      string
		chapterID *int
		wantErr   bool
	}{
		{"chapter fs with chapter", models.RoleChapterFS, &chapterID, false},
		{"chapter fs without chapter", models.RoleChapterFS, nil, true},
		{"chapter treasurer without chapter", models.RoleChapterTreasurer, nil, true},
		{"national fs with chapter", models.RoleNationalFS, &chapterID, true},
		{"national fs clean", models.RoleNationalFS, nil, false},
		{"national treasurer clean", models.RoleNationalTreasurer, nil, false},
		{"admin with chapter", models.RoleAdmin, &chapterID, true},
		{"admin clean", models.RoleAdmin, nil, false},
		{"unknown role", "auditor", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRoleAssignment(tt.role, tt.chapterID)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRoleAssignment(%q) error = %v, wantErr %v", tt.role, err, tt.wantErr)
			}
		})
	}
}
