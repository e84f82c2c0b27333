package services

import (
	"testing"

	"chapterfund-backend/internal/models"
)

func TestMovementScope(t *testing.T) {
	chapterID := 4

	tests := []struct {
		name      string
		role      string
		chapterID *int
		wantScope models.CustodianScope
		wantErr   bool
	}{
		{"chapter treasurer", models.RoleChapterTreasurer, &chapterID, models.ScopeChapter, false},
		{"chapter treasurer without chapter", models.RoleChapterTreasurer, nil, "", true},
		{"national treasurer", models.RoleNationalTreasurer, nil, models.ScopeNational, false},
		{"admin with chapter", models.RoleAdmin, &chapterID, models.ScopeChapter, false},
		{"admin without chapter", models.RoleAdmin, nil, models.ScopeNational, false},
		{"chapter fs rejected", models.RoleChapterFS, &chapterID, "", true},
		{"national fs rejected", models.RoleNationalFS, nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, gotChapter, err := movementScope(tt.role, tt.chapterID)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if scope != tt.wantScope {
				t.Errorf("scope = %q, want %q", scope, tt.wantScope)
			}
			if scope == models.ScopeChapter && (gotChapter == nil || *gotChapter != chapterID) {
				t.Errorf("chapter = %v, want %d", gotChapter, chapterID)
			}
			if scope == models.ScopeNational && gotChapter != nil {
				t.Errorf("national scope carries chapter %d", *gotChapter)
			}
		})
	}
}
