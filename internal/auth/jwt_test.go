package auth

import (
	"testing"

	"chapterfund-backend/internal/config"
	"chapterfund-backend/internal/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "chapterfund-backend"
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewJWTManager(testConfig())
	chapterID := 3

	user := &models.User{
		ID:        7,
		Email:     "fs@example.com",
		Role:      models.RoleChapterFS,
		ChapterID: &chapterID,
		IsActive:  true,
	}

	token, err := manager.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Role != models.RoleChapterFS {
		t.Errorf("Role = %q, want %q", claims.Role, models.RoleChapterFS)
	}
	if claims.ChapterID == nil || *claims.ChapterID != 3 {
		t.Errorf("ChapterID = %v, want 3", claims.ChapterID)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig())
	user := &models.User{ID: 1, Email: "a@b.c", Role: models.RoleAdmin, IsActive: true}

	token, err := manager.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := testConfig()
	other.JWT.Secret = "different-secret"
	if _, err := NewJWTManager(other).ValidateToken(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestTempTokenIsNotASessionToken(t *testing.T) {
	manager := NewJWTManager(testConfig())
	user := &models.User{ID: 5, Email: "t@example.com", Role: models.RoleNationalTreasurer, IsActive: true}

	tempToken, err := manager.GenerateTempToken(user)
	if err != nil {
		t.Fatalf("GenerateTempToken: %v", err)
	}

	claims, err := manager.ValidateTempToken(tempToken)
	if err != nil {
		t.Fatalf("ValidateTempToken: %v", err)
	}
	if claims.UserID != 5 {
		t.Errorf("UserID = %d, want 5", claims.UserID)
	}

	// A session token must not pass temp validation
	sessionToken, err := manager.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := manager.ValidateTempToken(sessionToken); err == nil {
		t.Error("session token accepted as a 2FA temp token")
	}
}
