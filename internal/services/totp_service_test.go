package services

import (
	"strings"
	"testing"
)

func TestGenerateRandomCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := generateRandomCode(backupCodeLength)
		if len(code) != backupCodeLength {
			t.Fatalf("code length = %d, want %d", len(code), backupCodeLength)
		}
		// Ambiguous characters are excluded from the charset
		for _, c := range []string{"I", "O", "0", "1"} {
			if strings.Contains(code, c) {
				t.Errorf("code %q contains ambiguous character %q", code, c)
			}
		}
		seen[code] = true
	}
	if len(seen) < 40 {
		t.Errorf("only %d distinct codes out of 50", len(seen))
	}
}
