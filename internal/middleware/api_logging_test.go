package middleware

import (
	"net/http/httptest"
	"testing"
)

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/api/members", "/api/members"},
		{"/api/transfers?boundary=CHAPTER_TO_NATIONAL", "/api/transfers"},
		{"/auth/login?token=abc", "/auth/login"},
	}

	for _, tt := range tests {
		if got := sanitizePath(tt.in); got != tt.want {
			t.Errorf("sanitizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShouldSkipLogging(t *testing.T) {
	if !shouldSkipLogging("/health/ready") {
		t.Error("health probes should be skipped")
	}
	if !shouldSkipLogging("/metrics") {
		t.Error("metrics scrapes should be skipped")
	}
	if shouldSkipLogging("/api/transactions") {
		t.Error("api routes must be logged")
	}
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/members", nil)
	r.RemoteAddr = "10.0.0.9:41234"
	if got := GetClientIP(r); got != "10.0.0.9" {
		t.Errorf("RemoteAddr fallback = %q", got)
	}

	r.Header.Set("X-Real-IP", "172.16.0.4")
	if got := GetClientIP(r); got != "172.16.0.4" {
		t.Errorf("X-Real-IP = %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := GetClientIP(r); got != "203.0.113.7" {
		t.Errorf("X-Forwarded-For = %q", got)
	}
}
