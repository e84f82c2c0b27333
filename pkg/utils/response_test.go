package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, 201, map[string]int{"id": 9})

	if w.Code != 201 {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["id"] != 9 {
		t.Errorf("body = %v", body)
	}
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, 403, "Member belongs to another chapter")

	if w.Code != 403 {
		t.Errorf("status = %d, want 403", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "Member belongs to another chapter" {
		t.Errorf("body = %v", body)
	}
}
