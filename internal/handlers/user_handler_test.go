package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListUsersRejectsBadChapterFilter(t *testing.T) {
	h := NewUserHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users?chapter_id=abc", nil)
	rr := httptest.NewRecorder()
	h.ListUsers(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
