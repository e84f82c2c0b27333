package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chapterfund-backend/internal/services"
)

func TestReconciliationRequiresBoundary(t *testing.T) {
	h := NewSummaryHandler(services.NewSummaryService(nil, nil, nil, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/summaries/reconciliation", nil)
	rr := httptest.NewRecorder()
	h.Reconciliation(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestReconciliationRejectsUnknownBoundary(t *testing.T) {
	// An unknown boundary fails validation before any storage access, so a
	// service without repositories exercises the full error path.
	h := NewSummaryHandler(services.NewSummaryService(nil, nil, nil, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/summaries/reconciliation?boundary=SIDEWAYS", nil)
	rr := httptest.NewRecorder()
	h.Reconciliation(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d for unknown boundary", rr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rr.Body.String(), "boundary") {
		t.Errorf("body = %s, want the boundary validation reason", rr.Body.String())
	}
}
