package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListTransactionsRejectsBadFilters(t *testing.T) {
	// Filter validation happens before the service is consulted, so a
	// handler without a service covers the rejection paths.
	h := NewTransactionHandler(nil)

	tests := []struct {
		name  string
		query string
	}{
		{"malformed from date", "?chapter_id=1&from=notadate&to=2026-01-31"},
		{"malformed to date", "?chapter_id=1&from=2026-01-01&to=soon"},
		{"missing to date", "?chapter_id=1&from=2026-01-01"},
		{"unknown destination", "?chapter_id=1&destination=SIDEWAYS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/transactions"+tt.query, nil)
			rr := httptest.NewRecorder()
			h.ListTransactions(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}
