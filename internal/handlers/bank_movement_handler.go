package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"chapterfund-backend/internal/ledger"
	"chapterfund-backend/internal/middleware"
	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/services"
	"chapterfund-backend/pkg/utils"
)

type BankMovementHandler struct {
	Service *services.BankMovementService
}

func NewBankMovementHandler(s *services.BankMovementService) *BankMovementHandler {
	return &BankMovementHandler{Service: s}
}

// RecordMovement records a deposit or withdrawal for the treasurer's scope.
// Solvency violations come back as 409 so clients can tell a business
// rejection from a malformed request.
func (h *BankMovementHandler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())
	chapterID, _ := middleware.GetChapterIDFromContext(r.Context())

	var req models.CreateBankMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	movement, err := h.Service.Record(r.Context(), userID, role, chapterID, &req)
	if err != nil {
		var cashErr *ledger.InsufficientCashError
		var bankErr *ledger.InsufficientBankFundsError
		if errors.As(err, &cashErr) || errors.As(err, &bankErr) {
			utils.Error(w, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, ledger.ErrConcurrencyConflict) {
			utils.Error(w, http.StatusConflict, "Concurrent movement detected, please retry")
			return
		}
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, movement)
}

func (h *BankMovementHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetRoleFromContext(r.Context())
	chapterID, _ := middleware.GetChapterIDFromContext(r.Context())

	movements, err := h.Service.List(r.Context(), role, chapterID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list bank movements")
		return
	}

	utils.JSON(w, http.StatusOK, movements)
}
