package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chapterfund-backend/internal/middleware"
	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/services"
	"chapterfund-backend/pkg/utils"
)

type CustodyHandler struct {
	Service *services.CustodyService
}

func NewCustodyHandler(s *services.CustodyService) *CustodyHandler {
	return &CustodyHandler{Service: s}
}

// DeclareTransfer records the sender's side of a custody handover. The
// declared amount is deliberately not checked against the sender's holdings;
// discrepancies are reconciliation's job.
func (h *CustodyHandler) DeclareTransfer(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())
	chapterID, _ := middleware.GetChapterIDFromContext(r.Context())

	var req models.DeclareTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	transfer, err := h.Service.Declare(r.Context(), userID, role, chapterID, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, transfer)
}

// ConfirmReceipt records the receiver's independent count. Partial and
// excess confirmations are accepted; confirming twice is not.
func (h *CustodyHandler) ConfirmReceipt(w http.ResponseWriter, r *http.Request) {
	transferID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid transfer ID")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())
	chapterID, _ := middleware.GetChapterIDFromContext(r.Context())

	var req models.ConfirmReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	receipt, err := h.Service.Confirm(r.Context(), transferID, userID, role, chapterID, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, receipt)
}

func (h *CustodyHandler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	transferID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid transfer ID")
		return
	}

	transfer, receipt, err := h.Service.GetTransfer(r.Context(), transferID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Transfer not found")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"transfer": transfer,
		"receipt":  receipt,
	})
}

// ListTransfers returns transfers at one boundary (?boundary=..., required).
// Chapter-bound actors are limited to their own chapter's transfers.
func (h *CustodyHandler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	boundary := models.Boundary(r.URL.Query().Get("boundary"))
	if boundary == "" {
		utils.Error(w, http.StatusBadRequest, "boundary query parameter is required")
		return
	}

	transfers, err := h.Service.ListTransfers(r.Context(), boundary, transferScope(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list transfers")
		return
	}

	utils.JSON(w, http.StatusOK, transfers)
}

// ListPendingTransfers returns the receiver's confirmation queue for a
// boundary, oldest first.
func (h *CustodyHandler) ListPendingTransfers(w http.ResponseWriter, r *http.Request) {
	boundary := models.Boundary(r.URL.Query().Get("boundary"))
	if boundary == "" {
		utils.Error(w, http.StatusBadRequest, "boundary query parameter is required")
		return
	}

	transfers, err := h.Service.ListPending(r.Context(), boundary, transferScope(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list pending transfers")
		return
	}

	utils.JSON(w, http.StatusOK, transfers)
}

// transferScope narrows listings to the actor's chapter when bound to one,
// otherwise honors an optional chapter_id query filter.
func transferScope(r *http.Request) *int {
	if chapterID, ok := middleware.GetChapterIDFromContext(r.Context()); ok && chapterID != nil {
		return chapterID
	}
	if raw := r.URL.Query().Get("chapter_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			return &id
		}
	}
	return nil
}
