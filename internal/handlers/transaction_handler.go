package handlers

import (
	"encoding/json"
	"net/http"

	"chapterfund-backend/internal/middleware"
	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/services"
	"chapterfund-backend/internal/timeutil"
	"chapterfund-backend/pkg/utils"
)

type TransactionHandler struct {
	Service *services.TransactionService
}

func NewTransactionHandler(s *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{Service: s}
}

// RecordTransaction records a member contribution or disbursement. Only the
// chapter financial secretary reaches this route; the chapter is always taken
// from the authenticated actor, never the request body.
func (h *TransactionHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	chapterID, ok := middleware.GetChapterIDFromContext(r.Context())
	if !ok || chapterID == nil {
		utils.Error(w, http.StatusForbidden, "Only chapter financial secretaries record contributions")
		return
	}

	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.Service.Record(r.Context(), *chapterID, userID, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, tx)
}

// ListTransactions returns a chapter's ledger, newest first. Optional query
// filters narrow by collection tier (?destination=CHAPTER|NATIONAL) or by an
// inclusive date window (?from=YYYY-MM-DD&to=YYYY-MM-DD).
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := resolveChapterID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Chapter could not be determined")
		return
	}

	q := r.URL.Query()
	var txs []models.Transaction
	var err error
	switch {
	case q.Get("from") != "" || q.Get("to") != "":
		from, parseErr := timeutil.ParseInWAT(timeutil.DateLayout, q.Get("from"))
		if parseErr != nil {
			utils.Error(w, http.StatusBadRequest, "from must be a YYYY-MM-DD date")
			return
		}
		to, parseErr := timeutil.ParseInWAT(timeutil.DateLayout, q.Get("to"))
		if parseErr != nil {
			utils.Error(w, http.StatusBadRequest, "to must be a YYYY-MM-DD date")
			return
		}
		txs, err = h.Service.ListByDateRange(r.Context(), chapterID, timeutil.StartOfDay(from), timeutil.EndOfDay(to))
	case q.Get("destination") != "":
		dest := models.Destination(q.Get("destination"))
		if dest != models.DestinationChapter && dest != models.DestinationNational {
			utils.Error(w, http.StatusBadRequest, "destination must be CHAPTER or NATIONAL")
			return
		}
		txs, err = h.Service.ListByDestination(r.Context(), chapterID, dest)
	default:
		txs, err = h.Service.ListByChapter(r.Context(), chapterID)
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	utils.JSON(w, http.StatusOK, txs)
}
