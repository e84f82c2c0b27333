package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chapterfund-backend/internal/ledger"
	"chapterfund-backend/internal/middleware"
	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/services"
	"chapterfund-backend/pkg/utils"
)

// SummaryHandler serves the derived read side: purpose rollups, pending
// contributor lists, reconciliation reports and cash positions. Everything
// here is recomputed from the event history, cached briefly in Redis.
type SummaryHandler struct {
	Service *services.SummaryService
}

func NewSummaryHandler(s *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{Service: s}
}

// PurposeSummaries serves the per-chapter rollup when a chapter is in scope.
// National roles and admin without an explicit chapter_id get the
// association-wide rollup across all chapters instead.
func (h *SummaryHandler) PurposeSummaries(w http.ResponseWriter, r *http.Request) {
	var summaries []models.PurposeSummary
	var err error
	if chapterID, ok := resolveChapterID(r); ok {
		summaries, err = h.Service.PurposeSummaries(r.Context(), chapterID)
	} else {
		summaries, err = h.Service.NationalPurposeSummaries(r.Context())
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to build purpose summaries")
		return
	}

	utils.JSON(w, http.StatusOK, summaries)
}

// PendingContributions lists members who have not fully paid a purpose.
func (h *SummaryHandler) PendingContributions(w http.ResponseWriter, r *http.Request) {
	purposeID, err := strconv.Atoi(mux.Vars(r)["purpose_id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid purpose ID")
		return
	}

	chapterID, ok := resolveChapterID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Chapter could not be determined")
		return
	}

	pending, err := h.Service.PendingContributions(r.Context(), chapterID, purposeID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list pending contributions")
		return
	}

	utils.JSON(w, http.StatusOK, pending)
}

// Pending lists outstanding balances for one chapter, across every active
// purpose or narrowed by the optional purpose_id query parameter.
func (h *SummaryHandler) Pending(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := resolveChapterID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Chapter could not be determined")
		return
	}

	var pending []models.PendingContribution
	var err error
	if raw := r.URL.Query().Get("purpose_id"); raw != "" {
		purposeID, convErr := strconv.Atoi(raw)
		if convErr != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid purpose ID")
			return
		}
		pending, err = h.Service.PendingContributions(r.Context(), chapterID, purposeID)
	} else {
		pending, err = h.Service.AllPendingContributions(r.Context(), chapterID)
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list pending contributions")
		return
	}

	utils.JSON(w, http.StatusOK, pending)
}

// Reconciliation reports declared-versus-confirmed figures at one boundary.
func (h *SummaryHandler) Reconciliation(w http.ResponseWriter, r *http.Request) {
	boundary := models.Boundary(r.URL.Query().Get("boundary"))
	if boundary == "" {
		utils.Error(w, http.StatusBadRequest, "boundary query parameter is required")
		return
	}

	report, err := h.Service.Reconciliation(r.Context(), boundary, transferScope(r))
	if err != nil {
		var vErr *ledger.ValidationError
		if errors.As(err, &vErr) {
			utils.Error(w, http.StatusBadRequest, vErr.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to build reconciliation report")
		return
	}

	utils.JSON(w, http.StatusOK, report)
}

// ChapterCashPosition returns the chapter treasurer's derived cash and bank
// balances.
func (h *SummaryHandler) ChapterCashPosition(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := resolveChapterID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Chapter could not be determined")
		return
	}

	position, err := h.Service.ChapterCashPosition(r.Context(), chapterID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to compute cash position")
		return
	}

	utils.JSON(w, http.StatusOK, position)
}

// NationalCashPosition returns the national treasurer's derived balances.
// Chapter-bound actors never reach this route.
func (h *SummaryHandler) NationalCashPosition(w http.ResponseWriter, r *http.Request) {
	if chapterID, ok := middleware.GetChapterIDFromContext(r.Context()); ok && chapterID != nil {
		utils.Error(w, http.StatusForbidden, "National position is not visible to chapter roles")
		return
	}

	position, err := h.Service.NationalCashPosition(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to compute cash position")
		return
	}

	utils.JSON(w, http.StatusOK, position)
}
