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

type MemberHandler struct {
	Service            *services.MemberService
	TransactionService *services.TransactionService
}

func NewMemberHandler(s *services.MemberService, txService *services.TransactionService) *MemberHandler {
	return &MemberHandler{Service: s, TransactionService: txService}
}

// resolveChapterID picks the chapter a request operates on. Chapter-bound
// actors always get their own chapter; national roles and admin name one
// via the chapter_id query parameter.
func resolveChapterID(r *http.Request) (int, bool) {
	if chapterID, ok := middleware.GetChapterIDFromContext(r.Context()); ok && chapterID != nil {
		return *chapterID, true
	}
	if raw := r.URL.Query().Get("chapter_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			return id, true
		}
	}
	return 0, false
}

func (h *MemberHandler) RegisterMember(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := resolveChapterID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Chapter could not be determined")
		return
	}

	var req models.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.Service.Register(r.Context(), chapterID, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := resolveChapterID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Chapter could not be determined")
		return
	}

	members, err := h.Service.ListByChapter(r.Context(), chapterID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list members")
		return
	}

	utils.JSON(w, http.StatusOK, members)
}

func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid member ID")
		return
	}

	member, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Member not found")
		return
	}
	if !memberVisible(r, member) {
		utils.Error(w, http.StatusForbidden, "Member belongs to another chapter")
		return
	}

	utils.JSON(w, http.StatusOK, member)
}

// GetMemberLedger returns a member's full statement with per-purpose
// standing against every active bounded purpose.
func (h *MemberHandler) GetMemberLedger(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid member ID")
		return
	}

	member, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Member not found")
		return
	}
	if !memberVisible(r, member) {
		utils.Error(w, http.StatusForbidden, "Member belongs to another chapter")
		return
	}

	ledger, err := h.TransactionService.MemberLedger(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to build member ledger")
		return
	}

	utils.JSON(w, http.StatusOK, ledger)
}

func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid member ID")
		return
	}

	member, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Member not found")
		return
	}
	if !memberVisible(r, member) {
		utils.Error(w, http.StatusForbidden, "Member belongs to another chapter")
		return
	}

	var req models.UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, updated)
}

func (h *MemberHandler) DeactivateMember(w http.ResponseWriter, r *http.Request) {
	h.setMemberActive(w, r, false)
}

func (h *MemberHandler) ReactivateMember(w http.ResponseWriter, r *http.Request) {
	h.setMemberActive(w, r, true)
}

func (h *MemberHandler) setMemberActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid member ID")
		return
	}

	member, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Member not found")
		return
	}
	if !memberVisible(r, member) {
		utils.Error(w, http.StatusForbidden, "Member belongs to another chapter")
		return
	}

	if active {
		err = h.Service.Reactivate(r.Context(), id)
	} else {
		err = h.Service.Deactivate(r.Context(), id)
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to update member")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"is_active": active})
}

// memberVisible enforces chapter scoping: chapter-bound actors only see
// members of their own chapter.
func memberVisible(r *http.Request, member *models.Member) bool {
	chapterID, ok := middleware.GetChapterIDFromContext(r.Context())
	if !ok || chapterID == nil {
		return true
	}
	return member.ChapterID == *chapterID
}
