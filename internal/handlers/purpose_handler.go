package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/services"
	"chapterfund-backend/pkg/utils"
)

type PurposeHandler struct {
	Service *services.PurposeService
}

func NewPurposeHandler(s *services.PurposeService) *PurposeHandler {
	return &PurposeHandler{Service: s}
}

func (h *PurposeHandler) CreatePurpose(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePurposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	purpose, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, purpose)
}

// ListPurposes returns all purposes, optionally filtered by level
// (?level=CHAPTER or ?level=NATIONAL). Inactive purposes are included so
// historical reports still resolve their names.
func (h *PurposeHandler) ListPurposes(w http.ResponseWriter, r *http.Request) {
	level := models.PurposeLevel(r.URL.Query().Get("level"))

	purposes, err := h.Service.List(r.Context(), level)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list purposes")
		return
	}

	utils.JSON(w, http.StatusOK, purposes)
}

func (h *PurposeHandler) GetPurpose(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid purpose ID")
		return
	}

	purpose, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Purpose not found")
		return
	}

	utils.JSON(w, http.StatusOK, purpose)
}

// UpdatePurpose renames a purpose or retunes its target. Target changes are
// rejected once ledger records reference the purpose.
func (h *PurposeHandler) UpdatePurpose(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid purpose ID")
		return
	}

	var req models.UpdatePurposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	purpose, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, purpose)
}

func (h *PurposeHandler) DeactivatePurpose(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid purpose ID")
		return
	}

	if err := h.Service.Deactivate(r.Context(), id); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"is_active": false})
}

func (h *PurposeHandler) ReactivatePurpose(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid purpose ID")
		return
	}

	if err := h.Service.Reactivate(r.Context(), id); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"is_active": true})
}
