package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/repositories"
	"chapterfund-backend/pkg/utils"
)

type ChapterHandler struct {
	Repo *repositories.ChapterRepository
}

func NewChapterHandler(repo *repositories.ChapterRepository) *ChapterHandler {
	return &ChapterHandler{Repo: repo}
}

func (h *ChapterHandler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	var req models.CreateChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.Error(w, http.StatusBadRequest, "Chapter name is required")
		return
	}

	chapter := &models.Chapter{
		Name:     req.Name,
		Region:   strings.TrimSpace(req.Region),
		IsActive: true,
	}
	if err := h.Repo.Create(r.Context(), chapter); err != nil {
		utils.Error(w, http.StatusBadRequest, "Failed to create chapter: "+err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, chapter)
}

func (h *ChapterHandler) ListChapters(w http.ResponseWriter, r *http.Request) {
	chapters, err := h.Repo.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list chapters")
		return
	}

	utils.JSON(w, http.StatusOK, chapters)
}

func (h *ChapterHandler) GetChapter(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid chapter ID")
		return
	}

	chapter, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Chapter not found")
		return
	}

	utils.JSON(w, http.StatusOK, chapter)
}

func (h *ChapterHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid chapter ID")
		return
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Repo.SetActive(r.Context(), id, req.IsActive); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to update chapter")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"is_active": req.IsActive})
}
