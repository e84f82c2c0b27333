package handlers

import (
	"net/http"
	"strconv"

	"chapterfund-backend/internal/repositories"
	"chapterfund-backend/pkg/utils"
)

type LoginLogHandler struct {
	Repo *repositories.LoginLogRepository
}

func NewLoginLogHandler(repo *repositories.LoginLogRepository) *LoginLogHandler {
	return &LoginLogHandler{Repo: repo}
}

// ListLoginLogs returns recent login/logout records, newest first.
// Admin-only; the router gates it.
func (h *LoginLogHandler) ListLoginLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	logs, err := h.Repo.ListAll(r.Context(), limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to retrieve login logs")
		return
	}

	utils.JSON(w, http.StatusOK, logs)
}
