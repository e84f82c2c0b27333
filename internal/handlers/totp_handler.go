package handlers

import (
	"encoding/json"
	"net/http"

	"chapterfund-backend/internal/middleware"
	"chapterfund-backend/internal/repositories"
	"chapterfund-backend/internal/services"
	"chapterfund-backend/pkg/utils"
)

type TOTPHandler struct {
	TOTPService *services.TOTPService
	UserRepo    *repositories.UserRepository
}

func NewTOTPHandler(totpService *services.TOTPService, userRepo *repositories.UserRepository) *TOTPHandler {
	return &TOTPHandler{
		TOTPService: totpService,
		UserRepo:    userRepo,
	}
}

// SetupTOTP initiates 2FA setup, returning the secret and a QR code.
func (h *TOTPHandler) SetupTOTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	user, err := h.UserRepo.Get(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "User not found")
		return
	}

	if user.TOTPEnabled {
		utils.Error(w, http.StatusBadRequest, "2FA is already enabled")
		return
	}

	response, err := h.TOTPService.GenerateSetup(r.Context(), user)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to generate 2FA setup")
		return
	}

	utils.JSON(w, http.StatusOK, response)
}

// EnableTOTP verifies the first code and enables 2FA, returning backup codes.
func (h *TOTPHandler) EnableTOTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Code == "" {
		utils.Error(w, http.StatusBadRequest, "Verification code is required")
		return
	}

	ipAddress := middleware.GetClientIP(r)
	response, err := h.TOTPService.VerifyAndEnable(r.Context(), userID, req.Code, ipAddress)
	if err != nil {
		if _, ok := err.(*services.TOTPError); ok {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to enable 2FA")
		return
	}

	utils.JSON(w, http.StatusOK, response)
}

// DisableTOTP turns off 2FA after verifying both password and a current code.
func (h *TOTPHandler) DisableTOTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req struct {
		Password string `json:"password"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Password == "" || req.Code == "" {
		utils.Error(w, http.StatusBadRequest, "Password and verification code are required")
		return
	}

	if err := h.TOTPService.Disable(r.Context(), userID, req.Password, req.Code); err != nil {
		if _, ok := err.(*services.TOTPError); ok {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to disable 2FA")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "2FA disabled"})
}

// GetStatus returns the caller's 2FA status.
func (h *TOTPHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	status, err := h.TOTPService.GetStatus(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to get 2FA status")
		return
	}

	utils.JSON(w, http.StatusOK, status)
}
