package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"chapterfund-backend/internal/auth"
	"chapterfund-backend/internal/middleware"
	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/services"
	"chapterfund-backend/pkg/utils"
)

type AuthHandler struct {
	Service     *services.UserService
	TOTPService *services.TOTPService
	JWTManager  *auth.JWTManager
}

func NewAuthHandler(s *services.UserService, totpService *services.TOTPService, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		Service:     s,
		TOTPService: totpService,
		JWTManager:  jwtManager,
	}
}

// Login authenticates with email and password. Accounts with 2FA enabled get
// a short-lived temp token and must complete the TOTP step before a session
// token is issued.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ipAddress := middleware.GetClientIP(r)
	userAgent := r.UserAgent()

	authResp, err := h.Service.Login(r.Context(), &req, ipAddress, userAgent)
	if errors.Is(err, services.ErrTOTPRequired) {
		utils.JSON(w, http.StatusOK, map[string]interface{}{
			"requires_totp": true,
			"temp_token":    authResp.Token,
		})
		return
	}
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, authResp)
}

// VerifyTOTP completes a 2FA login. The temp token from the password step
// plus a valid TOTP or backup code yields the real session token.
func (h *AuthHandler) VerifyTOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TempToken string `json:"temp_token"`
		Code      string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TempToken == "" || req.Code == "" {
		utils.Error(w, http.StatusBadRequest, "Temp token and verification code are required")
		return
	}

	tempClaims, err := h.JWTManager.ValidateTempToken(req.TempToken)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "Invalid or expired temp token")
		return
	}

	ipAddress := middleware.GetClientIP(r)
	valid, err := h.TOTPService.Verify(r.Context(), tempClaims.UserID, strings.TrimSpace(req.Code), ipAddress)
	if err != nil {
		if _, ok := err.(*services.TOTPError); ok {
			utils.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Verification failed")
		return
	}
	if !valid {
		utils.Error(w, http.StatusUnauthorized, "Invalid verification code")
		return
	}

	authResp, err := h.Service.CompleteTOTPLogin(r.Context(), tempClaims.UserID, ipAddress, r.UserAgent())
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, authResp)
}

// Logout stamps the logout time on the user's latest open login record.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.Service.Logout(r.Context(), userID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to record logout")
		return
	}

	if email, ok := middleware.GetEmailFromContext(r.Context()); ok {
		log.Printf("[Auth] %s logged out", email)
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the authenticated user's own profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "User not found")
		return
	}

	utils.JSON(w, http.StatusOK, user)
}
