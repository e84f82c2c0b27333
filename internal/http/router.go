package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chapterfund-backend/internal/handlers"
	"chapterfund-backend/internal/middleware"
	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/stream"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	chapterHandler *handlers.ChapterHandler,
	memberHandler *handlers.MemberHandler,
	purposeHandler *handlers.PurposeHandler,
	transactionHandler *handlers.TransactionHandler,
	custodyHandler *handlers.CustodyHandler,
	bankMovementHandler *handlers.BankMovementHandler,
	summaryHandler *handlers.SummaryHandler,
	receiptHandler *handlers.ReceiptHandler,
	totpHandler *handlers.TOTPHandler,
	loginLogHandler *handlers.LoginLogHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	hub *stream.Hub,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/verify-totp", authHandler.VerifyTOTP).Methods("POST")

	// Live ledger event stream
	r.HandleFunc("/ws", hub.HandleWebSocket)

	// Protected API routes - Session
	sessionAPI := r.PathPrefix("/api/auth").Subrouter()
	sessionAPI.Use(authMiddleware.Authenticate)
	sessionAPI.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	sessionAPI.HandleFunc("/me", authHandler.Me).Methods("GET")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.ListUsers)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.CreateUser)).ServeHTTP).Methods("POST")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.GetUser)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.UpdateUser)).ServeHTTP).Methods("PUT")
	usersAPI.HandleFunc("/{id}/toggle-active", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.ToggleActive)).ServeHTTP).Methods("PATCH")

	// Protected API routes - Chapters (visible to all roles, managed by admin)
	chaptersAPI := r.PathPrefix("/api/chapters").Subrouter()
	chaptersAPI.Use(authMiddleware.Authenticate)
	chaptersAPI.HandleFunc("", chapterHandler.ListChapters).Methods("GET")
	chaptersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(chapterHandler.CreateChapter)).ServeHTTP).Methods("POST")
	chaptersAPI.HandleFunc("/{id}", chapterHandler.GetChapter).Methods("GET")
	chaptersAPI.HandleFunc("/{id}/toggle-active", authMiddleware.RequireAdmin(http.HandlerFunc(chapterHandler.SetActive)).ServeHTTP).Methods("PATCH")

	// Protected API routes - Members (registered and edited by the chapter FS)
	membersAPI := r.PathPrefix("/api/members").Subrouter()
	membersAPI.Use(authMiddleware.Authenticate)
	membersAPI.HandleFunc("", memberHandler.ListMembers).Methods("GET")
	membersAPI.HandleFunc("", authMiddleware.RequireRole(models.RoleChapterFS, models.RoleAdmin)(http.HandlerFunc(memberHandler.RegisterMember)).ServeHTTP).Methods("POST")
	membersAPI.HandleFunc("/{id}", memberHandler.GetMember).Methods("GET")
	membersAPI.HandleFunc("/{id}", authMiddleware.RequireRole(models.RoleChapterFS, models.RoleAdmin)(http.HandlerFunc(memberHandler.UpdateMember)).ServeHTTP).Methods("PUT")
	membersAPI.HandleFunc("/{id}/deactivate", authMiddleware.RequireRole(models.RoleChapterFS, models.RoleAdmin)(http.HandlerFunc(memberHandler.DeactivateMember)).ServeHTTP).Methods("PATCH")
	membersAPI.HandleFunc("/{id}/reactivate", authMiddleware.RequireRole(models.RoleChapterFS, models.RoleAdmin)(http.HandlerFunc(memberHandler.ReactivateMember)).ServeHTTP).Methods("PATCH")
	membersAPI.HandleFunc("/{id}/ledger", memberHandler.GetMemberLedger).Methods("GET")

	// Protected API routes - Purposes (managed nationally)
	purposesAPI := r.PathPrefix("/api/purposes").Subrouter()
	purposesAPI.Use(authMiddleware.Authenticate)
	purposesAPI.HandleFunc("", purposeHandler.ListPurposes).Methods("GET")
	purposesAPI.HandleFunc("", authMiddleware.RequireRole(models.RoleNationalFS, models.RoleAdmin)(http.HandlerFunc(purposeHandler.CreatePurpose)).ServeHTTP).Methods("POST")
	purposesAPI.HandleFunc("/{id}", purposeHandler.GetPurpose).Methods("GET")
	purposesAPI.HandleFunc("/{id}", authMiddleware.RequireRole(models.RoleNationalFS, models.RoleAdmin)(http.HandlerFunc(purposeHandler.UpdatePurpose)).ServeHTTP).Methods("PUT")
	purposesAPI.HandleFunc("/{id}/deactivate", authMiddleware.RequireRole(models.RoleNationalFS, models.RoleAdmin)(http.HandlerFunc(purposeHandler.DeactivatePurpose)).ServeHTTP).Methods("PATCH")
	purposesAPI.HandleFunc("/{id}/reactivate", authMiddleware.RequireRole(models.RoleNationalFS, models.RoleAdmin)(http.HandlerFunc(purposeHandler.ReactivatePurpose)).ServeHTTP).Methods("PATCH")

	// Protected API routes - Member transactions (recorded by the chapter FS)
	transactionsAPI := r.PathPrefix("/api/transactions").Subrouter()
	transactionsAPI.Use(authMiddleware.Authenticate)
	transactionsAPI.HandleFunc("", transactionHandler.ListTransactions).Methods("GET")
	transactionsAPI.HandleFunc("", authMiddleware.RequireRole(models.RoleChapterFS)(http.HandlerFunc(transactionHandler.RecordTransaction)).ServeHTTP).Methods("POST")

	// Protected API routes - Custody transfers. The router gates broadly by
	// role; the service enforces the exact sender/receiver pair per boundary.
	transfersAPI := r.PathPrefix("/api/transfers").Subrouter()
	transfersAPI.Use(authMiddleware.Authenticate)
	transfersAPI.HandleFunc("", custodyHandler.ListTransfers).Methods("GET")
	transfersAPI.HandleFunc("", authMiddleware.RequireRole(models.RoleChapterFS, models.RoleChapterTreasurer, models.RoleNationalFS)(http.HandlerFunc(custodyHandler.DeclareTransfer)).ServeHTTP).Methods("POST")
	transfersAPI.HandleFunc("/pending", custodyHandler.ListPendingTransfers).Methods("GET")
	transfersAPI.HandleFunc("/{id}", custodyHandler.GetTransfer).Methods("GET")
	transfersAPI.HandleFunc("/{id}/confirm", authMiddleware.RequireRole(models.RoleChapterTreasurer, models.RoleNationalFS, models.RoleNationalTreasurer)(http.HandlerFunc(custodyHandler.ConfirmReceipt)).ServeHTTP).Methods("POST")
	transfersAPI.HandleFunc("/{id}/receipt", receiptHandler.DownloadTransferReceipt).Methods("GET")

	// Protected API routes - Bank movements (treasurers only)
	movementsAPI := r.PathPrefix("/api/bank-movements").Subrouter()
	movementsAPI.Use(authMiddleware.Authenticate)
	movementsAPI.HandleFunc("", bankMovementHandler.ListMovements).Methods("GET")
	movementsAPI.HandleFunc("", authMiddleware.RequireRole(models.RoleChapterTreasurer, models.RoleNationalTreasurer, models.RoleAdmin)(http.HandlerFunc(bankMovementHandler.RecordMovement)).ServeHTTP).Methods("POST")

	// Protected API routes - Summaries, reconciliation, cash positions
	summariesAPI := r.PathPrefix("/api/summaries").Subrouter()
	summariesAPI.Use(authMiddleware.Authenticate)
	summariesAPI.HandleFunc("/purposes", summaryHandler.PurposeSummaries).Methods("GET")
	summariesAPI.HandleFunc("/purposes/{purpose_id}/pending", summaryHandler.PendingContributions).Methods("GET")
	summariesAPI.HandleFunc("/pending", summaryHandler.Pending).Methods("GET")
	summariesAPI.HandleFunc("/reconciliation", summaryHandler.Reconciliation).Methods("GET")
	summariesAPI.HandleFunc("/cash-position/chapter", summaryHandler.ChapterCashPosition).Methods("GET")
	summariesAPI.HandleFunc("/cash-position/national", authMiddleware.RequireRole(models.RoleNationalFS, models.RoleNationalTreasurer, models.RoleAdmin)(http.HandlerFunc(summaryHandler.NationalCashPosition)).ServeHTTP).Methods("GET")

	// Protected API routes - 2FA management
	totpAPI := r.PathPrefix("/api/totp").Subrouter()
	totpAPI.Use(authMiddleware.Authenticate)
	totpAPI.HandleFunc("/setup", totpHandler.SetupTOTP).Methods("POST")
	totpAPI.HandleFunc("/enable", totpHandler.EnableTOTP).Methods("POST")
	totpAPI.HandleFunc("/disable", totpHandler.DisableTOTP).Methods("POST")
	totpAPI.HandleFunc("/status", totpHandler.GetStatus).Methods("GET")

	// Protected API routes - Login Logs (admin only)
	loginLogsAPI := r.PathPrefix("/api/login-logs").Subrouter()
	loginLogsAPI.Use(authMiddleware.Authenticate)
	loginLogsAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(loginLogHandler.ListLoginLogs)).ServeHTTP).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
